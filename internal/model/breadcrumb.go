package model

// BreadcrumbItem is one entry of a navigation trail.
type BreadcrumbItem struct {
	// Name is the display label.
	Name string `json:"name"`

	// Path is the navigation target, always site-relative.
	Path string `json:"path"`

	// IsLast marks the final item, which represents the current page.
	IsLast bool `json:"isLast"`
}

// Schema.org constants used by BreadcrumbList.
const (
	SchemaContext      = "https://schema.org"
	SchemaBreadcrumbs  = "BreadcrumbList"
	SchemaListItemType = "ListItem"
)

// BreadcrumbList is the schema.org BreadcrumbList record embedded as JSON-LD.
type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// ListItem is one position of a BreadcrumbList.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

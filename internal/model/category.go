package model

// Category groups calculators on the site (e.g. "Finanzas", "Matemáticas").
//
// A category has no stored identifier. Its slug is derived from the title
// every time a lookup happens, see catalog.Slugify.
type Category struct {
	// Title is the display name, used verbatim in breadcrumbs.
	Title string `json:"title" yaml:"title"`

	// Description is a one-sentence summary shown on listing pages.
	Description string `json:"description" yaml:"description"`

	// Icon is an opaque icon identifier consumed by the front end.
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

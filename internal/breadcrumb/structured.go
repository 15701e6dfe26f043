package breadcrumb

import (
	"strings"

	"github.com/nao1215/calcsite/internal/model"
)

// StructuredData projects a trail onto a schema.org BreadcrumbList.
// Positions are 1-based and items are absolute URLs under baseURL.
// An empty trail yields a list with no elements.
func StructuredData(items []model.BreadcrumbItem, baseURL string) model.BreadcrumbList {
	base := strings.TrimRight(baseURL, "/")
	list := model.BreadcrumbList{
		Context:         model.SchemaContext,
		Type:            model.SchemaBreadcrumbs,
		ItemListElement: make([]model.ListItem, 0, len(items)),
	}
	for i, item := range items {
		list.ItemListElement = append(list.ItemListElement, model.ListItem{
			Type:     model.SchemaListItemType,
			Position: i + 1,
			Name:     item.Name,
			Item:     base + absPath(item.Path),
		})
	}
	return list
}

func absPath(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

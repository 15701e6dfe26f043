package site

import "github.com/nao1215/calcsite/internal/catalog"

// staticRoutes are the fixed pages, in navigation order.
var staticRoutes = []string{
	"/",
	"/calculadoras",
	"/blog",
	"/sobre-nosotros",
	"/contacto",
	"/faq",
	"/legal",
}

// Routes lists every public path of the site: fixed pages, category
// listings, calculators and blog posts.
func Routes(c *catalog.Catalog) []string {
	cats := c.Categories()
	calcs := c.Calculators()
	posts := c.Posts()

	routes := make([]string, 0, len(staticRoutes)+len(cats)+len(calcs)+len(posts))
	routes = append(routes, staticRoutes...)
	for _, cat := range cats {
		routes = append(routes, "/categoria/"+catalog.Slugify(cat.Title))
	}
	for _, calc := range calcs {
		routes = append(routes, "/calculadora/"+calc.ID)
	}
	for _, post := range posts {
		routes = append(routes, "/blog/"+post.Slug)
	}
	return routes
}

package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/calcsite/internal/breadcrumb"
	"github.com/nao1215/calcsite/internal/catalog"
	"github.com/nao1215/calcsite/internal/model"
	"github.com/nao1215/calcsite/internal/seo"
)

// ErrNotFound is returned by Render for paths that address no page.
var ErrNotFound = errors.New("page not found")

// latestPosts is the number of posts listed on the home page.
const latestPosts = 3

//go:embed templates/*.html
var templateFS embed.FS

// Template names, one per page kind.
const (
	tmplHome        = "home"
	tmplCalculators = "calculators"
	tmplCategory    = "category"
	tmplCalculator  = "calculator"
	tmplBlog        = "blog"
	tmplPost        = "post"
	tmplStatic      = "static"
	tmplNotFound    = "notfound"
)

// staticContent holds the body of the fixed informational pages.
var staticContent = map[string][]string{
	"sobre-nosotros": {
		"Somos un pequeño equipo que desarrolla calculadoras gratuitas en español para resolver cuentas del día a día.",
		"Todas las herramientas funcionan en el navegador y no requieren registro.",
	},
	"contacto": {
		"¿Has encontrado un error o echas de menos una calculadora? Escríbenos y lo revisaremos.",
		"Respondemos normalmente en un plazo de dos días laborables.",
	},
	"faq": {
		"¿Las calculadoras son gratuitas? Sí, todas las herramientas del sitio son gratuitas.",
		"¿Guardáis mis datos? Solo se conservan los últimos cálculos de cada calculadora para mostrarlos en el historial.",
		"¿Los resultados son exactos? Son estimaciones orientativas; consulta a un profesional antes de tomar decisiones.",
	},
	"legal": {
		"Este sitio ofrece herramientas de cálculo con fines informativos.",
		"Los resultados no constituyen asesoramiento financiero, médico ni legal.",
	},
}

// Page is one rendered document.
type Page struct {
	// Path is the site-relative request path.
	Path string

	// Status is the HTTP status the page should be served with.
	Status int

	Meta seo.Meta

	// HTML is the complete document.
	HTML []byte
}

// pageData is the value every template executes with.
type pageData struct {
	Meta        seo.Meta
	SiteName    string
	Year        int
	Breadcrumbs []model.BreadcrumbItem

	Categories  []categoryView
	Category    *model.Category
	Calculators []model.Calculator
	Calculator  *model.Calculator
	Posts       []model.BlogPost
	Post        *model.BlogPost
	Related     []model.Calculator
	Paragraphs  []string
}

// categoryView is a category together with its calculators.
type categoryView struct {
	model.Category
	Slug        string
	Calculators []model.Calculator
}

// Renderer renders pages for request paths.
type Renderer struct {
	catalog   *catalog.Catalog
	site      seo.Site
	resolver  *breadcrumb.Resolver
	templates map[string]*template.Template
	logger    *slog.Logger
	now       func() time.Time
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRendererLogger sets the logger of the renderer and its breadcrumb resolver.
func WithRendererLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithClock overrides the clock used for the footer year.
func WithClock(now func() time.Time) RendererOption {
	return func(r *Renderer) {
		r.now = now
	}
}

// NewRenderer parses the embedded templates and returns a Renderer for c.
func NewRenderer(c *catalog.Catalog, site seo.Site, opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		catalog:   c,
		site:      site,
		templates: make(map[string]*template.Template),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.resolver = breadcrumb.NewResolver(c, breadcrumb.WithLogger(r.logger))

	for _, name := range []string{
		tmplHome, tmplCalculators, tmplCategory, tmplCalculator,
		tmplBlog, tmplPost, tmplStatic, tmplNotFound,
	} {
		t, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render renders the page addressed by path. Paths that match no route, or
// name a calculator, category or post missing from the catalog, return
// ErrNotFound.
func (r *Renderer) Render(path string) (*Page, error) {
	path = normalize(path)
	name, data, ok := r.route(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return r.execute(name, path, http.StatusOK, data)
}

// RenderNotFound renders the 404 page for path.
func (r *Renderer) RenderNotFound(path string) (*Page, error) {
	path = normalize(path)
	data := &pageData{
		Meta: seo.ForPath(r.catalog, r.site, path),
	}
	data.Meta.Heading = "Página no encontrada"
	data.Meta.Title = data.Meta.Heading + " | " + r.site.Name
	data.Meta.Robots = seo.RobotsNoIndex
	data.Meta.Canonical = ""
	return r.execute(tmplNotFound, path, http.StatusNotFound, data)
}

// route picks the template and data for path.
func (r *Renderer) route(path string) (string, *pageData, bool) {
	segs := breadcrumb.Segments(path)
	for i, s := range segs {
		if u, err := url.PathUnescape(s); err == nil {
			segs[i] = u
		}
	}
	data := &pageData{
		Meta:        seo.ForPath(r.catalog, r.site, path),
		Breadcrumbs: r.resolver.Resolve(path),
	}

	switch {
	case len(segs) == 0:
		data.Categories = r.categoryViews()
		data.Posts = r.catalog.Posts()
		if len(data.Posts) > latestPosts {
			data.Posts = data.Posts[:latestPosts]
		}
		return tmplHome, data, true

	case len(segs) == 1:
		switch segs[0] {
		case "calculadoras":
			data.Categories = r.categoryViews()
			return tmplCalculators, data, true
		case "blog":
			data.Posts = r.catalog.Posts()
			return tmplBlog, data, true
		}
		if paragraphs, ok := staticContent[segs[0]]; ok {
			data.Paragraphs = paragraphs
			return tmplStatic, data, true
		}

	case len(segs) == 2:
		switch segs[0] {
		case "categoria":
			cat, ok := r.catalog.Category(segs[1])
			if !ok {
				return "", nil, false
			}
			data.Category = &cat
			data.Calculators = r.catalog.CalculatorsIn(segs[1])
			return tmplCategory, data, true
		case "calculadora":
			calc, ok := r.catalog.Calculator(segs[1])
			if !ok {
				return "", nil, false
			}
			data.Calculator = &calc
			return tmplCalculator, data, true
		case "blog":
			post, ok := r.catalog.Post(segs[1])
			if !ok {
				return "", nil, false
			}
			data.Post = &post
			data.Related = r.catalog.RelatedCalculators(post)
			return tmplPost, data, true
		}
	}
	return "", nil, false
}

// execute runs a template and injects the head metadata.
func (r *Renderer) execute(name, path string, status int, data *pageData) (*Page, error) {
	data.SiteName = r.site.Name
	data.Year = r.now().Year()

	var buf bytes.Buffer
	if err := r.templates[name].ExecuteTemplate(&buf, "base", data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", path, err)
	}

	var jsonLD []any
	if len(data.Breadcrumbs) > 0 {
		jsonLD = append(jsonLD, breadcrumb.StructuredData(data.Breadcrumbs, r.site.BaseURL))
	}
	if data.Post != nil {
		jsonLD = append(jsonLD, articleData(data.Post, data.Meta))
	}

	doc, err := seo.Inject(buf.Bytes(), data.Meta, jsonLD...)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", path, err)
	}

	r.logger.Debug("rendered page", "path", path, "template", name, "status", status)
	return &Page{Path: path, Status: status, Meta: data.Meta, HTML: doc}, nil
}

func (r *Renderer) categoryViews() []categoryView {
	cats := r.catalog.Categories()
	views := make([]categoryView, 0, len(cats))
	for _, cat := range cats {
		slug := catalog.Slugify(cat.Title)
		views = append(views, categoryView{
			Category:    cat,
			Slug:        slug,
			Calculators: r.catalog.CalculatorsIn(slug),
		})
	}
	return views
}

// articleData is the schema.org Article record of a blog post.
func articleData(post *model.BlogPost, meta seo.Meta) map[string]any {
	article := map[string]any{
		"@context":      model.SchemaContext,
		"@type":         "Article",
		"headline":      post.Title,
		"description":   post.Description,
		"datePublished": post.Date.UTC().Format(time.DateOnly),
		"author":        map[string]string{"@type": "Organization", "name": post.Author},
		"url":           meta.Canonical,
	}
	if meta.Image != "" {
		article["image"] = meta.Image
	}
	return article
}

// normalize returns a rooted path without a trailing slash.
func normalize(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}

package breadcrumb

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/nao1215/calcsite/internal/model"
	"github.com/nao1215/calcsite/internal/textutil"
)

// Fixed labels and paths of the trail.
const (
	HomeName        = "Inicio"
	HomePath        = "/"
	CalculatorsName = "Calculadoras"
	CalculatorsPath = "/calculadoras"
	BlogName        = "Blog"
	BlogPath        = "/blog"
)

// Route prefixes that drive the resolution rules.
const (
	segmentCalculator = "calculadora"
	segmentCategory   = "categoria"
	segmentBlog       = "blog"
)

// singleRouteNames labels the known top-level pages.
var singleRouteNames = map[string]string{
	"blog":           "Blog",
	"calculadoras":   "Calculadoras",
	"sobre-nosotros": "Sobre Nosotros",
	"contacto":       "Contacto",
	"faq":            "FAQ",
	"legal":          "Legal",
}

// Lookup is the read-only view of the catalog the resolver needs.
// *catalog.Catalog satisfies it.
type Lookup interface {
	// Category finds a category by URL slug.
	Category(slug string) (model.Category, bool)

	// Calculator finds a calculator by its key.
	Calculator(id string) (model.Calculator, bool)

	// Post finds a blog post by slug.
	Post(slug string) (model.BlogPost, bool)
}

// Resolver builds breadcrumb trails for request paths.
type Resolver struct {
	lookup Lookup
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for unresolved-lookup diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver over the given catalog.
func NewResolver(lookup Lookup, opts ...Option) *Resolver {
	r := &Resolver{lookup: lookup}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Segments splits path on "/" and drops empty segments.
func Segments(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// Resolve returns the breadcrumb trail for path, or nil for the home page.
//
// The trail always starts with Inicio and ends with an item for the full
// path whose IsLast is true. In between, /calculadora/... gets a
// Calculadoras entry and /blog/{slug} gets a Blog entry; /categoria/...
// gets none. The last segment is percent-decoded before the name lookup
// and capitalization, so /categoria/matem%C3%A1ticas names "Matemáticas".
func (r *Resolver) Resolve(path string) []model.BreadcrumbItem {
	segments := Segments(path)
	if len(segments) == 0 {
		return nil
	}

	trail := make([]model.BreadcrumbItem, 0, 3)
	trail = append(trail, model.BreadcrumbItem{Name: HomeName, Path: HomePath})

	switch segments[0] {
	case segmentCalculator:
		trail = append(trail, model.BreadcrumbItem{Name: CalculatorsName, Path: CalculatorsPath})
	case segmentCategory:
		// Category listings are reached from Inicio directly.
	case segmentBlog:
		if len(segments) > 1 {
			trail = append(trail, model.BreadcrumbItem{Name: BlogName, Path: BlogPath})
		}
	}

	trail = append(trail, model.BreadcrumbItem{
		Name:   r.lastName(segments),
		Path:   path,
		IsLast: true,
	})
	return trail
}

// lastName resolves the display name of the final segment.
func (r *Resolver) lastName(segments []string) string {
	last := decode(segments[len(segments)-1])
	name := textutil.CapitalizeFirst(last)

	if len(segments) == 1 {
		if fixed, ok := singleRouteNames[last]; ok {
			return fixed
		}
		return name
	}

	prev := segments[len(segments)-2]
	switch prev {
	case segmentCategory:
		if cat, ok := r.lookup.Category(last); ok {
			return cat.Title
		}
	case segmentCalculator:
		if calc, ok := r.lookup.Calculator(last); ok {
			return calc.Title
		}
	case segmentBlog:
		if post, ok := r.lookup.Post(last); ok {
			return post.Title
		}
	default:
		return name
	}

	r.logger.Debug("breadcrumb lookup unresolved, using segment name",
		"kind", prev,
		"segment", last,
	)
	return name
}

// decode unescapes a percent-encoded segment, keeping it as-is when invalid.
func decode(segment string) string {
	s, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return s
}

package seo

import (
	"net/url"
	"strings"

	"github.com/nao1215/calcsite/internal/config"
	"github.com/nao1215/calcsite/internal/model"
	"github.com/nao1215/calcsite/internal/textutil"
)

// Open Graph object types.
const (
	TypeWebsite = "website"
	TypeArticle = "article"
)

// Robots directives.
const (
	RobotsIndex   = "index, follow"
	RobotsNoIndex = "noindex, follow"
)

// Meta is the SEO metadata of one page.
type Meta struct {
	// Title is the full document title, site name included.
	Title string `json:"title"`

	// Heading is the page's own name, used as <h1> and og:title.
	Heading string `json:"heading"`

	Description string   `json:"description"`
	Canonical   string   `json:"canonical"`
	Keywords    []string `json:"keywords,omitempty"`

	// Type is the Open Graph type: website or article.
	Type string `json:"type"`

	// Image is an absolute image URL.
	Image string `json:"image,omitempty"`

	Locale   string `json:"locale"`
	SiteName string `json:"siteName"`
	Robots   string `json:"robots"`

	// Extra holds additional <meta name> tags.
	Extra map[string]string `json:"extra,omitempty"`
}

// Site carries the site-wide values ForPath needs.
type Site struct {
	Name         string
	BaseURL      string
	Locale       string
	DefaultImage string

	// Pages holds per-path overrides; nil means none.
	Pages *config.File
}

// SiteFromConfig builds a Site from the configuration.
func SiteFromConfig(cfg *config.Config) Site {
	return Site{
		Name:         cfg.SiteName,
		BaseURL:      cfg.BaseURL,
		Locale:       cfg.Locale,
		DefaultImage: cfg.DefaultImage,
		Pages:        cfg.Pages,
	}
}

// Lookup is the catalog view ForPath needs. *catalog.Catalog satisfies it.
type Lookup interface {
	Category(slug string) (model.Category, bool)
	Calculator(id string) (model.Calculator, bool)
	Post(slug string) (model.BlogPost, bool)
}

const defaultDescription = "Calculadoras online gratuitas en español: finanzas, matemáticas, salud y conversores de unidades."

// staticPages describes the fixed top-level routes.
var staticPages = map[string]struct{ heading, description string }{
	"calculadoras": {
		"Todas las calculadoras",
		"Listado completo de calculadoras online gratuitas organizadas por categoría.",
	},
	"blog": {
		"Blog",
		"Guías y artículos para entender hipotecas, préstamos, porcentajes, salud y más.",
	},
	"sobre-nosotros": {
		"Sobre Nosotros",
		"Quiénes somos y por qué creamos calculadoras gratuitas en español.",
	},
	"contacto": {
		"Contacto",
		"Escríbenos con dudas, sugerencias o errores en nuestras calculadoras.",
	},
	"faq": {
		"Preguntas frecuentes",
		"Respuestas a las preguntas más habituales sobre nuestras calculadoras.",
	},
	"legal": {
		"Aviso legal",
		"Aviso legal, política de privacidad y condiciones de uso del sitio.",
	},
}

// ForPath derives the metadata of path. Unknown paths get a title built from
// their last segment and the site description. Per-path overrides from the
// configuration are applied last.
func ForPath(lookup Lookup, site Site, path string) Meta {
	segs := segments(path)
	for i, s := range segs {
		if u, err := url.PathUnescape(s); err == nil {
			segs[i] = u
		}
	}
	m := Meta{
		Description: defaultDescription,
		Canonical:   Canonical(site.BaseURL, path),
		Type:        TypeWebsite,
		Image:       site.DefaultImage,
		Locale:      site.Locale,
		SiteName:    site.Name,
		Robots:      RobotsIndex,
	}

	switch {
	case len(segs) == 0:
		m.Heading = site.Name
		m.Title = site.Name + ": calculadoras online gratuitas"

	case len(segs) == 1:
		if p, ok := staticPages[segs[0]]; ok {
			m.Heading, m.Description = p.heading, p.description
		} else {
			m.Heading = textutil.CapitalizeFirst(segs[0])
		}

	case len(segs) == 2 && segs[0] == "categoria":
		if cat, ok := lookup.Category(segs[1]); ok {
			m.Heading = "Calculadoras de " + cat.Title
			if cat.Description != "" {
				m.Description = cat.Description
			}
		}

	case len(segs) == 2 && segs[0] == "calculadora":
		if calc, ok := lookup.Calculator(segs[1]); ok {
			m.Heading = calc.Title
			m.Description = calc.Description
			m.Keywords = append([]string(nil), calc.Keywords...)
		}

	case len(segs) == 2 && segs[0] == "blog":
		if post, ok := lookup.Post(segs[1]); ok {
			m.Heading = post.Title
			m.Description = post.Description
			m.Type = TypeArticle
			if post.Image != "" {
				m.Image = post.Image
			}
			if post.Category != "" {
				m.Keywords = []string{post.Category}
			}
		}
	}

	if m.Heading == "" {
		m.Heading = textutil.CapitalizeFirst(segs[len(segs)-1])
	}

	applyOverrides(&m, site.Pages.GetPageConfig(normalizePath(path)))

	if m.Title == "" {
		m.Title = m.Heading + " | " + site.Name
	}
	m.Image = absoluteURL(site.BaseURL, m.Image)
	return m
}

func applyOverrides(m *Meta, pc config.PageConfig) {
	if pc.Title != "" {
		m.Heading = pc.Title
		m.Title = ""
	}
	if pc.Description != "" {
		m.Description = pc.Description
	}
	if len(pc.Keywords) > 0 {
		m.Keywords = append([]string(nil), pc.Keywords...)
	}
	if pc.Image != "" {
		m.Image = pc.Image
	}
	if pc.NoIndex {
		m.Robots = RobotsNoIndex
	}
	if len(pc.Meta) > 0 {
		m.Extra = pc.Meta
	}
}

// Canonical returns the absolute canonical URL of path. Trailing slashes
// are dropped except for the root.
func Canonical(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + normalizePath(path)
}

// normalizePath collapses empty segments: "//blog/x/" becomes "/blog/x".
func normalizePath(path string) string {
	return "/" + strings.Join(segments(path), "/")
}

func segments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}

// absoluteURL resolves site-relative image paths against baseURL.
func absoluteURL(baseURL, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return strings.TrimRight(baseURL, "/") + ref
}

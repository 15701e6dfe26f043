package audit

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/calcsite/internal/model"
	"github.com/nao1215/calcsite/internal/seo"
)

// Length limits of what search engines show in results.
const (
	MaxTitleLength       = 70
	MinDescriptionLength = 50
	MaxDescriptionLength = 160
)

func finding(check string, doc *Document, sev model.Severity, msg, value string) model.Finding {
	return model.Finding{Check: check, Path: doc.Path, Severity: sev, Message: msg, Value: value}
}

// TitleCheck requires a <title> short enough to be shown whole.
type TitleCheck struct{}

// Name returns "title".
func (TitleCheck) Name() string { return "title" }

// Run checks the document title.
func (c TitleCheck) Run(doc *Document) []model.Finding {
	title := strings.TrimSpace(doc.Title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		return []model.Finding{finding(c.Name(), doc, model.SeverityError, "falta el título", "")}
	case n > MaxTitleLength:
		return []model.Finding{finding(c.Name(), doc, model.SeverityWarning,
			fmt.Sprintf("el título tiene %d caracteres (máximo %d)", n, MaxTitleLength), title)}
	}
	return nil
}

// DescriptionCheck requires a meta description of snippet length.
type DescriptionCheck struct{}

// Name returns "description".
func (DescriptionCheck) Name() string { return "description" }

// Run checks the meta description.
func (c DescriptionCheck) Run(doc *Document) []model.Finding {
	desc := strings.TrimSpace(doc.Description)
	switch n := utf8.RuneCountInString(desc); {
	case n == 0:
		return []model.Finding{finding(c.Name(), doc, model.SeverityError, "falta la meta descripción", "")}
	case n < MinDescriptionLength:
		return []model.Finding{finding(c.Name(), doc, model.SeverityInfo,
			fmt.Sprintf("la descripción tiene %d caracteres (mínimo recomendado %d)", n, MinDescriptionLength), desc)}
	case n > MaxDescriptionLength:
		return []model.Finding{finding(c.Name(), doc, model.SeverityWarning,
			fmt.Sprintf("la descripción tiene %d caracteres (máximo %d)", n, MaxDescriptionLength), desc)}
	}
	return nil
}

// HeadingCheck requires a visible <h1> and a declared document language.
type HeadingCheck struct{}

// Name returns "heading".
func (HeadingCheck) Name() string { return "heading" }

// Run checks the main heading and the lang attribute.
func (c HeadingCheck) Run(doc *Document) []model.Finding {
	var out []model.Finding
	if strings.TrimSpace(doc.H1) == "" {
		out = append(out, finding(c.Name(), doc, model.SeverityError, "falta el encabezado h1", ""))
	}
	if doc.Lang == "" {
		out = append(out, finding(c.Name(), doc, model.SeverityWarning, "falta el atributo lang", ""))
	}
	return out
}

// CanonicalCheck requires a canonical link under the site origin that
// points at the page itself, unless the page is noindex.
type CanonicalCheck struct {
	base string
}

// NewCanonicalCheck creates a CanonicalCheck for baseURL.
func NewCanonicalCheck(baseURL string) CanonicalCheck {
	return CanonicalCheck{base: strings.TrimRight(baseURL, "/")}
}

// Name returns "canonical".
func (CanonicalCheck) Name() string { return "canonical" }

// Run checks the canonical link.
func (c CanonicalCheck) Run(doc *Document) []model.Finding {
	if strings.Contains(doc.Robots, "noindex") {
		return nil
	}
	if doc.Canonical == "" {
		return []model.Finding{finding(c.Name(), doc, model.SeverityError, "falta el enlace canónico", "")}
	}
	if !strings.HasPrefix(doc.Canonical, c.base+"/") && doc.Canonical != c.base {
		return []model.Finding{finding(c.Name(), doc, model.SeverityError,
			"el enlace canónico apunta fuera del sitio", doc.Canonical)}
	}
	if want := seo.Canonical(c.base, doc.Path); doc.Canonical != want {
		return []model.Finding{finding(c.Name(), doc, model.SeverityWarning,
			"el enlace canónico apunta a otra página", doc.Canonical)}
	}
	return nil
}

// StructuredDataCheck requires every JSON-LD block to be valid schema.org JSON.
type StructuredDataCheck struct{}

// Name returns "structured-data".
func (StructuredDataCheck) Name() string { return "structured-data" }

// Run checks each JSON-LD script.
func (c StructuredDataCheck) Run(doc *Document) []model.Finding {
	var out []model.Finding
	for _, raw := range doc.JSONLD {
		var v struct {
			Context string `json:"@context"`
			Type    string `json:"@type"`
		}
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			out = append(out, finding(c.Name(), doc, model.SeverityError, "JSON-LD no válido", err.Error()))
			continue
		}
		if v.Context != model.SchemaContext || v.Type == "" {
			out = append(out, finding(c.Name(), doc, model.SeverityWarning,
				"JSON-LD sin @context de schema.org o sin @type", v.Type))
		}
	}
	return out
}

// LinkCheck reports internal links to unknown routes and lists the
// external hosts a page links to.
type LinkCheck struct {
	host   string
	routes map[string]bool
}

// NewLinkCheck creates a LinkCheck. Links under /api/ and /static/ are not
// pages and are never reported as broken.
func NewLinkCheck(baseURL string, routes []string) LinkCheck {
	c := LinkCheck{routes: make(map[string]bool, len(routes))}
	if u, err := url.Parse(baseURL); err == nil {
		c.host = u.Host
	}
	for _, r := range routes {
		c.routes[seo.Canonical("", r)] = true
	}
	return c
}

// Name returns "links".
func (LinkCheck) Name() string { return "links" }

// Run checks the anchors of doc.
func (c LinkCheck) Run(doc *Document) []model.Finding {
	var out []model.Finding
	seenHosts := make(map[string]bool)

	for _, href := range doc.Links {
		u, err := url.Parse(href)
		if err != nil {
			out = append(out, finding(c.Name(), doc, model.SeverityError, "enlace mal formado", href))
			continue
		}

		switch {
		case u.Scheme == "mailto" || u.Scheme == "tel" || (u.Path == "" && u.Fragment != ""):
			continue

		case u.Host != "" && u.Host != c.host:
			if !seenHosts[u.Host] {
				seenHosts[u.Host] = true
				out = append(out, finding(c.Name(), doc, model.SeverityInfo, "enlace externo", u.Host))
			}

		case strings.HasPrefix(u.Path, "/api/") || strings.HasPrefix(u.Path, "/static/"):
			continue

		default:
			if !c.routes[seo.Canonical("", u.Path)] {
				out = append(out, finding(c.Name(), doc, model.SeverityError, "enlace interno roto", href))
			}
		}
	}
	return out
}

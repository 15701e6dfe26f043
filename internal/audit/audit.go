package audit

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nao1215/calcsite/internal/model"
	"github.com/nao1215/calcsite/internal/seo"
)

// Page is one rendered document to audit.
type Page struct {
	// Path is the site-relative path the page is served at.
	Path string

	HTML []byte
}

// Document is a parsed page as the checks see it.
type Document struct {
	Path string
	*seo.Extracted
}

// Check inspects a single document.
type Check interface {
	// Name identifies the check in findings.
	Name() string

	// Run returns the problems found in doc.
	Run(doc *Document) []model.Finding
}

// Auditor runs checks over a set of pages.
type Auditor struct {
	checks []Check
	logger *slog.Logger
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// WithChecks replaces the built-in checks.
func WithChecks(checks ...Check) Option {
	return func(a *Auditor) {
		a.checks = checks
	}
}

// New creates an Auditor with the built-in checks. baseURL is the public
// origin canonical links must live under; routes are the paths internal
// links may point to.
func New(baseURL string, routes []string, opts ...Option) *Auditor {
	a := &Auditor{
		logger: slog.Default(),
		checks: []Check{
			TitleCheck{},
			DescriptionCheck{},
			HeadingCheck{},
			NewCanonicalCheck(baseURL),
			StructuredDataCheck{},
			NewLinkCheck(baseURL, routes),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register adds a check.
func (a *Auditor) Register(c Check) {
	a.checks = append(a.checks, c)
}

// Audit parses every page, runs the checks and looks for duplicated titles
// and descriptions. A page that cannot be parsed is reported as an error
// finding rather than failing the audit.
func (a *Auditor) Audit(ctx context.Context, pages []Page) ([]model.Finding, error) {
	findings := make([]model.Finding, 0)
	docs := make([]*Document, 0, len(pages))

	for _, p := range pages {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		ext, err := seo.Extract(bytes.NewReader(p.HTML))
		if err != nil {
			findings = append(findings, model.Finding{
				Check:    "parse",
				Path:     p.Path,
				Severity: model.SeverityError,
				Message:  "el documento no se puede analizar",
				Value:    err.Error(),
			})
			continue
		}
		doc := &Document{Path: p.Path, Extracted: ext}
		docs = append(docs, doc)

		for _, c := range a.checks {
			found := c.Run(doc)
			if len(found) > 0 {
				a.logger.Debug("audit check found problems", "check", c.Name(), "path", p.Path, "count", len(found))
			}
			findings = append(findings, found...)
		}
	}

	findings = append(findings, duplicates(docs, "duplicate-title", "título repetido en",
		func(d *Document) string { return d.Title })...)
	findings = append(findings, duplicates(docs, "duplicate-description", "descripción repetida en",
		func(d *Document) string { return d.Description })...)

	findings = deduplicate(findings)
	Sort(findings)
	return findings, nil
}

// duplicates reports every document whose key(doc) is shared with another.
func duplicates(docs []*Document, check, message string, key func(*Document) string) []model.Finding {
	byKey := make(map[string][]string)
	for _, d := range docs {
		if k := strings.TrimSpace(key(d)); k != "" {
			byKey[k] = append(byKey[k], d.Path)
		}
	}

	findings := make([]model.Finding, 0)
	for k, paths := range byKey {
		if len(paths) < 2 {
			continue
		}
		for _, p := range paths {
			others := make([]string, 0, len(paths)-1)
			for _, o := range paths {
				if o != p {
					others = append(others, o)
				}
			}
			findings = append(findings, model.Finding{
				Check:    check,
				Path:     p,
				Severity: model.SeverityWarning,
				Message:  fmt.Sprintf("%s %s", message, strings.Join(others, ", ")),
				Value:    k,
			})
		}
	}
	return findings
}

// deduplicate drops repeated findings with the same check, path and value.
func deduplicate(findings []model.Finding) []model.Finding {
	seen := make(map[string]bool, len(findings))
	out := findings[:0]
	for _, f := range findings {
		key := f.Check + "\x00" + f.Path + "\x00" + f.Value + "\x00" + f.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

// Sort orders findings by severity, most serious first, then by path and check.
func Sort(findings []model.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Check < b.Check
	})
}

// Count returns the number of findings at or above minSeverity.
func Count(findings []model.Finding, minSeverity model.Severity) int {
	n := 0
	for _, f := range findings {
		if f.Severity >= minSeverity {
			n++
		}
	}
	return n
}

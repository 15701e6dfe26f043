// Package sitemap builds the XML sitemap and robots.txt of the site.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/calcsite/internal/catalog"
)

// Namespace is the sitemaps.org schema namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Change frequencies used by the site.
const (
	ChangeDaily   = "daily"
	ChangeWeekly  = "weekly"
	ChangeMonthly = "monthly"
	ChangeYearly  = "yearly"
)

// URLSet is the <urlset> root element.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is one <url> entry.
type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority"`
}

// Options filters the generated entries.
type Options struct {
	// Exclude reports whether a site-relative path must be left out,
	// for example pages marked noindex.
	Exclude func(path string) bool
}

// staticRoutes are the fixed pages and their crawl hints.
var staticRoutes = []struct {
	path     string
	freq     string
	priority float64
}{
	{"/", ChangeDaily, 1.0},
	{"/calculadoras", ChangeWeekly, 0.9},
	{"/blog", ChangeWeekly, 0.8},
	{"/sobre-nosotros", ChangeYearly, 0.3},
	{"/contacto", ChangeYearly, 0.3},
	{"/faq", ChangeMonthly, 0.4},
	{"/legal", ChangeYearly, 0.1},
}

// Build lists every public page: static routes, categories, calculators and
// blog posts. Dates are formatted as YYYY-MM-DD; posts use their own date.
func Build(c *catalog.Catalog, baseURL string, now time.Time, opts Options) *URLSet {
	base := strings.TrimRight(baseURL, "/")
	today := now.UTC().Format(time.DateOnly)
	set := &URLSet{XMLNS: Namespace}

	add := func(path, lastmod, freq string, priority float64) {
		if opts.Exclude != nil && opts.Exclude(path) {
			return
		}
		set.URLs = append(set.URLs, URL{
			Loc:        base + path,
			LastMod:    lastmod,
			ChangeFreq: freq,
			Priority:   priority,
		})
	}

	for _, r := range staticRoutes {
		add(r.path, today, r.freq, r.priority)
	}
	for _, cat := range c.Categories() {
		add("/categoria/"+catalog.Slugify(cat.Title), today, ChangeWeekly, 0.8)
	}
	for _, calc := range c.Calculators() {
		add("/calculadora/"+calc.ID, today, ChangeMonthly, 0.9)
	}
	for _, post := range c.Posts() {
		lastmod := today
		if !post.Date.IsZero() {
			lastmod = post.Date.UTC().Format(time.DateOnly)
		}
		add("/blog/"+post.Slug, lastmod, ChangeMonthly, 0.7)
	}
	return set
}

// Write encodes set as an indented XML document with declaration.
func Write(w io.Writer, set *URLSet) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Robots returns the robots.txt body pointing crawlers at the sitemap.
func Robots(baseURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", strings.TrimRight(baseURL, "/"))
	return b.String()
}

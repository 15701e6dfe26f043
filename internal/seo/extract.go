package seo

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Extracted is the metadata found in a rendered document.
type Extracted struct {
	Meta

	// Lang is the <html lang> attribute.
	Lang string

	// H1 is the text of the first <h1>.
	H1 string

	// JSONLD holds the raw body of each JSON-LD script, in document order.
	JSONLD []string

	// Tags maps every <meta name|property> to its content.
	Tags map[string]string

	// Links holds the href of every <a>, in document order.
	Links []string
}

// Extract walks an HTML document and collects its SEO metadata.
func Extract(r io.Reader) (*Extracted, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	result := &Extracted{
		Tags:   make(map[string]string),
		JSONLD: make([]string, 0),
		Links:  make([]string, 0),
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			processElement(n, result)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	t := result.Tags
	result.Description = t["description"]
	result.Robots = t["robots"]
	result.Heading = t["og:title"]
	result.Type = t["og:type"]
	result.Image = t["og:image"]
	result.Locale = t["og:locale"]
	result.SiteName = t["og:site_name"]
	if kw := t["keywords"]; kw != "" {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				result.Keywords = append(result.Keywords, k)
			}
		}
	}
	return result, nil
}

// processElement handles one element node.
func processElement(n *html.Node, result *Extracted) {
	switch n.Data {
	case "html":
		result.Lang = getAttr(n, "lang")

	case "title":
		if result.Title == "" {
			result.Title = strings.TrimSpace(textOf(n))
		}

	case "h1":
		if result.H1 == "" {
			result.H1 = strings.TrimSpace(textOf(n))
		}

	case "meta":
		name := getAttr(n, "name")
		if name == "" {
			name = getAttr(n, "property") // Open Graph uses property
		}
		if name != "" {
			result.Tags[name] = getAttr(n, "content")
		}

	case "a":
		if href := strings.TrimSpace(getAttr(n, "href")); href != "" {
			result.Links = append(result.Links, href)
		}

	case "link":
		if getAttr(n, "rel") == "canonical" {
			result.Canonical = getAttr(n, "href")
		}

	case "script":
		if getAttr(n, "type") == jsonLDType {
			result.JSONLD = append(result.JSONLD, textOf(n))
		}
	}
}

// getAttr returns the value of an attribute, or "" when absent.
func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textOf concatenates the text nodes below n.
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			walk(k)
		}
	}
	walk(n)
	return b.String()
}

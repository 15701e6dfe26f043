package seo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// jsonLDType is the script type of structured data blocks.
const jsonLDType = "application/ld+json"

// Inject rewrites the <head> of doc with meta and the given JSON-LD values.
// Existing title, description, keywords, robots, canonical, Open Graph,
// Twitter and JSON-LD tags are replaced, never duplicated, so injecting
// twice yields the same document.
func Inject(doc []byte, meta Meta, jsonLD ...any) ([]byte, error) {
	d, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	head := d.Find("head").First()
	if head.Length() == 0 {
		return nil, fmt.Errorf("failed to inject metadata: document has no head")
	}

	d.Find("html").SetAttr("lang", langOf(meta.Locale))

	head.Find("title").Remove()
	head.PrependNodes(element(atom.Title, nil, meta.Title))

	setMeta(head, "name", "description", meta.Description)
	setMeta(head, "name", "keywords", strings.Join(meta.Keywords, ", "))
	setMeta(head, "name", "robots", meta.Robots)

	head.Find(`link[rel="canonical"]`).Remove()
	if meta.Canonical != "" {
		head.AppendNodes(element(atom.Link, []html.Attribute{
			{Key: "rel", Val: "canonical"},
			{Key: "href", Val: meta.Canonical},
		}, ""))
	}

	setMeta(head, "property", "og:title", meta.Heading)
	setMeta(head, "property", "og:description", meta.Description)
	setMeta(head, "property", "og:type", meta.Type)
	setMeta(head, "property", "og:url", meta.Canonical)
	setMeta(head, "property", "og:image", meta.Image)
	setMeta(head, "property", "og:locale", meta.Locale)
	setMeta(head, "property", "og:site_name", meta.SiteName)

	card := "summary"
	if meta.Image != "" {
		card = "summary_large_image"
	}
	setMeta(head, "name", "twitter:card", card)
	setMeta(head, "name", "twitter:title", meta.Heading)
	setMeta(head, "name", "twitter:description", meta.Description)
	setMeta(head, "name", "twitter:image", meta.Image)

	extra := make([]string, 0, len(meta.Extra))
	for name := range meta.Extra {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		setMeta(head, "name", name, meta.Extra[name])
	}

	head.Find(`script[type="` + jsonLDType + `"]`).Remove()
	for _, v := range jsonLD {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode structured data: %w", err)
		}
		head.AppendNodes(element(atom.Script, []html.Attribute{{Key: "type", Val: jsonLDType}}, string(data)))
	}

	out, err := d.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}
	return []byte(out), nil
}

// setMeta replaces the <meta attr=key> tag. An empty content removes it.
func setMeta(head *goquery.Selection, attr, key, content string) {
	head.Find(fmt.Sprintf(`meta[%s=%q]`, attr, key)).Remove()
	if content == "" {
		return
	}
	head.AppendNodes(element(atom.Meta, []html.Attribute{
		{Key: attr, Val: key},
		{Key: "content", Val: content},
	}, ""))
}

// element builds a detached node with an optional text child.
func element(a atom.Atom, attrs []html.Attribute, text string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}

// langOf maps an Open Graph locale ("es_ES") to a BCP 47 tag ("es-ES").
func langOf(locale string) string {
	if locale == "" {
		return "es"
	}
	return strings.ReplaceAll(locale, "_", "-")
}

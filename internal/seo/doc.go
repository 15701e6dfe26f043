// Package seo derives per-page metadata and writes it into rendered HTML.
//
// ForPath computes the title, description, canonical URL, Open Graph and
// Twitter card data of a route from the catalog. Inject rewrites the <head>
// of a document with that metadata and JSON-LD blocks, replacing tags that
// already exist. Extract reads the metadata back from a document and is used
// by tests and the build manifest.
package seo

// Package site renders the public pages of the calculator site and exports
// them as a static tree.
//
// Pages are produced from html/template files embedded in the binary. Every
// rendered document then goes through seo.Inject, which fills the <head>
// with the metadata and breadcrumb structured data of its path. The Builder
// renders every route concurrently and writes the result, plus sitemap.xml,
// robots.txt and a manifest of content hashes, to an output directory.
package site

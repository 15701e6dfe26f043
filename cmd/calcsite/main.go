// Package main provides the entry point for the calcsite CLI.
//
// calcsite serves and builds a Spanish-language calculator website:
// breadcrumb navigation, unit and currency conversion, finance, math and
// health calculators, a blog and the SEO metadata of every page.
//
// Usage:
//
//	calcsite serve
//	calcsite build -o dist
//	calcsite convert 10 kilometros millas -k longitud
//
// See --help for all available options.
package main

func main() {
	Execute()
}

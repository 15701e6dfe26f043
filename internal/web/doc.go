// Package web serves the calculator site over HTTP: rendered pages, the
// sitemap and robots.txt, and a JSON API for breadcrumbs, unit and currency
// conversion, calculator computations and calculation history.
package web

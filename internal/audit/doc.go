// Package audit checks rendered pages for SEO problems.
//
// An Auditor runs a set of Checks against every page. Each Check looks at
// one concern of a single page: its title, its description, its canonical
// link and so on. Problems that only show up across pages, like two pages
// sharing a title, are found by the Auditor itself after the per-page
// checks have run.
//
// Findings are ordered by severity, most serious first, and then by path.
package audit

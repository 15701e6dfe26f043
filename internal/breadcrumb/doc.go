// Package breadcrumb derives the navigation trail shown above every page
// and its schema.org BreadcrumbList projection.
//
// The trail is computed from the request path alone plus read access to the
// catalog. Positional rules decide which intermediate entries appear, and
// the last segment is resolved against categories, calculators or blog
// posts depending on the segment before it. Lookups that fail never produce
// an error: the label falls back to the segment with its first letter
// upper-cased.
package breadcrumb

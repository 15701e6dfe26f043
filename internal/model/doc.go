// Package model defines the data structures shared across calcsite.
//
// This package contains the following main types:
//   - Category, Calculator, BlogPost: the read-only site catalog
//   - BreadcrumbItem, BreadcrumbList: navigation trail and its schema.org projection
//   - HistoryEntry: a persisted calculation result
//   - CatalogSummary: aggregated catalog statistics for reports
//   - Finding, Severity: SEO audit results
//
// All catalog types are built once at startup and never mutated afterwards.
// The types serialize to JSON for the HTTP API and to YAML for catalog files.
package model

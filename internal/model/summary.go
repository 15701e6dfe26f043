package model

import "time"

// CatalogSummary aggregates catalog statistics for the catalog report.
type CatalogSummary struct {
	SiteName    string            `json:"site_name"`
	GeneratedAt time.Time         `json:"generated_at"`
	Categories  []CategorySummary `json:"categories"`

	InputBased     int `json:"input_based"`
	ComponentBased int `json:"component_based"`
	Posts          int `json:"posts"`
}

// CategorySummary is the per-category line of a CatalogSummary.
type CategorySummary struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Calculators []string `json:"calculators"`
}

// TotalCalculators returns the number of calculators across both kinds.
func (s *CatalogSummary) TotalCalculators() int {
	return s.InputBased + s.ComponentBased
}

package config

import "maps"

// PageConfig overrides the generated SEO metadata of one path.
// Empty fields keep the generated value.
type PageConfig struct {
	// Title replaces the page title (the site name is still appended).
	Title string `yaml:"title,omitempty" mapstructure:"title"`

	// Description replaces the meta description.
	Description string `yaml:"description,omitempty" mapstructure:"description"`

	// Keywords replaces the meta keywords.
	Keywords []string `yaml:"keywords,omitempty" mapstructure:"keywords"`

	// Image replaces the Open Graph image.
	Image string `yaml:"image,omitempty" mapstructure:"image"`

	// NoIndex adds a robots noindex directive and drops the path from the sitemap.
	NoIndex bool `yaml:"noindex,omitempty" mapstructure:"noindex"`

	// Meta adds extra <meta name=... content=...> tags.
	Meta map[string]string `yaml:"meta,omitempty" mapstructure:"meta"`
}

// File represents the page section of the .calcsite.yaml file.
type File struct {
	// Pages maps site-relative paths ("/calculadora/calculadora-imc") to overrides.
	Pages map[string]PageConfig `yaml:"pages,omitempty" mapstructure:"pages"`

	// Defaults apply to every page unless overridden per path.
	Defaults PageConfig `yaml:"defaults,omitempty" mapstructure:"defaults"`
}

// GetPageConfig returns the overrides for path merged over the defaults.
func (cf *File) GetPageConfig(path string) PageConfig {
	if cf == nil {
		return PageConfig{}
	}

	result := cf.Defaults
	result.Meta = maps.Clone(cf.Defaults.Meta)

	page, ok := cf.Pages[path]
	if !ok {
		return result
	}
	if page.Title != "" {
		result.Title = page.Title
	}
	if page.Description != "" {
		result.Description = page.Description
	}
	if len(page.Keywords) > 0 {
		result.Keywords = page.Keywords
	}
	if page.Image != "" {
		result.Image = page.Image
	}
	if page.NoIndex {
		result.NoIndex = true
	}
	if len(page.Meta) > 0 {
		if result.Meta == nil {
			result.Meta = make(map[string]string, len(page.Meta))
		}
		maps.Copy(result.Meta, page.Meta)
	}
	return result
}

// NoIndex reports whether path is excluded from indexing.
func (cf *File) NoIndex(path string) bool {
	return cf.GetPageConfig(path).NoIndex
}

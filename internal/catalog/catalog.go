package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/calcsite/internal/model"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Catalog validation errors.
var (
	// ErrDuplicateCalculator is returned when two calculators share an ID.
	ErrDuplicateCalculator = errors.New("duplicate calculator id")

	// ErrDuplicatePost is returned when two posts share a slug.
	ErrDuplicatePost = errors.New("duplicate post slug")

	// ErrDuplicateCategory is returned when two category titles produce the same slug.
	ErrDuplicateCategory = errors.New("duplicate category slug")

	// ErrUnknownCategory is returned when a calculator references a missing category.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownRelated is returned when a post links to a missing calculator.
	ErrUnknownRelated = errors.New("unknown related calculator")
)

// file mirrors the on-disk YAML layout.
type file struct {
	Categories  []model.Category   `yaml:"categories"`
	Calculators []model.Calculator `yaml:"calculators"`
	Posts       []model.BlogPost   `yaml:"posts"`
}

// Catalog is the loaded, indexed site catalog.
type Catalog struct {
	categories  []model.Category
	calculators map[string]*model.Calculator
	order       []string
	posts       []model.BlogPost
	postsBySlug map[string]*model.BlogPost
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file. An empty path returns the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path) //nolint:gosec // catalog path comes from trusted configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f.Categories, f.Calculators, f.Posts)
}

// New indexes and validates the given records.
func New(categories []model.Category, calculators []model.Calculator, posts []model.BlogPost) (*Catalog, error) {
	c := &Catalog{
		categories:  append([]model.Category(nil), categories...),
		calculators: make(map[string]*model.Calculator, len(calculators)),
		postsBySlug: make(map[string]*model.BlogPost, len(posts)),
	}

	slugs := make(map[string]bool, len(categories))
	for _, cat := range categories {
		slug := FoldSlug(Slugify(cat.Title))
		if slugs[slug] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, cat.Title)
		}
		slugs[slug] = true
	}

	for i := range calculators {
		calc := calculators[i]
		if _, ok := c.calculators[calc.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCalculator, calc.ID)
		}
		if err := calc.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.Category(Slugify(calc.Category)); !ok {
			return nil, fmt.Errorf("calculator %s: %w: %q", calc.ID, ErrUnknownCategory, calc.Category)
		}
		c.calculators[calc.ID] = &calc
		c.order = append(c.order, calc.ID)
	}
	sort.Strings(c.order)

	c.posts = append([]model.BlogPost(nil), posts...)
	sort.SliceStable(c.posts, func(i, j int) bool {
		return c.posts[i].Date.After(c.posts[j].Date)
	})
	for i := range c.posts {
		p := &c.posts[i]
		if _, ok := c.postsBySlug[p.Slug]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePost, p.Slug)
		}
		for _, id := range p.Content.RelatedCalculators {
			if _, ok := c.calculators[id]; !ok {
				return nil, fmt.Errorf("post %s: %w: %s", p.Slug, ErrUnknownRelated, id)
			}
		}
		c.postsBySlug[p.Slug] = p
	}

	return c, nil
}

// Categories returns all categories in catalog order.
func (c *Catalog) Categories() []model.Category {
	return append([]model.Category(nil), c.categories...)
}

// Category finds the category addressed by a URL slug.
func (c *Catalog) Category(slug string) (model.Category, bool) {
	for _, cat := range c.categories {
		if SlugMatches(cat.Title, slug) {
			return cat, true
		}
	}
	return model.Category{}, false
}

// Calculator returns the calculator registered under id.
func (c *Catalog) Calculator(id string) (model.Calculator, bool) {
	calc, ok := c.calculators[id]
	if !ok {
		return model.Calculator{}, false
	}
	return *calc, true
}

// Calculators returns every calculator sorted by ID.
func (c *Catalog) Calculators() []model.Calculator {
	out := make([]model.Calculator, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.calculators[id])
	}
	return out
}

// CalculatorsIn returns the calculators of the category addressed by slug.
func (c *Catalog) CalculatorsIn(slug string) []model.Calculator {
	var out []model.Calculator
	for _, id := range c.order {
		calc := c.calculators[id]
		if SlugMatches(calc.Category, slug) {
			out = append(out, *calc)
		}
	}
	return out
}

// Post returns the blog post with the given slug.
func (c *Catalog) Post(slug string) (model.BlogPost, bool) {
	p, ok := c.postsBySlug[slug]
	if !ok {
		return model.BlogPost{}, false
	}
	return *p, true
}

// Posts returns every blog post, newest first.
func (c *Catalog) Posts() []model.BlogPost {
	return append([]model.BlogPost(nil), c.posts...)
}

// RelatedCalculators resolves the calculators promoted by a post.
func (c *Catalog) RelatedCalculators(post model.BlogPost) []model.Calculator {
	out := make([]model.Calculator, 0, len(post.Content.RelatedCalculators))
	for _, id := range post.Content.RelatedCalculators {
		if calc, ok := c.calculators[id]; ok {
			out = append(out, *calc)
		}
	}
	return out
}

// Summary aggregates the catalog for reporting.
func (c *Catalog) Summary(siteName string, now time.Time) *model.CatalogSummary {
	s := &model.CatalogSummary{
		SiteName:    siteName,
		GeneratedAt: now,
		Posts:       len(c.posts),
	}

	for _, cat := range c.categories {
		slug := Slugify(cat.Title)
		cs := model.CategorySummary{Title: cat.Title, Slug: slug, Calculators: []string{}}
		for _, calc := range c.CalculatorsIn(slug) {
			cs.Calculators = append(cs.Calculators, calc.ID)
		}
		s.Categories = append(s.Categories, cs)
	}

	for _, id := range c.order {
		calc := c.calculators[id]
		switch calc.Kind {
		case model.KindInputBased:
			s.InputBased++
		case model.KindComponentBased:
			s.ComponentBased++
		}
	}

	return s
}

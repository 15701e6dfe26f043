package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/calcsite/internal/model"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	if err != nil {
		t.Fatalf("failed to load embedded catalog: %v", err)
	}
	return c
}

func TestDefault(t *testing.T) {
	t.Parallel()

	c := mustDefault(t)

	t.Run("has categories", func(t *testing.T) {
		t.Parallel()
		if len(c.Categories()) == 0 {
			t.Error("expected categories")
		}
	})

	t.Run("mortgage calculator is registered", func(t *testing.T) {
		t.Parallel()
		calc, ok := c.Calculator("calculadora-hipoteca")
		if !ok {
			t.Fatal("expected calculadora-hipoteca")
		}
		if calc.Title != "Calculadora de Hipoteca" {
			t.Errorf("unexpected title %q", calc.Title)
		}
		if !calc.IsInputBased() {
			t.Error("expected input-based calculator")
		}
	})

	t.Run("calculators are sorted by id", func(t *testing.T) {
		t.Parallel()
		calcs := c.Calculators()
		for i := 1; i < len(calcs); i++ {
			if calcs[i-1].ID > calcs[i].ID {
				t.Errorf("calculators not sorted: %s > %s", calcs[i-1].ID, calcs[i].ID)
			}
		}
	})

	t.Run("posts are newest first", func(t *testing.T) {
		t.Parallel()
		posts := c.Posts()
		for i := 1; i < len(posts); i++ {
			if posts[i-1].Date.Before(posts[i].Date) {
				t.Errorf("posts not sorted: %s before %s", posts[i-1].Slug, posts[i].Slug)
			}
		}
	})

	t.Run("related calculators resolve", func(t *testing.T) {
		t.Parallel()
		post, ok := c.Post("como-calcular-cuota-hipoteca")
		if !ok {
			t.Fatal("expected post")
		}
		related := c.RelatedCalculators(post)
		if len(related) != 2 {
			t.Errorf("expected 2 related calculators, got %d", len(related))
		}
	})
}

func TestCategoryLookup(t *testing.T) {
	t.Parallel()

	c := mustDefault(t)

	tests := []struct {
		slug string
		want string
		ok   bool
	}{
		{"matematicas", "Matemáticas", true},
		{"matemáticas", "Matemáticas", true},
		{"finanzas", "Finanzas", true},
		{"Finanzas", "", false},
		{"MATEMATICAS", "", false},
		{"astronomia", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			t.Parallel()
			cat, ok := c.Category(tt.slug)
			if ok != tt.ok {
				t.Fatalf("Category(%q) ok = %v, want %v", tt.slug, ok, tt.ok)
			}
			if cat.Title != tt.want {
				t.Errorf("Category(%q) = %q, want %q", tt.slug, cat.Title, tt.want)
			}
		})
	}

	t.Run("calculators in category", func(t *testing.T) {
		t.Parallel()
		calcs := c.CalculatorsIn("conversores")
		if len(calcs) != 3 {
			t.Errorf("expected 3 converters, got %d", len(calcs))
		}
	})
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Matemáticas", "matemáticas"},
		{"Salud y Bienestar", "salud-y-bienestar"},
		{"  Doble   espacio ", "doble-espacio"},
		{"Finanzas", "finanzas"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	categories := []model.Category{{Title: "Finanzas"}}
	valid := model.Calculator{
		ID: "a", Title: "A", Category: "Finanzas", Kind: model.KindInputBased,
		Inputs: []model.InputField{{Name: "x", Label: "X"}},
	}

	t.Run("duplicate calculator", func(t *testing.T) {
		t.Parallel()
		_, err := New(categories, []model.Calculator{valid, valid}, nil)
		if !errors.Is(err, ErrDuplicateCalculator) {
			t.Errorf("expected ErrDuplicateCalculator, got %v", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()
		calc := valid
		calc.Category = "Astronomía"
		_, err := New(categories, []model.Calculator{calc}, nil)
		if !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("expected ErrUnknownCategory, got %v", err)
		}
	})

	t.Run("kind payload mismatch", func(t *testing.T) {
		t.Parallel()
		calc := valid
		calc.Kind = model.KindComponentBased
		_, err := New(categories, []model.Calculator{calc}, nil)
		if !errors.Is(err, model.ErrMixedPayload) {
			t.Errorf("expected ErrMixedPayload, got %v", err)
		}
	})

	t.Run("duplicate category slug", func(t *testing.T) {
		t.Parallel()
		_, err := New([]model.Category{{Title: "Matemáticas"}, {Title: "matematicas"}}, nil, nil)
		if !errors.Is(err, ErrDuplicateCategory) {
			t.Errorf("expected ErrDuplicateCategory, got %v", err)
		}
	})

	t.Run("duplicate post slug", func(t *testing.T) {
		t.Parallel()
		posts := []model.BlogPost{{ID: 1, Slug: "x"}, {ID: 2, Slug: "x"}}
		_, err := New(categories, nil, posts)
		if !errors.Is(err, ErrDuplicatePost) {
			t.Errorf("expected ErrDuplicatePost, got %v", err)
		}
	})

	t.Run("unknown related calculator", func(t *testing.T) {
		t.Parallel()
		posts := []model.BlogPost{{Slug: "x", Content: model.PostContent{RelatedCalculators: []string{"missing"}}}}
		_, err := New(categories, nil, posts)
		if !errors.Is(err, ErrUnknownRelated) {
			t.Errorf("expected ErrUnknownRelated, got %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty path returns embedded catalog", func(t *testing.T) {
		t.Parallel()
		c, err := Load("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(c.Calculators()) == 0 {
			t.Error("expected calculators")
		}
	})

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		content := `categories:
  - title: Ciencia
    description: Física y química.
calculators:
  - id: calculadora-densidad
    title: Calculadora de Densidad
    description: Masa entre volumen.
    category: Ciencia
    kind: input-based
    inputs:
      - {name: masa, label: Masa}
posts: []
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		c, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := c.Calculator("calculadora-densidad"); !ok {
			t.Error("expected calculadora-densidad")
		}
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		t.Parallel()
		if _, err := Parse([]byte("categories: []\nwidgets: []\n")); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error")
		}
	})
}

func TestSummary(t *testing.T) {
	t.Parallel()

	c := mustDefault(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := c.Summary("Calculadoras", now)

	if s.TotalCalculators() != len(c.Calculators()) {
		t.Errorf("expected %d calculators, got %d", len(c.Calculators()), s.TotalCalculators())
	}
	if s.ComponentBased != 3 {
		t.Errorf("expected 3 component-based calculators, got %d", s.ComponentBased)
	}
	if s.Posts != len(c.Posts()) {
		t.Errorf("expected %d posts, got %d", len(c.Posts()), s.Posts)
	}
	if len(s.Categories) != len(c.Categories()) {
		t.Errorf("expected one summary line per category")
	}
}

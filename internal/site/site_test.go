package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/calcsite/internal/catalog"
	"github.com/nao1215/calcsite/internal/config"
	"github.com/nao1215/calcsite/internal/seo"
)

func newTestRenderer(t *testing.T) (*Renderer, *catalog.Catalog) {
	t.Helper()

	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	site := seo.Site{
		Name:         "Calculadoras Online",
		BaseURL:      "https://calc.example",
		Locale:       "es_ES",
		DefaultImage: "/img/og.png",
		Pages: &config.File{Pages: map[string]config.PageConfig{
			"/legal": {NoIndex: true},
		}},
	}
	clock := func() time.Time { return time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC) }
	r, err := NewRenderer(c, site, WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	return r, c
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	routes := Routes(c)

	want := len(staticRoutes) + len(c.Categories()) + len(c.Calculators()) + len(c.Posts())
	if len(routes) != want {
		t.Fatalf("got %d routes, want %d", len(routes), want)
	}
	for _, r := range []string{"/", "/calculadora/calculadora-hipoteca", "/categoria/matemáticas", "/blog/" + c.Posts()[0].Slug} {
		if !slices.Contains(routes, r) {
			t.Errorf("route %s missing", r)
		}
	}
}

func TestRenderEveryRoute(t *testing.T) {
	t.Parallel()

	r, c := newTestRenderer(t)
	for _, route := range Routes(c) {
		t.Run(route, func(t *testing.T) {
			t.Parallel()

			page, err := r.Render(route)
			if err != nil {
				t.Fatalf("Render(%q) error = %v", route, err)
			}
			if page.Status != http.StatusOK {
				t.Errorf("status = %d", page.Status)
			}

			got, err := seo.Extract(bytes.NewReader(page.HTML))
			if err != nil {
				t.Fatal(err)
			}
			if got.Title != page.Meta.Title {
				t.Errorf("title = %q, want %q", got.Title, page.Meta.Title)
			}
			if got.H1 != page.Meta.Heading {
				t.Errorf("h1 = %q, want %q", got.H1, page.Meta.Heading)
			}
			if got.Lang != "es-ES" {
				t.Errorf("lang = %q", got.Lang)
			}
			if route != "/" && len(got.JSONLD) == 0 {
				t.Error("breadcrumb structured data missing")
			}
		})
	}
}

func TestRenderCalculator(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t)
	page, err := r.Render("/calculadora/calculadora-hipoteca/")
	if err != nil {
		t.Fatal(err)
	}
	if page.Path != "/calculadora/calculadora-hipoteca" {
		t.Errorf("path = %q", page.Path)
	}

	body := string(page.HTML)
	for _, want := range []string{
		`data-calculator="calculadora-hipoteca"`,
		`name="principal"`,
		`<a href="/calculadoras">Calculadoras</a>`,
		`<li aria-current="page">Calculadora de Hipoteca</li>`,
		`<link rel="canonical" href="https://calc.example/calculadora/calculadora-hipoteca"/>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %s", want)
		}
	}

	got, err := seo.Extract(bytes.NewReader(page.HTML))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.JSONLD) != 1 || !strings.Contains(got.JSONLD[0], `"BreadcrumbList"`) {
		t.Errorf("unexpected structured data %v", got.JSONLD)
	}
}

func TestRenderPost(t *testing.T) {
	t.Parallel()

	r, c := newTestRenderer(t)
	post := c.Posts()[0]
	page, err := r.Render("/blog/" + post.Slug)
	if err != nil {
		t.Fatal(err)
	}

	got, err := seo.Extract(bytes.NewReader(page.HTML))
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != seo.TypeArticle {
		t.Errorf("og:type = %q", got.Type)
	}
	if len(got.JSONLD) != 2 {
		t.Fatalf("got %d JSON-LD blocks, want 2", len(got.JSONLD))
	}

	var article map[string]any
	if err := json.Unmarshal([]byte(got.JSONLD[1]), &article); err != nil {
		t.Fatal(err)
	}
	if article["@type"] != "Article" || article["headline"] != post.Title {
		t.Errorf("unexpected article %v", article)
	}
}

func TestRenderNoIndexOverride(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t)
	page, err := r.Render("/legal")
	if err != nil {
		t.Fatal(err)
	}
	if page.Meta.Robots != seo.RobotsNoIndex {
		t.Errorf("robots = %q", page.Meta.Robots)
	}
}

func TestRenderNotFound(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t)
	for _, path := range []string{
		"/calculadora/no-existe",
		"/categoria/deportes",
		"/blog/no-existe",
		"/precios",
		"/calculadora/calculadora-hipoteca/extra",
		"/calculadora",
	} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			if _, err := r.Render(path); !errors.Is(err, ErrNotFound) {
				t.Errorf("Render(%q) error = %v, want ErrNotFound", path, err)
			}
		})
	}

	page, err := r.RenderNotFound("/precios")
	if err != nil {
		t.Fatal(err)
	}
	if page.Status != http.StatusNotFound {
		t.Errorf("status = %d", page.Status)
	}
	if page.Meta.Robots != seo.RobotsNoIndex {
		t.Errorf("robots = %q", page.Meta.Robots)
	}
	if strings.Contains(string(page.HTML), `rel="canonical"`) {
		t.Error("404 page must not declare a canonical url")
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	r, c := newTestRenderer(t)
	outDir := t.TempDir()
	clock := func() time.Time { return time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC) }
	exclude := func(path string) bool { return path == "/legal" }

	b := NewBuilder(r, c, WithWorkers(3), WithExclude(exclude), WithBuildClock(clock))
	manifest, err := b.Build(context.Background(), outDir)
	if err != nil {
		t.Fatal(err)
	}

	routes := Routes(c)
	if want := len(routes) + 3; len(manifest.Files) != want {
		t.Fatalf("manifest has %d files, want %d", len(manifest.Files), want)
	}
	if !slices.IsSortedFunc(manifest.Files, func(a, b ManifestEntry) int { return strings.Compare(a.Path, b.Path) }) {
		t.Error("manifest is not sorted")
	}

	for _, entry := range manifest.Files {
		data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(entry.Path)))
		if err != nil {
			t.Fatalf("%s: %v", entry.Path, err)
		}
		if ContentHash(data) != entry.SHA3 || len(data) != entry.Size {
			t.Errorf("%s: manifest does not match file", entry.Path)
		}
	}

	for _, rel := range []string{"index.html", "calculadora/calculadora-imc/index.html", "404.html", "robots.txt", "manifest.json"} {
		if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s missing: %v", rel, err)
		}
	}

	sm, err := os.ReadFile(filepath.Join(outDir, SitemapFile))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(sm), "/legal<") {
		t.Error("excluded path listed in sitemap")
	}
	if !strings.Contains(string(sm), "<lastmod>2024-07-15</lastmod>") {
		t.Error("sitemap does not use the build date")
	}
}

func TestBuildCancelled(t *testing.T) {
	t.Parallel()

	r, c := newTestRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewBuilder(r, c).Build(ctx, t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestRouteFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		route string
		want  string
	}{
		{"/", "index.html"},
		{"/blog", "blog/index.html"},
		{"/calculadora/calculadora-imc", "calculadora/calculadora-imc/index.html"},
	}
	for _, tt := range tests {
		if got := routeFile(tt.route); got != tt.want {
			t.Errorf("routeFile(%q) = %q, want %q", tt.route, got, tt.want)
		}
	}
}

func TestETag(t *testing.T) {
	t.Parallel()

	a := ETag([]byte("hola"))
	if a != ETag([]byte("hola")) {
		t.Error("ETag is not deterministic")
	}
	if a == ETag([]byte("adiós")) {
		t.Error("different content produced the same ETag")
	}
	if len(a) != 34 || a[0] != '"' || a[33] != '"' {
		t.Errorf("malformed ETag %s", a)
	}
}

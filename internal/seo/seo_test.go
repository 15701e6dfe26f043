package seo

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nao1215/calcsite/internal/catalog"
	"github.com/nao1215/calcsite/internal/config"
	"github.com/nao1215/calcsite/internal/model"
)

func testSite() Site {
	return Site{
		Name:         "Calculadoras Online",
		BaseURL:      "https://calc.example/",
		Locale:       "es_ES",
		DefaultImage: "/img/og.png",
	}
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return c
}

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>viejo</title>
<meta name="description" content="vieja">
<link rel="canonical" href="https://old.example/">
<script type="application/ld+json">{"old":true}</script>
<link rel="stylesheet" href="/app.css">
</head>
<body><h1>Hola</h1></body>
</html>`

func TestForPath(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)
	site := testSite()

	tests := []struct {
		name        string
		path        string
		heading     string
		title       string
		typ         string
		canonical   string
		description string
	}{
		{
			name:      "home",
			path:      "/",
			heading:   "Calculadoras Online",
			title:     "Calculadoras Online: calculadoras online gratuitas",
			typ:       TypeWebsite,
			canonical: "https://calc.example/",
		},
		{
			name:      "calculator",
			path:      "/calculadora/calculadora-hipoteca",
			heading:   "Calculadora de Hipoteca",
			title:     "Calculadora de Hipoteca | Calculadoras Online",
			typ:       TypeWebsite,
			canonical: "https://calc.example/calculadora/calculadora-hipoteca",
		},
		{
			name:        "category with folded slug",
			path:        "/categoria/matematicas",
			heading:     "Calculadoras de Matemáticas",
			title:       "Calculadoras de Matemáticas | Calculadoras Online",
			typ:         TypeWebsite,
			canonical:   "https://calc.example/categoria/matematicas",
			description: "Ecuaciones, porcentajes y operaciones habituales.",
		},
		{
			name:      "blog post",
			path:      "/blog/que-es-el-imc",
			heading:   "",
			typ:       TypeArticle,
			canonical: "https://calc.example/blog/que-es-el-imc",
		},
		{
			name:      "static page",
			path:      "/faq/",
			heading:   "Preguntas frecuentes",
			title:     "Preguntas frecuentes | Calculadoras Online",
			typ:       TypeWebsite,
			canonical: "https://calc.example/faq",
		},
		{
			name:        "unknown path",
			path:        "/blog/some-unknown-slug",
			heading:     "Some-unknown-slug",
			title:       "Some-unknown-slug | Calculadoras Online",
			typ:         TypeWebsite,
			description: defaultDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := ForPath(c, site, tt.path)
			if tt.heading != "" && m.Heading != tt.heading {
				t.Errorf("Heading = %q, want %q", m.Heading, tt.heading)
			}
			if tt.title != "" && m.Title != tt.title {
				t.Errorf("Title = %q, want %q", m.Title, tt.title)
			}
			if m.Type != tt.typ {
				t.Errorf("Type = %q, want %q", m.Type, tt.typ)
			}
			if tt.canonical != "" && m.Canonical != tt.canonical {
				t.Errorf("Canonical = %q, want %q", m.Canonical, tt.canonical)
			}
			if tt.description != "" && m.Description != tt.description {
				t.Errorf("Description = %q, want %q", m.Description, tt.description)
			}
			if !strings.HasPrefix(m.Image, "https://calc.example/") {
				t.Errorf("Image should be absolute, got %q", m.Image)
			}
			if m.Robots != RobotsIndex || m.Locale != "es_ES" || m.SiteName != site.Name {
				t.Errorf("unexpected site fields %+v", m)
			}
		})
	}
}

func TestForPathBlogPost(t *testing.T) {
	t.Parallel()

	c := defaultCatalog(t)
	post, ok := c.Post("que-es-el-imc")
	if !ok {
		t.Fatal("post missing from catalog")
	}
	m := ForPath(c, testSite(), "/blog/que-es-el-imc")
	if m.Heading != post.Title || m.Description != post.Description {
		t.Errorf("post metadata not used: %+v", m)
	}
	if post.Image != "" && m.Image != "https://calc.example"+post.Image {
		t.Errorf("Image = %q", m.Image)
	}
}

func TestForPathOverrides(t *testing.T) {
	t.Parallel()

	lookup, err := catalog.New(
		[]model.Category{{Title: "Salud"}},
		[]model.Calculator{{
			ID: "calculadora-imc", Title: "Calculadora de IMC", Category: "Salud",
			Kind: model.KindInputBased, Inputs: []model.InputField{{Name: "peso"}},
			Keywords: []string{"imc"},
		}},
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	site := testSite()
	site.Pages = &config.File{
		Pages: map[string]config.PageConfig{
			"/calculadora/calculadora-imc": {Title: "IMC online", Keywords: []string{"peso", "altura"}},
			"/legal":                       {NoIndex: true},
		},
		Defaults: config.PageConfig{Meta: map[string]string{"author": "Equipo"}},
	}

	m := ForPath(lookup, site, "/calculadora/calculadora-imc")
	if m.Heading != "IMC online" || m.Title != "IMC online | Calculadoras Online" {
		t.Errorf("title override not applied: %q / %q", m.Heading, m.Title)
	}
	if strings.Join(m.Keywords, ",") != "peso,altura" {
		t.Errorf("keywords override not applied: %v", m.Keywords)
	}
	if m.Extra["author"] != "Equipo" {
		t.Errorf("default meta not applied: %v", m.Extra)
	}

	if got := ForPath(lookup, site, "/legal").Robots; got != RobotsNoIndex {
		t.Errorf("Robots = %q, want %q", got, RobotsNoIndex)
	}
}

func TestInjectAndExtract(t *testing.T) {
	t.Parallel()

	meta := ForPath(defaultCatalog(t), testSite(), "/calculadora/calculadora-imc")
	meta.Extra = map[string]string{"author": "Equipo"}
	ld := map[string]any{"@context": "https://schema.org", "@type": "WebPage", "name": "IMC <script>"}

	out, err := Inject([]byte(page), meta, ld)
	if err != nil {
		t.Fatalf("Inject failed: %v", err)
	}

	got, err := Extract(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if got.Title != meta.Title {
		t.Errorf("Title = %q, want %q", got.Title, meta.Title)
	}
	if got.Description != meta.Description {
		t.Errorf("Description = %q, want %q", got.Description, meta.Description)
	}
	if got.Canonical != meta.Canonical {
		t.Errorf("Canonical = %q, want %q", got.Canonical, meta.Canonical)
	}
	if got.Heading != meta.Heading || got.Type != meta.Type || got.Image != meta.Image {
		t.Errorf("Open Graph mismatch: %+v", got.Meta)
	}
	if strings.Join(got.Keywords, ",") != strings.Join(meta.Keywords, ",") {
		t.Errorf("Keywords = %v, want %v", got.Keywords, meta.Keywords)
	}
	if got.Tags["twitter:card"] != "summary_large_image" || got.Tags["author"] != "Equipo" {
		t.Errorf("unexpected tags %v", got.Tags)
	}
	if got.Lang != "es-ES" {
		t.Errorf("Lang = %q, want es-ES", got.Lang)
	}
	if got.H1 != "Hola" {
		t.Errorf("body was modified, H1 = %q", got.H1)
	}

	if len(got.JSONLD) != 1 {
		t.Fatalf("expected the old JSON-LD to be replaced, got %d blocks", len(got.JSONLD))
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(got.JSONLD[0]), &decoded); err != nil {
		t.Fatalf("JSON-LD is not valid JSON: %v", err)
	}
	if decoded["name"] != "IMC <script>" {
		t.Errorf("JSON-LD round trip failed: %v", decoded)
	}
	if bytes.Contains(out, []byte("IMC <script>")) {
		t.Error("JSON-LD must escape < to stay inside its script element")
	}
	if !bytes.Contains(out, []byte(`href="/app.css"`)) {
		t.Error("unrelated head elements must be kept")
	}
}

func TestInjectIsIdempotent(t *testing.T) {
	t.Parallel()

	meta := ForPath(defaultCatalog(t), testSite(), "/blog")
	once, err := Inject([]byte(page), meta)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Inject(once, meta)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(once, twice) {
		t.Errorf("second injection changed the document:\n%s\n---\n%s", once, twice)
	}
	for _, tag := range []string{"<title>", `name="description"`, `rel="canonical"`, `property="og:title"`} {
		if n := bytes.Count(twice, []byte(tag)); n != 1 {
			t.Errorf("%s appears %d times", tag, n)
		}
	}
}

func TestInjectRemovesEmptyTags(t *testing.T) {
	t.Parallel()

	meta := Meta{Title: "T", Heading: "T"}
	out, err := Inject([]byte(page), meta)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(out, []byte(`name="description"`)) {
		t.Error("empty description should remove the tag")
	}
	if bytes.Contains(out, []byte("canonical")) {
		t.Error("empty canonical should remove the link")
	}
	if !bytes.Contains(out, []byte(`content="summary"`)) {
		t.Error("cards without image should be summary")
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct{ base, path, want string }{
		{"https://x.es", "/", "https://x.es/"},
		{"https://x.es/", "", "https://x.es/"},
		{"https://x.es", "/blog/", "https://x.es/blog"},
		{"https://x.es", "//blog//post", "https://x.es/blog/post"},
	}
	for _, tt := range tests {
		if got := Canonical(tt.base, tt.path); got != tt.want {
			t.Errorf("Canonical(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	doc := `<html><head><title>T</title></head><body>
<a href="/calculadoras">Todas</a>
<a href=" https://example.org/x ">Fuera</a>
<a>sin destino</a>
<link rel="stylesheet" href="/app.css">
</body></html>`

	got, err := Extract(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []string{"/calculadoras", "https://example.org/x"}
	if strings.Join(got.Links, " ") != strings.Join(want, " ") {
		t.Errorf("Links = %v, want %v", got.Links, want)
	}
}

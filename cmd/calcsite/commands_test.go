package main

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/calcsite/internal/calculator"
	"github.com/nao1215/calcsite/internal/model"
	"github.com/nao1215/calcsite/internal/report"
	"github.com/nao1215/calcsite/internal/site"
	"github.com/nao1215/calcsite/internal/sitemap"
)

func TestConvertCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "length",
			args: []string{"convert", "1", "km", "m", "-k", "longitud"},
			want: "1 km = 1000 m",
		},
		{
			name: "spanish decimal comma",
			args: []string{"convert", "2,5", "kilometros", "metros"},
			want: "2.5 kilometros = 2500 metros",
		},
		{
			name: "temperature",
			args: []string{"convert", "100", "celsius", "fahrenheit", "-k", "temperatura"},
			want: "100 celsius = 212 fahrenheit",
		},
		{
			name: "currency uses static rates",
			args: []string{"convert", "100", "eur", "eur", "-k", "moneda"},
			want: "100 EUR = 100 EUR",
		},
		{
			name:    "unknown category",
			args:    []string{"convert", "1", "a", "b", "-k", "colores"},
			wantErr: true,
		},
		{
			name:    "unknown unit",
			args:    []string{"convert", "1", "km", "parsecs", "-k", "longitud"},
			wantErr: true,
		},
		{
			name:    "not a number",
			args:    []string{"convert", "uno", "km", "m"},
			wantErr: true,
		},
		{
			name:    "missing arguments",
			args:    []string{"convert", "1", "km"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := runRoot(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got output %q", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in output, got %q", tt.want, out)
			}
		})
	}

	t.Run("list", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "convert", "--list")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"longitud", "kilometros", "temperatura"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in listing", want)
			}
		}
	})
}

func TestBreadcrumbCmd(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "breadcrumb", "/calculadora/calculadora-hipoteca")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "Inicio > Calculadoras > Calculadora de Hipoteca"
		if strings.TrimSpace(out) != want {
			t.Errorf("expected %q, got %q", want, out)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "breadcrumb", "/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out, ">") {
			t.Errorf("expected no trail for the home page, got %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "breadcrumb", "/calculadora/calculadora-imc", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var list model.BreadcrumbList
		if err := json.Unmarshal([]byte(out), &list); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(list.ItemListElement) != 3 {
			t.Fatalf("expected 3 items, got %d", len(list.ItemListElement))
		}
		if got := list.ItemListElement[0].Item; got != "https://test.example.com/" {
			t.Errorf("expected absolute home URL, got %q", got)
		}
	})
}

func TestComputeCmd(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "compute", calculator.IDBMI, "peso=70", "altura=175")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "imc:") {
			t.Errorf("expected imc output, got %q", out)
		}
		if !strings.Contains(out, "clasificación") {
			t.Errorf("expected classification, got %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "compute", calculator.IDPercentage, "porcentaje=21", "valor=100", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var res calculator.Result
		if err := json.Unmarshal([]byte(out), &res); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if res.CalculatorID != calculator.IDPercentage {
			t.Errorf("expected calculator %q, got %q", calculator.IDPercentage, res.CalculatorID)
		}
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "compute", "--list")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := len(strings.Fields(out)); got != len(calculator.IDs()) {
			t.Errorf("expected %d calculators, got %d", len(calculator.IDs()), got)
		}
	})

	t.Run("saves to sqlite history", func(t *testing.T) {
		t.Parallel()
		cfgPath := filepath.Join(t.TempDir(), "calcsite.yaml")
		content := strings.Replace(testConfig, "backend: memory", "backend: sqlite\n  dir: "+t.TempDir(), 1)
		if err := os.WriteFile(cfgPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := runRoot(t, "-c", cfgPath, "compute", calculator.IDBMI, "peso=70", "altura=175", "--save"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out, err := runRoot(t, "-c", cfgPath, "compute", calculator.IDBMI, "--show-history", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var entries []model.HistoryEntry
		if err := json.Unmarshal([]byte(out), &entries); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 history entry, got %d", len(entries))
		}
		if entries[0].Inputs["peso"] != "70" {
			t.Errorf("expected stored input peso=70, got %v", entries[0].Inputs)
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		tests := [][]string{
			{"compute", "calculadora-inexistente"},
			{"compute", calculator.IDBMI, "peso=70"},
			{"compute", calculator.IDBMI, "peso"},
		}
		for _, args := range tests {
			if _, err := runRoot(t, args...); err == nil {
				t.Errorf("%v: expected error", args)
			}
		}
	})
}

func TestParseInputs(t *testing.T) {
	t.Parallel()

	in, err := parseInputs([]string{"a=1", "b = 2,5", "c="})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in["a"] != "1" || in["b"] != " 2,5" || in["c"] != "" {
		t.Errorf("unexpected inputs: %v", in)
	}

	for _, bad := range []string{"novalue", "=1"} {
		if _, err := parseInputs([]string{bad}); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestSitemapCmd(t *testing.T) {
	t.Parallel()

	t.Run("sitemap", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "sitemap")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var set sitemap.URLSet
		if err := xml.Unmarshal([]byte(out), &set); err != nil {
			t.Fatalf("invalid sitemap: %v", err)
		}
		for _, u := range set.URLs {
			if !strings.HasPrefix(u.Loc, "https://test.example.com/") {
				t.Errorf("unexpected loc %q", u.Loc)
			}
			if strings.HasSuffix(u.Loc, "/legal") {
				t.Error("expected noindex page /legal to be excluded")
			}
		}
	})

	t.Run("robots to file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "out", "robots.txt")
		if _, err := runRoot(t, "sitemap", "--robots", "-o", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path) //nolint:gosec // test file
		if err != nil {
			t.Fatalf("failed to read robots.txt: %v", err)
		}
		if !strings.Contains(string(data), "Sitemap: https://test.example.com/sitemap.xml") {
			t.Errorf("unexpected robots.txt: %q", data)
		}
	})
}

func TestCatalogCmd(t *testing.T) {
	t.Parallel()

	t.Run("simple", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "catalog")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "CALCULADORAS TEST") {
			t.Errorf("expected site name in report, got %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "catalog", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var r report.JSONReport
		if err := json.Unmarshal([]byte(out), &r); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if r.Version == "" {
			t.Error("expected version in JSON report")
		}
		if r.Totals.Calculators == 0 {
			t.Error("expected calculators in JSON report")
		}
	})

	t.Run("markdown to file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "catalogo.md")
		if _, err := runRoot(t, "catalog", "--markdown", "-o", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path) //nolint:gosec // test file
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.HasPrefix(string(data), "# Catálogo de Calculadoras Test") {
			t.Errorf("unexpected markdown report: %q", data)
		}
	})
}

func TestBuildCmd(t *testing.T) {
	t.Parallel()

	outDir := filepath.Join(t.TempDir(), "public")
	out, err := runRoot(t, "build", "-o", outDir, "-w", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Built") {
		t.Errorf("unexpected output: %q", out)
	}

	for _, name := range []string{
		site.IndexFile,
		site.NotFoundFile,
		site.SitemapFile,
		site.RobotsFile,
		site.ManifestFile,
		filepath.Join("calculadora", calculator.IDMortgage, site.IndexFile),
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	if _, err := runRoot(t, "build", "-o", outDir, "-w", "0"); err == nil {
		t.Error("expected error for zero workers")
	}
}

func TestAuditCmd(t *testing.T) {
	t.Parallel()

	t.Run("default site passes", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "audit", "--min-severity", "error")
		if err != nil {
			t.Fatalf("unexpected error: %v\n%s", err, out)
		}
		if !strings.Contains(out, "sin problemas") {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		out, err := runRoot(t, "audit", "--json", "--min-severity", "warning")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var findings []model.Finding
		if err := json.Unmarshal([]byte(out), &findings); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		for _, f := range findings {
			if f.Severity < model.SeverityWarning {
				t.Errorf("finding below minimum severity: %v", f)
			}
		}
	})

	t.Run("invalid severity", func(t *testing.T) {
		t.Parallel()
		if _, err := runRoot(t, "audit", "--fail-on", "fatal"); err == nil {
			t.Error("expected error for unknown severity")
		}
	})
}

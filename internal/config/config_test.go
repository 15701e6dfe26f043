package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig documents the default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default site identity", func(t *testing.T) {
		t.Parallel()
		if cfg.SiteName != DefaultSiteName || cfg.Locale != "es_ES" {
			t.Errorf("unexpected site identity %q %q", cfg.SiteName, cfg.Locale)
		}
	})

	t.Run("default listen address is :8080", func(t *testing.T) {
		t.Parallel()
		if cfg.ListenAddr != ":8080" {
			t.Errorf("expected ListenAddr ':8080', got %q", cfg.ListenAddr)
		}
	})

	t.Run("default history keeps 10 entries in memory", func(t *testing.T) {
		t.Parallel()
		if cfg.HistoryBackend != HistoryMemory || cfg.HistoryLimit != 10 {
			t.Errorf("got backend %q limit %d", cfg.HistoryBackend, cfg.HistoryLimit)
		}
	})

	t.Run("default history dir is the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("default rates cache is one hour", func(t *testing.T) {
		t.Parallel()
		if cfg.RatesTTL != time.Hour {
			t.Errorf("expected RatesTTL 1h, got %v", cfg.RatesTTL)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("default config is invalid: %v", err)
		}
	})
}

// TestConfigValidate checks each validation rule in isolation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty site name", func(c *Config) { c.SiteName = "" }, ErrEmptySiteName},
		{"relative base url", func(c *Config) { c.BaseURL = "/calculadoras" }, ErrInvalidBaseURL},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://example.com" }, ErrInvalidBaseURL},
		{"empty listen address", func(c *Config) { c.ListenAddr = "" }, ErrInvalidListenAddr},
		{"zero read timeout", func(c *Config) { c.ReadTimeout = 0 }, ErrInvalidTimeout},
		{"negative rates timeout", func(c *Config) { c.RatesTimeout = -time.Second }, ErrInvalidTimeout},
		{"unknown history backend", func(c *Config) { c.HistoryBackend = "redis" }, ErrInvalidHistoryBackend},
		{"zero history limit", func(c *Config) { c.HistoryLimit = 0 }, ErrInvalidHistoryLimit},
		{"zero rates ttl", func(c *Config) { c.RatesTTL = 0 }, ErrInvalidRatesTTL},
		{"zero workers", func(c *Config) { c.BuildWorkers = 0 }, ErrInvalidWorkers},
		{"both report formats", func(c *Config) { c.JSONReport, c.MarkdownReport = true, true }, ErrConflictingReportFormats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("sqlite backend is valid", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.HistoryBackend = HistorySQLite
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// TestLoad reads a configuration file.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("file values override defaults", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `
site:
  name: Mis Calculadoras
  base_url: https://mis-calculadoras.es/
server:
  listen: 127.0.0.1:9000
  read_timeout: 3s
history:
  backend: SQLite
  limit: 25
rates:
  url: https://rates.example/latest
  ttl: 15m
build:
  workers: 8
pages:
  /calculadora/calculadora-imc:
    title: IMC online
    keywords: [imc, peso]
  /legal:
    noindex: true
page_defaults:
  image: /img/og.png
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.SiteName != "Mis Calculadoras" {
			t.Errorf("SiteName = %q", cfg.SiteName)
		}
		if cfg.BaseURL != "https://mis-calculadoras.es" {
			t.Errorf("BaseURL should drop the trailing slash, got %q", cfg.BaseURL)
		}
		if cfg.ListenAddr != "127.0.0.1:9000" || cfg.ReadTimeout != 3*time.Second {
			t.Errorf("server settings not loaded: %q %v", cfg.ListenAddr, cfg.ReadTimeout)
		}
		if cfg.WriteTimeout != DefaultWriteTimeout {
			t.Errorf("unset keys should keep defaults, got %v", cfg.WriteTimeout)
		}
		if cfg.HistoryBackend != HistorySQLite || cfg.HistoryLimit != 25 {
			t.Errorf("history settings not loaded: %q %d", cfg.HistoryBackend, cfg.HistoryLimit)
		}
		if cfg.RatesURL != "https://rates.example/latest" || cfg.RatesTTL != 15*time.Minute {
			t.Errorf("rates settings not loaded: %q %v", cfg.RatesURL, cfg.RatesTTL)
		}
		if cfg.BuildWorkers != 8 {
			t.Errorf("BuildWorkers = %d", cfg.BuildWorkers)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("ConfigFilePath = %q, want %q", cfg.ConfigFilePath, path)
		}

		imc := cfg.Pages.GetPageConfig("/calculadora/calculadora-imc")
		if imc.Title != "IMC online" || len(imc.Keywords) != 2 || imc.Image != "/img/og.png" {
			t.Errorf("page overrides not loaded: %+v", imc)
		}
		if !cfg.Pages.NoIndex("/legal") || cfg.Pages.NoIndex("/") {
			t.Error("noindex override not applied")
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("loaded config invalid: %v", err)
		}
	})

	t.Run("explicit missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "site: [unclosed")
		if _, err := Load(path); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}

// TestLoadEnvironment checks CALCSITE_* overrides. It cannot run in
// parallel because it mutates the process environment.
func TestLoadEnvironment(t *testing.T) {
	t.Setenv("CALCSITE_SITE_NAME", "Desde Entorno")
	t.Setenv("CALCSITE_HISTORY_LIMIT", "3")
	t.Setenv("CALCSITE_RATES_TTL", "2m")

	path := writeConfig(t, "site:\n  name: Desde Fichero\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SiteName != "Desde Entorno" {
		t.Errorf("environment should override the file, got %q", cfg.SiteName)
	}
	if cfg.HistoryLimit != 3 || cfg.RatesTTL != 2*time.Minute {
		t.Errorf("environment overrides not applied: %d %v", cfg.HistoryLimit, cfg.RatesTTL)
	}
}

// TestFindConfigFile tests the explicit path lookup.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "site: {}\n")
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path", func(t *testing.T) {
		t.Parallel()
		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing")); got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})
}

// TestGetPageConfig tests merging per-path overrides over defaults.
func TestGetPageConfig(t *testing.T) {
	t.Parallel()

	cf := &File{
		Defaults: PageConfig{
			Image: "/img/default.png",
			Meta:  map[string]string{"author": "Equipo"},
		},
		Pages: map[string]PageConfig{
			"/faq": {
				Description: "Preguntas frecuentes",
				Meta:        map[string]string{"robots": "noarchive"},
			},
		},
	}

	got := cf.GetPageConfig("/faq")
	if got.Description != "Preguntas frecuentes" || got.Image != "/img/default.png" {
		t.Errorf("unexpected merge %+v", got)
	}
	if got.Meta["author"] != "Equipo" || got.Meta["robots"] != "noarchive" {
		t.Errorf("meta not merged: %v", got.Meta)
	}
	if _, ok := cf.Defaults.Meta["robots"]; ok {
		t.Error("merging mutated the defaults")
	}

	other := cf.GetPageConfig("/otra")
	if other.Description != "" || other.Image != "/img/default.png" {
		t.Errorf("unexpected defaults-only config %+v", other)
	}

	var nilFile *File
	if nilFile.NoIndex("/x") {
		t.Error("nil file should not exclude anything")
	}
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/nao1215/calcsite/internal/catalog"
	"github.com/nao1215/calcsite/internal/config"
	"github.com/nao1215/calcsite/internal/history"
	"github.com/nao1215/calcsite/internal/rates"
	"github.com/nao1215/calcsite/internal/seo"
	"github.com/nao1215/calcsite/internal/site"
)

// loadCatalog returns the configured catalog, or the embedded one.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	c, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}

// openHistory opens the configured history store.
func openHistory(cfg *config.Config, logger *slog.Logger) (history.Store, error) {
	if cfg.HistoryBackend != config.HistorySQLite {
		return history.NewMemoryStore(cfg.HistoryLimit), nil
	}

	opts := history.DefaultOptions()
	opts.Limit = cfg.HistoryLimit
	store, err := history.Open(cfg.DBDir, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	logger.Info("history database opened", "path", store.Path())
	return store, nil
}

// newRateService returns the exchange rate service. Without a configured
// URL it serves the built-in static table. The returned function releases
// the HTTP client.
func newRateService(cfg *config.Config, logger *slog.Logger) (*rates.Service, func()) {
	opts := []rates.ServiceOption{rates.WithTTL(cfg.RatesTTL), rates.WithLogger(logger)}
	if cfg.RatesURL == "" {
		return rates.NewService(nil, opts...), func() {}
	}

	clientOpts := rates.DefaultClientOptions()
	clientOpts.Timeout = cfg.RatesTimeout
	client := rates.NewClient(cfg.RatesURL, clientOpts)
	return rates.NewService(client, opts...), func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close rates client", "error", err)
		}
	}
}

// newRenderer creates the page renderer for cfg.
func newRenderer(cfg *config.Config, c *catalog.Catalog, logger *slog.Logger) (*site.Renderer, error) {
	return site.NewRenderer(c, seo.SiteFromConfig(cfg), site.WithRendererLogger(logger))
}

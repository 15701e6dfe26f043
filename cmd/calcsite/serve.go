package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/calcsite/internal/config"
	"github.com/nao1215/calcsite/internal/seo"
	"github.com/nao1215/calcsite/internal/web"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and its JSON API",
		Long: `Serve starts the HTTP server.

Every page is rendered on request with breadcrumbs and SEO metadata.
The JSON API lives under /api:
  /api/breadcrumb?path=            breadcrumb trail and structured data
  /api/convert?value=&category=&from=&to=
  /api/convert/currency?amount=&from=&to=
  /api/units, /api/units/{category}
  /api/calculators, /api/calculators/{id}
  /api/calculators/{id}/compute    POST, saves to history
  /api/calculators/{id}/history    GET or DELETE
  /api/blog, /api/blog/{slug}

The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
  # Listen on the configured address (default :8080)
  calcsite serve

  # Listen on another port and persist history in SQLite
  calcsite serve -l :9000 --history sqlite`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", "", "Listen address (default from configuration, :8080)")
	cmd.Flags().String("history", "", "History backend: memory or sqlite")
	cmd.Flags().String("rates-url", "", "Exchange rate endpoint URL")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := prepare(cmd, func(cfg *config.Config) error {
		if v, _ := cmd.Flags().GetString("listen"); v != "" { //nolint:errcheck // flag is registered above
			cfg.ListenAddr = v
		}
		if v, _ := cmd.Flags().GetString("history"); v != "" { //nolint:errcheck // flag is registered above
			cfg.HistoryBackend = v
		}
		if v, _ := cmd.Flags().GetString("rates-url"); v != "" { //nolint:errcheck // flag is registered above
			cfg.RatesURL = v
		}
		return nil
	})
	if err != nil {
		return err
	}

	c, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	store, err := openHistory(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	rateService, closeRates := newRateService(cfg, logger)
	defer closeRates()

	srv, err := web.NewServer(web.Deps{
		Catalog: c,
		Site:    seo.SiteFromConfig(cfg),
		Rates:   rateService,
		History: store,
		Logger:  logger,
	}, web.Options{
		Addr:            cfg.ListenAddr,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s\n", cfg.SiteName, cfg.ListenAddr)
	return srv.ListenAndServe(ctx)
}

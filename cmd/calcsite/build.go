package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/calcsite/internal/config"
	"github.com/nao1215/calcsite/internal/site"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static files",
		Long: `Build renders every page of the site into a directory.

Each route is written as <route>/index.html. The output also contains
404.html, sitemap.xml, robots.txt and manifest.json, which lists every file
with its size and SHA3-256 hash.

Examples:
  # Build into the configured directory (default: dist)
  calcsite build

  # Build into ./public with 8 workers
  calcsite build -o public -w 8`,
		Args: cobra.NoArgs,
		RunE: runBuildCmd,
	}

	cmd.Flags().StringP("output", "o", "", "Output directory (default from configuration, dist)")
	cmd.Flags().IntP("workers", "w", 0, "Number of pages rendered concurrently")

	return cmd
}

func runBuildCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := prepare(cmd, func(cfg *config.Config) error {
		out, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		if out != "" {
			cfg.OutDir = out
		}
		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("workers") {
			cfg.BuildWorkers = workers
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
	renderer, err := newRenderer(cfg, c, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder := site.NewBuilder(renderer, c,
		site.WithWorkers(cfg.BuildWorkers),
		site.WithExclude(cfg.Pages.NoIndex),
		site.WithBuilderLogger(logger),
	)
	manifest, err := builder.Build(ctx, cfg.OutDir)
	if err != nil {
		return err
	}

	var total int
	for _, f := range manifest.Files {
		total += f.Size
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Built %d files (%d bytes) into %s\n", len(manifest.Files), total, cfg.OutDir)
	return nil
}

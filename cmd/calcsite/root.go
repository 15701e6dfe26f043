package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/calcsite/internal/config"
	calclog "github.com/nao1215/calcsite/internal/log"
)

// NewRootCmd creates the root command for calcsite.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calcsite",
		Short: "Spanish calculator website: server, static builder and tools",
		Long: `calcsite serves and builds a Spanish-language calculator website.

It renders every page with breadcrumb navigation and SEO metadata, exposes a
JSON API for unit and currency conversion and calculator computations, and
exports the whole site as static files with a sitemap.

Configuration is read from .calcsite.yaml (current directory, XDG config
directory or home directory) and from CALCSITE_* environment variables.
Run "calcsite init" to create a commented configuration file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .calcsite.yaml in current, XDG config or home directory)")
	cmd.PersistentFlags().Bool("json-log", false, "Write logs as JSON")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewSitemapCmd())
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewBreadcrumbCmd())
	cmd.AddCommand(NewComputeCmd())
	cmd.AddCommand(NewCatalogCmd())
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getBoolFlag reads a boolean flag from the command or the root's persistent flags.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getStringFlag reads a string flag from the command or the root's persistent flags.
func getStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return v
}

// loadConfig loads the configuration named by --config and applies the
// global flags. The result is not validated; commands override fields from
// their own flags first.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(getStringFlag(cmd, "config"))
	if err != nil {
		return nil, err
	}
	if getBoolFlag(cmd, "verbose") {
		cfg.Verbose = true
	}
	if getBoolFlag(cmd, "json-log") {
		cfg.JSONLog = true
	}
	return cfg, nil
}

// setupLogger creates the redacting logger for cfg and installs it as default.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logger := calclog.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.JSONLog)
	slog.SetDefault(logger)
	return logger
}

// prepare loads, overrides, validates and sets up logging in one step.
func prepare(cmd *cobra.Command, override func(*config.Config) error) (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if override != nil {
		if err := override(cfg); err != nil {
			return nil, nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}
	logger := setupLogger(cmd, cfg)
	if cfg.ConfigFilePath != "" {
		logger.Debug("configuration loaded", "file", cfg.ConfigFilePath)
	}
	return cfg, logger, nil
}

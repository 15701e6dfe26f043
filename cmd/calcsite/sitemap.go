package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/calcsite/internal/sitemap"
)

// NewSitemapCmd creates the sitemap command.
func NewSitemapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Print the XML sitemap or robots.txt",
		Long: `Sitemap prints the sitemap.xml of the site, listing fixed pages,
categories, calculators and blog posts. Pages configured with noindex are
left out.

Examples:
  calcsite sitemap > sitemap.xml
  calcsite sitemap --robots
  calcsite sitemap -o public/sitemap.xml`,
		Args: cobra.NoArgs,
		RunE: runSitemapCmd,
	}

	cmd.Flags().StringP("output", "o", "", "Write to the specified file instead of stdout")
	cmd.Flags().Bool("robots", false, "Print robots.txt instead of the sitemap")

	return cmd
}

func runSitemapCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := prepare(cmd, nil)
	if err != nil {
		return err
	}
	c, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	robots, err := cmd.Flags().GetBool("robots")
	if err != nil {
		return err
	}

	return withOutput(cmd, output, func(w io.Writer) error {
		if robots {
			_, err := io.WriteString(w, sitemap.Robots(cfg.BaseURL))
			return err
		}
		set := sitemap.Build(c, cfg.BaseURL, time.Now(), sitemap.Options{Exclude: cfg.Pages.NoIndex})
		return sitemap.Write(w, set)
	})
}

// withOutput runs write against path, or stdout when path is empty.
func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // generated files are public
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close() //nolint:errcheck // the write error is more relevant
		return err
	}
	return f.Close()
}

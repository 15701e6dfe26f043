package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/calcsite/internal/config"
	"github.com/nao1215/calcsite/internal/report"
)

// NewCatalogCmd creates the catalog command.
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Report the categories, calculators and posts of the site",
		Long: `Catalog prints a summary of the site catalog: every category with its
calculators and the number of blog posts. Categories without calculators
are flagged.

Output formats:
  (default)   Plain text
  --json      JSON, for scripts
  --markdown  Markdown with a Mermaid pie chart, for documentation

Examples:
  calcsite catalog
  calcsite catalog --markdown -o docs/catalogo.md
  calcsite catalog --json -c site.yaml`,
		Args: cobra.NoArgs,
		RunE: runCatalogCmd,
	}

	cmd.Flags().Bool("json", false, "Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false, "Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "", "Write the report to the specified file instead of stdout")

	return cmd
}

func runCatalogCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := prepare(cmd, func(cfg *config.Config) error {
		var err error
		if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
			return err
		}
		if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
			return err
		}
		cfg.ReportFile, err = cmd.Flags().GetString("output")
		return err
	})
	if err != nil {
		return err
	}

	c, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	summary := c.Summary(cfg.SiteName, time.Now())

	return withOutput(cmd, cfg.ReportFile, func(w io.Writer) error {
		_, err := reportWriter(cfg, w).Write(summary)
		return err
	})
}

// reportWriter selects the writer for the configured report format.
func reportWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w, report.WithVerbose(cfg.Verbose))
	}
}

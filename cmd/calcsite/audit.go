package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/calcsite/internal/audit"
	"github.com/nao1215/calcsite/internal/model"
	"github.com/nao1215/calcsite/internal/site"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check every rendered page for SEO problems",
		Long: `Audit renders every page of the site and checks it for SEO problems:
missing or overlong titles and descriptions, missing h1, canonical links
pointing elsewhere, invalid JSON-LD, broken internal links and titles or
descriptions shared by several pages.

The command fails when a finding reaches the --fail-on severity, which
makes it usable as a CI gate before "calcsite build".

Examples:
  calcsite audit
  calcsite audit --min-severity warning
  calcsite audit --json --fail-on warning`,
		Args: cobra.NoArgs,
		RunE: runAuditCmd,
	}

	cmd.Flags().Bool("json", false, "Print findings as JSON")
	cmd.Flags().String("min-severity", "info", "Lowest severity to print: info, warning or error")
	cmd.Flags().String("fail-on", "error", "Fail when a finding has at least this severity: info, warning or error")

	return cmd
}

func runAuditCmd(cmd *cobra.Command, _ []string) error {
	minSeverity, err := severityFlag(cmd, "min-severity")
	if err != nil {
		return err
	}
	failOn, err := severityFlag(cmd, "fail-on")
	if err != nil {
		return err
	}

	cfg, logger, err := prepare(cmd, nil)
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

	routes := site.Routes(c)
	pages := make([]audit.Page, 0, len(routes))
	for _, route := range routes {
		p, err := renderer.Render(route)
		if err != nil {
			return err
		}
		pages = append(pages, audit.Page{Path: route, HTML: p.HTML})
	}

	findings, err := audit.New(cfg.BaseURL, routes, audit.WithLogger(logger)).Audit(ctx, pages)
	if err != nil {
		return err
	}

	shown := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Severity >= minSeverity {
			shown = append(shown, f)
		}
	}

	out := cmd.OutOrStdout()
	if getBoolFlag(cmd, "json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(shown); err != nil {
			return err
		}
	} else {
		printFindings(out, shown, len(pages))
	}

	if n := audit.Count(findings, failOn); n > 0 {
		return fmt.Errorf("audit found %d problem(s) at %s or above", n, failOn)
	}
	return nil
}

func severityFlag(cmd *cobra.Command, name string) (model.Severity, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return 0, err
	}
	s, err := model.ParseSeverity(v)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return s, nil
}

func printFindings(w io.Writer, findings []model.Finding, pages int) {
	for _, f := range findings {
		fmt.Fprintln(w, f)
	}
	if len(findings) == 0 {
		fmt.Fprintf(w, "%d páginas revisadas, sin problemas\n", pages)
		return
	}
	fmt.Fprintf(w, "\n%d páginas revisadas, %d avisos\n", pages, len(findings))
}

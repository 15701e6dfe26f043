package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/calcsite/internal/breadcrumb"
)

// NewBreadcrumbCmd creates the breadcrumb command.
func NewBreadcrumbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breadcrumb PATH",
		Short: "Resolve the breadcrumb trail of a path",
		Long: `Breadcrumb prints the navigation trail the site shows for PATH.

Names come from the catalog: calculator titles, category titles and blog
post titles. Unknown segments are capitalized as they are.

With --json the schema.org BreadcrumbList embedded in the page is printed
instead.

Examples:
  calcsite breadcrumb /calculadora/calculadora-hipoteca
  calcsite breadcrumb /blog/como-calcular-hipoteca --json`,
		Args: cobra.ExactArgs(1),
		RunE: runBreadcrumbCmd,
	}

	cmd.Flags().Bool("json", false, "Print the schema.org BreadcrumbList as JSON")

	return cmd
}

func runBreadcrumbCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := prepare(cmd, nil)
	if err != nil {
		return err
	}
	c, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	items := breadcrumb.NewResolver(c, breadcrumb.WithLogger(logger)).Resolve(args[0])
	out := cmd.OutOrStdout()

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(breadcrumb.StructuredData(items, cfg.BaseURL))
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "(página de inicio, sin migas de pan)")
		return nil
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	fmt.Fprintln(out, strings.Join(names, " > "))
	return nil
}

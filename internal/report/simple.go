package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/calcsite/internal/model"
)

// ruleWidth is the width of the section separators.
const ruleWidth = 60

// SimpleWriter outputs summaries as plain text for the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose lists the calculator IDs of every category.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose lists every calculator under its category.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary in plain text.
func (w *SimpleWriter) Write(summary *model.CatalogSummary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeCategories(&sb, summary)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.CatalogSummary) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "%s\n", strings.ToUpper(summary.SiteName))
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Generado:       %s\n", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Categorías:     %d\n", len(summary.Categories))
	fmt.Fprintf(sb, "Calculadoras:   %d (%d con formulario, %d con componente)\n",
		summary.TotalCalculators(), summary.InputBased, summary.ComponentBased)
	fmt.Fprintf(sb, "Artículos:      %d\n\n", summary.Posts)
}

func (w *SimpleWriter) writeCategories(sb *strings.Builder, summary *model.CatalogSummary) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("CATEGORÍAS\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")

	for _, c := range summary.Categories {
		fmt.Fprintf(sb, "  [%d] %s (/categoria/%s)\n", len(c.Calculators), c.Title, c.Slug)
		if w.verbose {
			for _, id := range c.Calculators {
				fmt.Fprintf(sb, "      * %s\n", id)
			}
		}
	}
	sb.WriteString("\n")

	if empty := emptyCategories(summary); len(empty) > 0 {
		fmt.Fprintf(sb, "Aviso: categorías sin calculadoras: %s\n\n", strings.Join(empty, ", "))
	}
}

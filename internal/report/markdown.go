package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/calcsite/internal/model"
)

// MarkdownWriter outputs summaries as Markdown, built with nao1215/markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.CatalogSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeCategories(md, summary)
	w.writeCalculators(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.CatalogSummary) {
	md.H1("Catálogo de " + summary.SiteName)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Propiedad", "Valor"},
		Rows: [][]string{
			{"Generado", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Categorías", strconv.Itoa(len(summary.Categories))},
			{"Calculadoras", strconv.Itoa(summary.TotalCalculators())},
			{"Con formulario", strconv.Itoa(summary.InputBased)},
			{"Con componente", strconv.Itoa(summary.ComponentBased)},
			{"Artículos", strconv.Itoa(summary.Posts)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeCategories(md *markdown.Markdown, summary *model.CatalogSummary) {
	md.H2("Categorías")
	md.PlainText("")

	rows := make([][]string, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		rows = append(rows, []string{c.Title, "`/categoria/" + c.Slug + "`", strconv.Itoa(len(c.Calculators))})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Categoría", "Ruta", "Calculadoras"},
		Rows:   rows,
	})
	md.PlainText("")

	if summary.TotalCalculators() > 0 {
		w.writePieChart(md, summary)
	}

	if empty := emptyCategories(summary); len(empty) > 0 {
		md.Warningf("%d categoría(s) sin calculadoras: %s.", len(empty), strings.Join(empty, ", "))
	} else {
		md.Tip("Todas las categorías tienen al menos una calculadora.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of calculators per category.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.CatalogSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Calculadoras por categoría"),
		piechart.WithShowData(true),
	)
	for _, c := range summary.Categories {
		if n := len(c.Calculators); n > 0 {
			chart.LabelAndIntValue(c.Title, uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeCalculators(md *markdown.Markdown, summary *model.CatalogSummary) {
	md.H2("Calculadoras")
	md.PlainText("")

	for _, c := range summary.Categories {
		if len(c.Calculators) == 0 {
			continue
		}
		md.H3(c.Title)
		md.PlainText("")
		items := make([]string, 0, len(c.Calculators))
		for _, id := range c.Calculators {
			items = append(items, "`/calculadora/"+id+"`")
		}
		md.BulletList(items...)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Informe generado por calcsite*")
}

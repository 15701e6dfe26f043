package report

import (
	"io"

	"github.com/nao1215/calcsite/internal/model"
)

// Writer writes a catalog summary in one output format.
type Writer interface {
	// Write outputs the summary and returns the number of bytes written.
	Write(summary *model.CatalogSummary) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to every writer and returns the total bytes
// written. It stops at the first error.
func (m *MultiWriter) Write(summary *model.CatalogSummary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// emptyCategories returns the titles of categories without calculators.
func emptyCategories(summary *model.CatalogSummary) []string {
	var out []string
	for _, c := range summary.Categories {
		if len(c.Calculators) == 0 {
			out = append(out, c.Title)
		}
	}
	return out
}

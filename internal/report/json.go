package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/calcsite/internal/model"
)

// JSONWriter outputs summaries as JSON.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string

	// version, when set, wraps the summary in a JSONReport.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion wraps the output in a JSONReport carrying version.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary in JSON format.
func (w *JSONWriter) Write(summary *model.CatalogSummary) (int, error) {
	if w.version != "" {
		return w.writeJSON(NewJSONReport(summary, w.version))
	}
	return w.writeJSON(summary)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}

// JSONReport wraps a summary with the version of the tool that produced it.
type JSONReport struct {
	Version string                `json:"version"`
	Summary *model.CatalogSummary `json:"summary"`

	// Totals repeats the aggregate counts for consumers that skip the categories.
	Totals JSONTotals `json:"totals"`
}

// JSONTotals holds the aggregate counts of a summary.
type JSONTotals struct {
	Categories  int `json:"categories"`
	Calculators int `json:"calculators"`
	Posts       int `json:"posts"`
}

// NewJSONReport creates a JSONReport for summary.
func NewJSONReport(summary *model.CatalogSummary, version string) *JSONReport {
	return &JSONReport{
		Version: version,
		Summary: summary,
		Totals: JSONTotals{
			Categories:  len(summary.Categories),
			Calculators: summary.TotalCalculators(),
			Posts:       summary.Posts,
		},
	}
}

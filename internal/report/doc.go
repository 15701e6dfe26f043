// Package report renders catalog summaries.
//
// This package contains writers for different output formats:
//   - SimpleWriter: plain text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown with tables and a mermaid chart, for docs
//
// Writers implement the Writer interface, so they can be used
// interchangeably and composed with MultiWriter.
package report

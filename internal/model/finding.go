package model

import (
	"fmt"
	"strings"
)

// Severity ranks an audit finding. Higher values are more serious.
type Severity int

const (
	// SeverityInfo is worth knowing but needs no action.
	// Example: a link to an external site.
	SeverityInfo Severity = iota

	// SeverityWarning hurts search ranking or presentation.
	// Examples: a description longer than search snippets, duplicate titles.
	SeverityWarning

	// SeverityError breaks the page for crawlers or visitors.
	// Examples: missing title, broken internal link, invalid JSON-LD.
	SeverityError
)

// String returns the upper-case name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity parses a severity name, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO":
		return SeverityInfo, nil
	case "WARNING", "WARN":
		return SeverityWarning, nil
	case "ERROR":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Finding is one problem an audit found on a rendered page.
type Finding struct {
	// Check is the name of the check that produced the finding.
	Check string `json:"check"`

	// Path is the site-relative page path.
	Path string `json:"path"`

	Severity Severity `json:"severity"`

	// Message describes the problem in Spanish.
	Message string `json:"message"`

	// Value is the offending value, such as a link target or a title.
	Value string `json:"value,omitempty"`
}

// String formats the finding as one report line.
func (f Finding) String() string {
	if f.Value == "" {
		return fmt.Sprintf("[%s] %s %s: %s", f.Severity, f.Path, f.Check, f.Message)
	}
	return fmt.Sprintf("[%s] %s %s: %s (%s)", f.Severity, f.Path, f.Check, f.Message, f.Value)
}

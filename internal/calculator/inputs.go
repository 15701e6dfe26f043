package calculator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Inputs holds the raw form values of one computation, keyed by field name.
type Inputs map[string]string

// Text returns the trimmed value of a string field.
func (in Inputs) Text(name string) (string, error) {
	v := strings.TrimSpace(in[name])
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingInput, name)
	}
	return v, nil
}

// Number parses a numeric field. Both "3.5" and the Spanish "3,5" are
// accepted, as are thousands separators in "150.000,50".
func (in Inputs) Number(name string) (float64, error) {
	raw, err := in.Text(name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(normalizeNumber(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidInput, name, raw)
	}
	return f, nil
}

// NumberOr parses an optional numeric field, returning def when it is absent.
func (in Inputs) NumberOr(name string, def float64) (float64, error) {
	if strings.TrimSpace(in[name]) == "" {
		return def, nil
	}
	return in.Number(name)
}

// positive parses a field that must be greater than zero.
func (in Inputs) positive(name string) (float64, error) {
	f, err := in.Number(name)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidInput, name)
	}
	return f, nil
}

// nonNegative parses a field that must be zero or greater.
func (in Inputs) nonNegative(name string) (float64, error) {
	f, err := in.Number(name)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, name)
	}
	return f, nil
}

// normalizeNumber rewrites Spanish-formatted numbers to Go syntax.
func normalizeNumber(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// "150.000,50": dots group thousands, the comma is decimal.
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	case hasComma:
		return strings.Replace(s, ",", ".", 1)
	default:
		return s
	}
}

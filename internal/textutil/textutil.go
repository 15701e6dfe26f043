// Package textutil holds the Spanish-aware string helpers shared by the
// catalog, breadcrumb and unit packages.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold removes diacritics: "Matemáticas" becomes "Matematicas", "años" becomes "anos".
// Case is preserved. Strings that fail to transform are returned unchanged.
func Fold(s string) string {
	// transform.Chain keeps internal state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Lower lower-cases s with Spanish casing rules.
// Casers are stateful, so one is created per call.
func Lower(s string) string {
	return cases.Lower(language.Spanish).String(s)
}

// CapitalizeFirst upper-cases only the first rune of s and leaves the rest
// untouched: "sobre-nosotros" becomes "Sobre-nosotros".
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Spanish).String(string(r)) + s[size:]
}

// Key normalizes a user-supplied name for table lookups: trimmed,
// lower-cased, accent-folded, with underscores read as spaces and
// inner whitespace collapsed.
func Key(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.Join(strings.Fields(s), " ")
	return Fold(Lower(s))
}

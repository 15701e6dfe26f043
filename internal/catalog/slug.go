package catalog

import (
	"strings"
	"unicode"

	"github.com/nao1215/calcsite/internal/textutil"
)

// Slugify derives the URL slug of a category title: lower-cased, with every
// run of whitespace replaced by a single hyphen. Accents are kept, so
// "Matemáticas" becomes "matemáticas".
func Slugify(title string) string {
	return strings.Join(strings.FieldsFunc(textutil.Lower(title), unicode.IsSpace), "-")
}

// FoldSlug removes accents from a slug so that "matemáticas" and
// "matematicas" compare equal. Case is kept.
func FoldSlug(slug string) string {
	return textutil.Fold(slug)
}

// SlugMatches reports whether segment addresses the category title.
// Both the literal slug and its accent-free form are accepted; the
// comparison is case-sensitive, so "MATEMATICAS" matches nothing.
func SlugMatches(title, segment string) bool {
	slug := Slugify(title)
	if segment == slug {
		return true
	}
	return FoldSlug(segment) == FoldSlug(slug)
}

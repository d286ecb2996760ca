// Package textnorm folds spreadsheet text into a canonical form so that
// headers, role names and notes match regardless of case, accents or spacing.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize uppercases s, strips combining marks after NFD decomposition and
// collapses every run of whitespace into a single space.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToUpper(s))
	if err != nil {
		folded = strings.ToUpper(s)
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Equal reports whether a and b normalize to the same text.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Contains reports whether the normalized form of s contains the normalized
// form of substr. An empty substr always matches.
func Contains(s, substr string) bool {
	return strings.Contains(Normalize(s), Normalize(substr))
}

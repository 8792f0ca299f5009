package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NFD decomposition followed by removal of combining marks. "á" -> "a",
// and "ñ" -> "n" too, which is acceptable for Spanish-language catalogs.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText converts raw field text into the canonical form used for
// matching: lowercase, accent-free, punctuation-free, single-spaced.
// Idempotent.
func NormalizeText(raw string) string {
	s := strings.ToLower(raw)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CleanText trims and collapses internal whitespace for display-safe fields.
// Reserved junk tokens that spreadsheets produce for empty cells collapse to "".
// Accents and punctuation are preserved.
func CleanText(raw string) string {
	s := strings.Join(strings.Fields(raw), " ")
	switch strings.ToLower(s) {
	case "", "nan", "null", "undefined":
		return ""
	}
	return s
}

// NormalizeAlias is the form used for duplicate-code detection. It keeps the
// punctuation NormalizeText would strip, so "ABC-123" and "ABC 123" stay distinct.
func NormalizeAlias(raw string) string {
	return strings.ToLower(CleanText(raw))
}

package textutil

import (
	"strings"
	"unicode"
)

// a value that carries no information: empty, whitespace-only, or a
// recognized "not available" sentinel.
func IsPlaceholder(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "" || s == "n/a" || s == "na"
}

// title-cases every alphabetic run: first letter uppercased, the rest
// lowercased. runs are delimited by any non-letter, so "n/a" stays
// "N/A" and "senior engineer" becomes "Senior Engineer".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

package util

import (
	"strings"
	"unicode"
)

// Slugify lowercases a title and collapses whitespace runs into single
// hyphens. Non-alphanumeric runes other than hyphens are dropped so the result
// is URL-safe. Slugs are display/lookup fields, not identifiers: two lessons
// may share a slug, in which case the most recently created one wins lookups.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphens
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

package validators

import (
	"strings"
	"unicode"
)

// SanitizeSearch prepares free text for a LIKE search: control characters are dropped,
// runs of whitespace collapse to one space and the result is cut to maxRunes runes.
func SanitizeSearch(input string, maxRunes int) string {
	var b strings.Builder
	space := false
	for _, r := range strings.TrimSpace(input) {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case unicode.IsControl(r):
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	out := []rune(b.String())
	if maxRunes > 0 && len(out) > maxRunes {
		out = out[:maxRunes]
	}
	return strings.TrimSpace(string(out))
}

// Package slug derives URL-safe identifiers from human-readable text and
// resolves collisions against already-persisted records.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Make converts free text into a lowercase, ASCII, hyphenated identifier.
// Accented characters are decomposed and reduced to their base letter;
// anything outside [a-z0-9], hyphens and whitespace is dropped; whitespace
// runs collapse to a single hyphen. Deterministic and total: input made up
// entirely of symbols yields the empty string, which is valid resolver input.
func Make(text string) string {
	decomposed := norm.NFD.String(strings.ToLower(text))

	var kept strings.Builder
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining marks split off by the decomposition
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			kept.WriteRune(r)
		case unicode.IsSpace(r):
			kept.WriteByte(' ')
		}
	}

	var out strings.Builder
	pendingHyphen := false
	for _, r := range strings.TrimSpace(kept.String()) {
		if r == ' ' || r == '-' {
			pendingHyphen = true
			continue
		}
		if pendingHyphen && out.Len() > 0 {
			out.WriteByte('-')
		}
		pendingHyphen = false
		out.WriteRune(r)
	}
	return out.String()
}

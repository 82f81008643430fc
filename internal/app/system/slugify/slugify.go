// Package slugify derives URL-friendly slugs from article titles.
package slugify

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Make converts a title into a lowercase, hyphen-separated slug. Diacritics
// are stripped via case folding; runs of non-alphanumeric characters collapse
// to a single hyphen.
func Make(title string) string {
	folded := text.Fold(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

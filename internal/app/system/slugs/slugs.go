// Package slugs builds URL slugs from titles and names.
package slugs

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dalemusser/govhub/internal/domain/models"
)

// MaxLen caps generated slugs.
const MaxLen = 60

// Make lowercases s, strips diacritics and joins runs of letters and
// digits with single hyphens: "Comité de Finance" -> "comite-de-finance".
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(plain) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			dash := pendingDash && b.Len() > 0
			need := 1
			if dash {
				need++
			}
			if b.Len()+need > MaxLen {
				break
			}
			if dash {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return strings.TrimRight(b.String(), "-")
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}

// Fallback returns a short random slug for sources that have no Latin
// letters or digits to build one from.
func Fallback() string {
	return uuid.NewString()[:8]
}

// Fill sets the entity's slug from its slug source when it has none, and
// normalizes a slug that was supplied by hand. A source that normalizes to
// nothing ("李 伟") gets a Fallback slug.
func Fill(e models.Sluggable) {
	src := e.SlugSource()
	if s := strings.TrimSpace(e.GetSlug()); s != "" {
		src = s
	}
	slug := Make(src)
	if slug == "" {
		slug = Fallback()
	}
	e.SetSlug(slug)
}

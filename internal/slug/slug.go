// Package slug derives URL-safe, unique identifiers from display strings.
// Tags and posts are looked up by slug instead of numeric ID.
package slug

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"inkwell/internal/utils"
)

// nonSlugChars matches runs of characters that cannot appear in a slug.
var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// maxLen keeps candidates well inside the 128-char slug columns, leaving
// room for a collision suffix.
const maxLen = 120

// Slugify converts a display string to a lowercase, hyphen-separated
// candidate slug. Non-ASCII characters are transliterated first, so
// "Café résumé" becomes "cafe-resume". The result may be empty when the
// input has no sluggable characters.
func Slugify(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	return s
}

// MakeUnique turns a candidate slug into one not yet in use. taken reports
// whether a slug is already stored for the entity type at hand. An empty
// candidate falls back to an opaque random identifier; a collision gets a
// counter suffix (-2, -3, ...) until a free slug is found.
func MakeUnique(base string, taken func(string) (bool, error)) (string, error) {
	if base == "" {
		base = utils.RandString(8)
	}
	candidate := base
	for n := 2; ; n++ {
		inUse, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

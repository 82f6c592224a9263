package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRegex = regexp.MustCompile(`[^\w\s-]`)
	dashRunRegex = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a display string into a filesystem-safe name: the input
// is NFKD-decomposed with combining marks stripped, non-ASCII runes dropped,
// lowercased, punctuation removed, and runs of spaces or dashes collapsed to
// a single dash. Leading and trailing dashes and underscores are trimmed.
// A title made entirely of unusable characters slugifies to "".
func Slugify(value string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(folder, value)
	if err != nil {
		folded = value
	}

	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, folded)

	slug := nonWordRegex.ReplaceAllString(strings.ToLower(ascii), "")
	slug = dashRunRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-_")
}

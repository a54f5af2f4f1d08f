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
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes       = regexp.MustCompile(`-+`)
	slugPattern      = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// GenerateSlug turns a title or name into a URL-safe slug.
// "Café Überblick: Go 1.25!" → "cafe-uberblick-go-1-25"
// Scripts without a Latin transliteration (Hangul, Kanji) are dropped, so the
// result may be empty; see SlugOrFallback.
func GenerateSlug(input string) string {
	ascii := RemoveDiacritics(input)
	lower := strings.ToLower(ascii)

	// whitespace, dots, underscores and slashes separate words
	separated := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '.' || r == '_' || r == '/' {
			return '-'
		}
		return r
	}, lower)

	cleaned := slugInvalidChars.ReplaceAllString(separated, "")
	normalized := slugDashes.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}

// SlugOrFallback returns GenerateSlug(input), or "<prefix>-<8 hex chars>" when
// nothing slug-worthy survives.
func SlugOrFallback(input, prefix string) string {
	if s := GenerateSlug(input); s != "" {
		return s
	}
	return WithRandomSuffix(prefix)
}

// WithRandomSuffix appends "-<8 hex chars>" taken from a fresh UUIDv7.
func WithRandomSuffix(slug string) string {
	id := strings.ReplaceAll(NewID().String(), "-", "")
	return slug + "-" + id[len(id)-8:]
}

// IsValidSlug reports whether s is lowercase words joined by single hyphens.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// RemoveDiacritics strips combining marks: "Crème brûlée" → "Creme brulee".
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return strings.NewReplacer("ß", "ss", "æ", "ae", "ø", "o", "đ", "d", "Đ", "D", "ł", "l").Replace(out)
}

package textutil

import (
	"strings"
	"unicode"
)

// NormalizeKey lowercases a header cell and strips every character that is
// not a letter or digit, so "Image URL", "image_url" and "ImageURL" all
// collapse to "imageurl".
func NormalizeKey(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripBOM removes a leading UTF-8 byte order mark if present.
func StripBOM(value string) string {
	return strings.TrimPrefix(value, "\uFEFF")
}

// IsBlank reports whether a value is empty after trimming whitespace.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

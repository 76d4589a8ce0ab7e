package service

import (
	"fmt"
	"strings"
	"unicode"
)

const maxSlugBase = 100

// Slugify lowercases s and collapses every run of characters other than
// ASCII letters and digits into a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	slug := b.String()
	if len(slug) > maxSlugBase {
		slug = strings.TrimRight(slug[:maxSlugBase], "-")
	}
	return slug
}

// uniqueSlug returns base, or base-1, base-2, ... for the first candidate
// that taken reports as free.
func uniqueSlug(base string, taken func(candidate string) (bool, error)) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

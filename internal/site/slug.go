package site

import (
	"regexp"
	"strings"
)

const maxSlugLen = 60

var czechTranslit = map[rune]rune{
	'á': 'a', 'č': 'c', 'ď': 'd', 'é': 'e', 'ě': 'e',
	'í': 'i', 'ň': 'n', 'ó': 'o', 'ř': 'r', 'š': 's',
	'ť': 't', 'ú': 'u', 'ů': 'u', 'ý': 'y', 'ž': 'z',
	'ä': 'a', 'ö': 'o', 'ü': 'u',
}

var slugScrubRE = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title into a filesystem-safe ASCII slug, transliterating
// Czech diacritics. An unusable title falls back to "clanek".
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if repl, ok := czechTranslit[r]; ok {
			r = repl
		}
		b.WriteRune(r)
	}

	slug := strings.Trim(slugScrubRE.ReplaceAllString(b.String(), "-"), "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "clanek"
	}
	return slug
}

// Package slug derives tenant identifiers from display names: URL-safe
// subfolders and PostgreSQL-safe schema names.
package slug

import (
	"strings"
	"unicode"
)

// Common diacritics folded to ASCII so "Café Müller" yields usable
// identifiers without pulling in a transliteration library.
var diacritics = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n', 'ý': 'y',
}

// Subfolder converts a tenant display name into a path-safe subfolder:
// lowercase, alphanumeric with hyphen separators, max 63 characters.
func Subfolder(name string) string {
	return make63(name, '-')
}

// SchemaName converts a tenant display name into a PostgreSQL schema name:
// lowercase, alphanumeric with underscore separators. Names that would start
// with a digit are prefixed with "t_" to stay valid unquoted identifiers.
func SchemaName(name string) string {
	s := make63(name, '_')
	if s == "" {
		return s
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "t_" + s
		if len(s) > 63 {
			s = s[:63]
		}
	}
	return s
}

func make63(name string, sep rune) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if folded, ok := diacritics[r]; ok {
			r = folded
		}
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			if pendingSep && b.Len() > 0 {
				b.WriteRune(sep)
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}

	s := b.String()
	if len(s) > 63 {
		s = s[:63]
		s = strings.TrimRight(s, string(sep))
	}
	return s
}

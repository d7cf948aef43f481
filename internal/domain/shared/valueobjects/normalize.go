// Package valueobjects holds the enum-like values shared by rooms, tickets
// and users together with the casing rules used to accept loosely typed input.
package valueobjects

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleCaser = cases.Title(language.English)
	lowerCaser = cases.Lower(language.English)
)

// Fold lowercases s, treats '_' and '-' as spaces and collapses whitespace,
// so "NEEDS_cleaning" and "needs  cleaning" fold to the same key.
func Fold(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(lowerCaser.String(s)), " ")
}

// TitleCase upper-cases the first letter of every word: "needs cleaning" -> "Needs Cleaning".
func TitleCase(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// Capitalize upper-cases the first letter and lowers the rest: "hIGH" -> "High".
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	lower := lowerCaser.String(s)
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}

// Canonical returns the member of values whose folded form equals the folded
// input, or "" when none does.
func Canonical[T ~string](input string, values ...T) T {
	key := Fold(input)
	for _, v := range values {
		if Fold(string(v)) == key {
			return v
		}
	}
	return ""
}

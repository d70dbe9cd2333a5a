package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// TitleCase upper-cases the first letter of every word and
// lower-cases the rest ("jan novák" -> "Jan Novák"). Used to
// normalize policyholder names before persisting.
func TitleCase(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// Capitalize upper-cases only the first letter of the string and
// lower-cases everything after it. Used for claim event titles.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

package enrich

import (
	"regexp"
	"strings"
)

var nonTermChars = regexp.MustCompile(`[^A-Za-z0-9 ]`)

// NormalizeTitle builds a catalog search term: every character other than an ASCII letter,
// digit or space is removed, then spaces become "+".
func NormalizeTitle(title string) string {
	return strings.ReplaceAll(nonTermChars.ReplaceAllString(title, ""), " ", "+")
}

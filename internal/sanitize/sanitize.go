// Package sanitize cleans user supplied text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text strips every HTML element from s and trims surrounding whitespace.
// Entities produced by the policy are decoded so plain text round-trips.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Line is Text with internal whitespace collapsed to single spaces, for
// names and titles.
func Line(s string) string {
	return strings.Join(strings.Fields(Text(s)), " ")
}

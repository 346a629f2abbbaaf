// Package catalog provides the immutable ingredient lookup table and
// best-effort name resolution.
package catalog

import (
	"regexp"
	"strings"
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	nonAlnumRe      = regexp.MustCompile(`[^a-zA-Z0-9 ]+`)
)

// Normalize canonicalizes an ingredient name so catalog keys and query
// tokens are comparable: parenthesized asides are removed, every character
// that is not a letter, digit, or space collapses to a space, and the
// result is trimmed and lowercased. Normalize is idempotent.
func Normalize(name string) string {
	s := parentheticalRe.ReplaceAllString(name, "")
	s = nonAlnumRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

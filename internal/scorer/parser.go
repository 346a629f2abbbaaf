// Package scorer computes a comedogenicity risk score for an INCI
// ingredient list: positional concentration weighting, catalog resolution,
// contextual modifiers, and risk-band classification.
package scorer

import "strings"

// splitDelims matches the INCI list separators: comma, semicolon, newline.
func splitDelims(r rune) bool {
	return r == ',' || r == ';' || r == '\n'
}

// ParseIngredients splits a free-text block into trimmed, non-empty
// ingredient tokens. Relative order is preserved: INCI lists are ordered
// by descending concentration, and that ordering drives the weighting.
func ParseIngredients(text string) []string {
	parts := strings.FieldsFunc(text, splitDelims)

	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

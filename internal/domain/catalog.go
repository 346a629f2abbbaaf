// Package domain defines the core interfaces and types for the comedogenic tester.
package domain

// CatalogEntry is one known ingredient in the catalog.
type CatalogEntry struct {
	// Display name as it appears in the source data.
	Name string `json:"name"`

	// Base comedogenicity rating, conventionally in [0, 5].
	Score float64 `json:"score"`

	// Synonyms column from the source. Stored but unused by resolution.
	Synonyms string `json:"synonyms,omitempty"`

	// Category tag, e.g. "occlusive", "butter", "wax", "unknown".
	Category string `json:"category"`

	// Free-text annotation, informational only.
	Notes string `json:"notes"`
}

// Ingredient categories that count toward the multiple-occlusives modifier.
const (
	CategoryOcclusive = "occlusive"
	CategoryButter    = "butter"
	CategoryWax       = "wax"
	CategoryUnknown   = "unknown"
)

// UnknownNotes is the annotation attached to unresolved ingredients.
const UnknownNotes = "Unknown (assumed low)"

// HighRiskScore is the base score at or above which an ingredient is
// flagged as high risk and counted as occlusive-like.
const HighRiskScore = 4.0

// IsOcclusiveLike reports whether the entry counts toward the
// multiple-occlusives modifier.
func (e *CatalogEntry) IsOcclusiveLike() bool {
	switch e.Category {
	case CategoryOcclusive, CategoryButter, CategoryWax:
		return true
	}
	return e.Score >= HighRiskScore
}

package domain

// AnalysisRequest is one analysis invocation. Requests are ephemeral and
// never persisted.
type AnalysisRequest struct {
	// RawText is the unparsed ingredient list, comma/semicolon/newline
	// separated.
	RawText string `json:"text"`

	// LeaveOn marks a product that stays on the skin after application.
	LeaveOn bool `json:"leaveOn"`

	// Formulation is a free-form tag ("o/w", "w/o", "anhydrous", ...).
	// Case-insensitive; unrecognized values fire no modifier.
	Formulation string `json:"formulation"`
}

// IngredientResult is one per-ingredient breakdown row, in input order.
type IngredientResult struct {
	// Name is the resolved catalog name, or the raw token when unresolved.
	Name string `json:"name"`

	// BaseScore is the catalog rating before weighting.
	BaseScore float64 `json:"baseScore"`

	// Weight is the normalized concentration weight for this position.
	Weight float64 `json:"weight"`

	// Contribution is BaseScore * Weight.
	Contribution float64 `json:"contribution"`

	// Notes carries the catalog annotation for this ingredient.
	Notes string `json:"notes"`
}

// AnalysisResult is the composite outcome of one analysis.
type AnalysisResult struct {
	ID string `json:"id"`

	// Score is the final composite, clamped to [0, 5].
	Score float64 `json:"score"`

	// Category is the qualitative risk band for Score.
	Category string `json:"category"`

	// Baseline is the pre-modifier weighted sum.
	Baseline float64 `json:"baseline"`

	// Modifier is the cumulative multiplicative adjustment applied.
	Modifier float64 `json:"modifier"`

	// Notes lists the modifiers that fired, in evaluation order.
	Notes []string `json:"notes"`

	// Breakdown holds one row per parsed ingredient, in input order.
	Breakdown []IngredientResult `json:"breakdown"`

	// HighRisk lists ingredients with base score >= 4, in input order.
	HighRisk []string `json:"highRisk"`
}

// Risk bands, classified over half-open score intervals.
const (
	BandVeryLow  = "Very Low"  // [0, 0.5)
	BandLow      = "Low"       // [0.5, 1.5)
	BandModerate = "Moderate"  // [1.5, 2.5)
	BandHigh     = "High"      // [2.5, 3.5)
	BandVeryHigh = "Very High" // [3.5, 5]
)

// ScoreMax is the upper clamp for composite scores.
const ScoreMax = 5.0

// ClassifyScore maps a clamped score to its risk band.
func ClassifyScore(score float64) string {
	switch {
	case score < 0.5:
		return BandVeryLow
	case score < 1.5:
		return BandLow
	case score < 2.5:
		return BandModerate
	case score < 3.5:
		return BandHigh
	default:
		return BandVeryHigh
	}
}

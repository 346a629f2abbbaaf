package domain

// ModifierConfig defines a user-supplied modifier rule on top of the four
// built-in modifiers. The expression is a CEL boolean over the analysis
// context; when it evaluates true, Factor multiplies the composite modifier
// and Note is appended after the built-in notes.
type ModifierConfig struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// CEL expression over: leave_on, formulation, occlusive_count,
	// high_risk_count, ingredient_count, baseline.
	Expression string `json:"expression"`

	// Factor is the multiplicative adjustment when the rule fires.
	// Must be positive.
	Factor float64 `json:"factor"`

	// Note is the human-readable text appended when the rule fires.
	Note string `json:"note"`

	Enabled bool `json:"enabled"`
}

// ModifierInput is the analysis context custom rules evaluate over.
type ModifierInput struct {
	LeaveOn         bool
	Formulation     string
	OcclusiveCount  int
	HighRiskCount   int
	IngredientCount int
	Baseline        float64
}

// ModifierFiring records one custom rule that fired during an analysis.
type ModifierFiring struct {
	RuleID string  `json:"ruleId"`
	Factor float64 `json:"factor"`
	Note   string  `json:"note"`
}

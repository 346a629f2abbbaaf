package scorer

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/johnnie2785/comedogenic-tester/internal/domain"
)

// Resolver maps a free-text ingredient token to a catalog entry.
// Resolution never fails; unknown tokens come back as synthetic
// zero-score entries.
type Resolver interface {
	Resolve(ctx context.Context, query string) *domain.CatalogEntry
}

// CustomModifiers evaluates user-defined modifier rules against the
// analysis context. Implemented by the CEL engine in internal/modifier.
type CustomModifiers interface {
	Evaluate(ctx context.Context, in domain.ModifierInput) []domain.ModifierFiring
}

// Built-in modifier factors and their note texts. The formulation tag
// enumeration is intentional and exhaustive; near-synonyms fire nothing.
const (
	leaveOnFactor   = 1.15
	anhydrousFactor = 1.10
	woFactor        = 1.08
	occlusiveFactor = 1.12

	NoteLeaveOn    = "Leave-on -> +15%"
	NoteAnhydrous  = "Anhydrous -> +10%"
	NoteWOEmulsion = "W/O emulsion -> +8%"
	NoteOcclusives = "Multiple occlusives -> +12%"
)

// occlusiveThreshold is the occlusive-like ingredient count at which the
// multiple-occlusives modifier fires.
const occlusiveThreshold = 2

// Scorer composes parsing, weighting, catalog resolution, and modifier
// application. It holds no per-call state; Analyze invocations are
// independent and may run concurrently.
type Scorer struct {
	resolver Resolver
	custom   CustomModifiers
}

// New creates a scorer over the given resolver. custom may be nil.
func New(resolver Resolver, custom CustomModifiers) *Scorer {
	return &Scorer{
		resolver: resolver,
		custom:   custom,
	}
}

// Analyze scores one ingredient list. It returns nil when parsing yields
// zero ingredients; that is the "nothing to show" signal, not an error.
// All other inputs, however malformed, produce a well-defined result.
func (s *Scorer) Analyze(ctx context.Context, req *domain.AnalysisRequest) *domain.AnalysisResult {
	tokens := ParseIngredients(req.RawText)
	if len(tokens) == 0 {
		return nil
	}

	weights := ConcentrationWeights(len(tokens))

	result := &domain.AnalysisResult{
		ID:        uuid.New().String(),
		Breakdown: make([]domain.IngredientResult, 0, len(tokens)),
		Notes:     []string{},
		HighRisk:  []string{},
	}

	var baseline float64
	occlusiveCount := 0

	for i, token := range tokens {
		info := s.resolver.Resolve(ctx, token)
		contribution := info.Score * weights[i]
		baseline += contribution

		result.Breakdown = append(result.Breakdown, domain.IngredientResult{
			Name:         info.Name,
			BaseScore:    info.Score,
			Weight:       weights[i],
			Contribution: contribution,
			Notes:        info.Notes,
		})

		if info.IsOcclusiveLike() {
			occlusiveCount++
		}
		if info.Score >= domain.HighRiskScore {
			result.HighRisk = append(result.HighRisk, info.Name)
		}
	}

	result.Baseline = baseline
	result.Modifier = 1.0

	formulation := strings.ToLower(req.Formulation)

	if req.LeaveOn {
		result.Modifier *= leaveOnFactor
		result.Notes = append(result.Notes, NoteLeaveOn)
	}
	if formulation == "anhydrous" || formulation == "oil only" {
		result.Modifier *= anhydrousFactor
		result.Notes = append(result.Notes, NoteAnhydrous)
	}
	if formulation == "w/o" || formulation == "water-in-oil" {
		result.Modifier *= woFactor
		result.Notes = append(result.Notes, NoteWOEmulsion)
	}
	if occlusiveCount >= occlusiveThreshold {
		result.Modifier *= occlusiveFactor
		result.Notes = append(result.Notes, NoteOcclusives)
	}

	if s.custom != nil {
		firings := s.custom.Evaluate(ctx, domain.ModifierInput{
			LeaveOn:         req.LeaveOn,
			Formulation:     formulation,
			OcclusiveCount:  occlusiveCount,
			HighRiskCount:   len(result.HighRisk),
			IngredientCount: len(tokens),
			Baseline:        baseline,
		})
		for _, f := range firings {
			result.Modifier *= f.Factor
			result.Notes = append(result.Notes, f.Note)
		}
	}

	result.Score = clamp(baseline*result.Modifier, 0.0, domain.ScoreMax)
	result.Category = domain.ClassifyScore(result.Score)

	return result
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package modifier provides the CEL-based engine for user-defined modifier
// rules. Built-in modifiers live in the scorer; this engine only handles
// rules loaded from the catalog store.
package modifier

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/johnnie2785/comedogenic-tester/internal/domain"
)

// Engine compiles and evaluates custom modifier rules.
type Engine struct {
	mu       sync.RWMutex
	env      *cel.Env
	compiled map[string]*CompiledRule
}

// CompiledRule holds a pre-compiled CEL program.
type CompiledRule struct {
	Config  *domain.ModifierConfig
	Program cel.Program
}

// NewEngine creates a modifier rule engine with the analysis context
// variables declared.
func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("leave_on", cel.BoolType),
		cel.Variable("formulation", cel.StringType),
		cel.Variable("occlusive_count", cel.IntType),
		cel.Variable("high_risk_count", cel.IntType),
		cel.Variable("ingredient_count", cel.IntType),
		cel.Variable("baseline", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Engine{
		env:      env,
		compiled: make(map[string]*CompiledRule),
	}, nil
}

// ValidateRule compiles a rule without loading it.
func (e *Engine) ValidateRule(cfg *domain.ModifierConfig) error {
	if cfg == nil {
		return fmt.Errorf("modifier config is required")
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	_, err := e.compileRule(cfg)
	return err
}

// LoadRule compiles and loads a rule into the engine.
func (e *Engine) LoadRule(cfg *domain.ModifierConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	compiled, err := e.compileRule(cfg)
	if err != nil {
		return err
	}

	e.compiled[cfg.ID] = compiled
	return nil
}

// LoadRules compiles and loads the enabled rules from configs.
func (e *Engine) LoadRules(configs []*domain.ModifierConfig) error {
	for _, cfg := range configs {
		if cfg.Enabled {
			if err := e.LoadRule(cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReloadRules replaces all loaded rules (hot reload).
func (e *Engine) ReloadRules(configs []*domain.ModifierConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	newRules := make(map[string]*CompiledRule)
	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		compiled, err := e.compileRule(cfg)
		if err != nil {
			return err
		}
		newRules[cfg.ID] = compiled
	}

	e.compiled = newRules
	return nil
}

// RulesCount returns the number of loaded rules.
func (e *Engine) RulesCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.compiled)
}

// GetLoadedRules returns the currently loaded rule configurations,
// sorted by ID.
func (e *Engine) GetLoadedRules() []*domain.ModifierConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rules := make([]*domain.ModifierConfig, 0, len(e.compiled))
	for _, c := range e.compiled {
		rules = append(rules, c.Config)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}

// Evaluate runs every loaded rule against the analysis context and returns
// the firings in rule-ID order, so note ordering is deterministic. A rule
// that errors or returns a non-boolean simply does not fire.
func (e *Engine) Evaluate(ctx context.Context, in domain.ModifierInput) []domain.ModifierFiring {
	e.mu.RLock()
	rules := make([]*CompiledRule, 0, len(e.compiled))
	for _, r := range e.compiled {
		rules = append(rules, r)
	}
	e.mu.RUnlock()

	if len(rules) == 0 {
		return nil
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Config.ID < rules[j].Config.ID })

	activation := map[string]any{
		"leave_on":         in.LeaveOn,
		"formulation":      in.Formulation,
		"occlusive_count":  in.OcclusiveCount,
		"high_risk_count":  in.HighRiskCount,
		"ingredient_count": in.IngredientCount,
		"baseline":         in.Baseline,
	}

	var firings []domain.ModifierFiring
	for _, rule := range rules {
		out, _, err := rule.Program.Eval(activation)
		if err != nil {
			slog.Debug("modifier rule evaluation failed",
				"rule_id", rule.Config.ID, "error", err)
			continue
		}

		fired, ok := out.(types.Bool)
		if !ok || !bool(fired) {
			continue
		}

		firings = append(firings, domain.ModifierFiring{
			RuleID: rule.Config.ID,
			Factor: rule.Config.Factor,
			Note:   rule.Config.Note,
		})
	}

	return firings
}

// Close cleans up the engine.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.compiled = make(map[string]*CompiledRule)
	return nil
}

func (e *Engine) compileRule(cfg *domain.ModifierConfig) (*CompiledRule, error) {
	if cfg.Factor <= 0 {
		return nil, fmt.Errorf("modifier %s: factor must be positive, got %v", cfg.ID, cfg.Factor)
	}

	ast, issues := e.env.Compile(cfg.Expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile modifier %s: %w", cfg.ID, issues.Err())
	}

	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("modifier %s: expression must return bool, got %s", cfg.ID, ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create program for modifier %s: %w", cfg.ID, err)
	}

	return &CompiledRule{
		Config:  cfg,
		Program: program,
	}, nil
}

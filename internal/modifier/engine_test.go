package modifier

import (
	"context"
	"testing"

	"github.com/johnnie2785/comedogenic-tester/internal/domain"
)

func TestEngineCreation(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	defer engine.Close()

	if engine.RulesCount() != 0 {
		t.Errorf("expected 0 rules, got %d", engine.RulesCount())
	}
}

func TestLoadRule(t *testing.T) {
	engine, _ := NewEngine()
	defer engine.Close()

	rule := &domain.ModifierConfig{
		ID:         "many-occlusives",
		Name:       "Many Occlusives",
		Expression: "occlusive_count >= 4",
		Factor:     1.05,
		Note:       "Heavy occlusive load -> +5%",
		Enabled:    true,
	}

	if err := engine.LoadRule(rule); err != nil {
		t.Fatalf("failed to load rule: %v", err)
	}
	if engine.RulesCount() != 1 {
		t.Errorf("expected 1 rule, got %d", engine.RulesCount())
	}
}

func TestLoadInvalidRule(t *testing.T) {
	engine, _ := NewEngine()
	defer engine.Close()

	t.Run("BadCEL", func(t *testing.T) {
		err := engine.LoadRule(&domain.ModifierConfig{
			ID:         "bad-cel",
			Expression: "this is not valid CEL !!!",
			Factor:     1.1,
		})
		if err == nil {
			t.Error("expected error for invalid CEL expression")
		}
	})

	t.Run("NonBoolean", func(t *testing.T) {
		err := engine.LoadRule(&domain.ModifierConfig{
			ID:         "non-bool",
			Expression: "baseline * 2.0",
			Factor:     1.1,
		})
		if err == nil {
			t.Error("expected error for non-boolean expression")
		}
	})

	t.Run("NonPositiveFactor", func(t *testing.T) {
		err := engine.LoadRule(&domain.ModifierConfig{
			ID:         "zero-factor",
			Expression: "leave_on",
			Factor:     0,
		})
		if err == nil {
			t.Error("expected error for non-positive factor")
		}
	})
}

func TestEvaluate(t *testing.T) {
	engine, _ := NewEngine()
	defer engine.Close()

	rules := []*domain.ModifierConfig{
		{
			ID:         "a-long-list",
			Expression: "ingredient_count > 20",
			Factor:     1.05,
			Note:       "Long list -> +5%",
			Enabled:    true,
		},
		{
			ID:         "b-heavy-baseline",
			Expression: "baseline >= 2.0 && leave_on",
			Factor:     1.03,
			Note:       "Heavy leave-on -> +3%",
			Enabled:    true,
		},
		{
			ID:         "disabled-rule",
			Expression: "true",
			Factor:     2.0,
			Note:       "never loaded",
			Enabled:    false,
		},
	}
	if err := engine.LoadRules(rules); err != nil {
		t.Fatalf("failed to load rules: %v", err)
	}
	if engine.RulesCount() != 2 {
		t.Fatalf("expected 2 enabled rules, got %d", engine.RulesCount())
	}

	ctx := context.Background()

	t.Run("NoneFire", func(t *testing.T) {
		firings := engine.Evaluate(ctx, domain.ModifierInput{
			IngredientCount: 3,
			Baseline:        1.0,
		})
		if len(firings) != 0 {
			t.Errorf("expected no firings, got %v", firings)
		}
	})

	t.Run("BothFireInIDOrder", func(t *testing.T) {
		firings := engine.Evaluate(ctx, domain.ModifierInput{
			LeaveOn:         true,
			IngredientCount: 25,
			Baseline:        2.5,
		})
		if len(firings) != 2 {
			t.Fatalf("expected 2 firings, got %v", firings)
		}
		if firings[0].RuleID != "a-long-list" || firings[1].RuleID != "b-heavy-baseline" {
			t.Errorf("firings out of ID order: %v", firings)
		}
		if firings[0].Factor != 1.05 || firings[1].Factor != 1.03 {
			t.Errorf("unexpected factors: %v", firings)
		}
	})

	t.Run("FormulationVariable", func(t *testing.T) {
		eng2, _ := NewEngine()
		defer eng2.Close()

		_ = eng2.LoadRule(&domain.ModifierConfig{
			ID:         "gel",
			Expression: `formulation == "gel"`,
			Factor:     1.02,
			Note:       "Gel -> +2%",
			Enabled:    true,
		})

		if got := eng2.Evaluate(ctx, domain.ModifierInput{Formulation: "gel"}); len(got) != 1 {
			t.Errorf("expected gel rule to fire, got %v", got)
		}
		if got := eng2.Evaluate(ctx, domain.ModifierInput{Formulation: "o/w"}); len(got) != 0 {
			t.Errorf("expected no firing, got %v", got)
		}
	})
}

func TestReloadRules(t *testing.T) {
	engine, _ := NewEngine()
	defer engine.Close()

	_ = engine.LoadRule(&domain.ModifierConfig{
		ID: "old", Expression: "true", Factor: 1.1, Note: "old", Enabled: true,
	})

	err := engine.ReloadRules([]*domain.ModifierConfig{
		{ID: "new", Expression: "high_risk_count > 0", Factor: 1.2, Note: "new", Enabled: true},
	})
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	rules := engine.GetLoadedRules()
	if len(rules) != 1 || rules[0].ID != "new" {
		t.Errorf("expected only the new rule after reload, got %v", rules)
	}
}

func TestValidateRuleDoesNotLoad(t *testing.T) {
	engine, _ := NewEngine()
	defer engine.Close()

	err := engine.ValidateRule(&domain.ModifierConfig{
		ID: "check", Expression: "occlusive_count >= 1", Factor: 1.01,
	})
	if err != nil {
		t.Fatalf("ValidateRule failed: %v", err)
	}
	if engine.RulesCount() != 0 {
		t.Errorf("ValidateRule must not load the rule")
	}
}

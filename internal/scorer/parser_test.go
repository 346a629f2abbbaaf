package scorer

import (
	"reflect"
	"testing"
)

func TestParseIngredients(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"Commas", "A, B, C", []string{"A", "B", "C"}},
		{"Semicolons", "A; B;C", []string{"A", "B", "C"}},
		{"Newlines", "A\nB\nC", []string{"A", "B", "C"}},
		{"Mixed", "A, B; C\nD", []string{"A", "B", "C", "D"}},
		{"EmptyFragmentsDropped", "A,, ,B", []string{"A", "B"}},
		{"WhitespaceTrimmed", "  Water (Aqua) , Glycerin ", []string{"Water (Aqua)", "Glycerin"}},
		{"Empty", "", nil},
		{"OnlyWhitespace", "   \n  ; ,", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseIngredients(tc.in)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseIngredients(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseIngredientsPreservesOrder(t *testing.T) {
	got := ParseIngredients("Zinc Oxide, Aqua, Beeswax")
	want := []string{"Zinc Oxide", "Aqua", "Beeswax"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order not preserved: got %v", got)
	}
}

package catalog

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
	}{
		{"ParentheticalStripped", "Water (Aqua)", "water"},
		{"PunctuationCollapsed", "Cetearyl-Alcohol/Cetyl", "cetearyl alcohol cetyl"},
		{"Lowercased", "ISOPROPYL MYRISTATE", "isopropyl myristate"},
		{"Trimmed", "  Shea Butter  ", "shea butter"},
		{"DigitsKept", "Polysorbate 80", "polysorbate 80"},
		{"Empty", "", ""},
		{"OnlyParenthetical", "(Aqua)", ""},
		{"NestedText", "Butyrospermum Parkii (Shea) Butter", "butyrospermum parkii  butter"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Water (Aqua)",
		"Cetearyl-Alcohol",
		"  Shea Butter  ",
		"already normalized name",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

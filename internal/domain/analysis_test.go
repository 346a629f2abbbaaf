package domain

import "testing"

func TestClassifyScore(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.0, BandVeryLow},
		{0.49, BandVeryLow},
		{0.5, BandLow}, // boundary is half-open
		{1.49, BandLow},
		{1.5, BandModerate},
		{2.49, BandModerate},
		{2.5, BandHigh},
		{3.49, BandHigh},
		{3.5, BandVeryHigh},
		{5.0, BandVeryHigh},
	}

	for _, tc := range cases {
		if got := ClassifyScore(tc.score); got != tc.want {
			t.Errorf("ClassifyScore(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestIsOcclusiveLike(t *testing.T) {
	cases := []struct {
		name  string
		entry CatalogEntry
		want  bool
	}{
		{"Occlusive", CatalogEntry{Category: CategoryOcclusive, Score: 1}, true},
		{"Butter", CatalogEntry{Category: CategoryButter, Score: 0}, true},
		{"Wax", CatalogEntry{Category: CategoryWax, Score: 2}, true},
		{"HighScore", CatalogEntry{Category: "ester", Score: 4}, true},
		{"LowScoreOther", CatalogEntry{Category: "humectant", Score: 1}, false},
		{"Unknown", CatalogEntry{Category: CategoryUnknown, Score: 0}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.entry.IsOcclusiveLike(); got != tc.want {
				t.Errorf("IsOcclusiveLike() = %v, want %v", got, tc.want)
			}
		})
	}
}

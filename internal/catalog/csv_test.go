package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `name,score,synonyms,category,notes
Water (Aqua),0,aqua;eau,solvent,non-comedogenic
Coconut Oil,4,cocos nucifera oil,occlusive,highly comedogenic
Shea Butter,0,butyrospermum parkii,butter,generally safe
Beeswax,2,cera alba,wax,moderate
`

func TestParseCSV(t *testing.T) {
	entries, err := parseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries (header skipped), got %d", len(entries))
	}

	first := entries[0]
	if first.Name != "Water (Aqua)" || first.Score != 0 || first.Category != "solvent" {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if first.Synonyms != "aqua;eau" {
		t.Errorf("expected synonyms preserved, got %q", first.Synonyms)
	}

	if entries[1].Score != 4 {
		t.Errorf("expected score 4, got %v", entries[1].Score)
	}
}

func TestParseCSVMalformedRows(t *testing.T) {
	input := `name,score,synonyms,category,notes
Good Row,2,,wax,ok
,3,,wax,missing name
Bad Score,not-a-number,,wax,skipped
Short Row,1
`

	entries, err := parseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}

	// "Good Row" and "Short Row" survive; missing name and bad score drop.
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Good Row" {
		t.Errorf("expected Good Row, got %s", entries[0].Name)
	}
	if entries[1].Name != "Short Row" || entries[1].Category != "" {
		t.Errorf("expected Short Row with empty category, got %+v", entries[1])
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatalf("failed to write temp csv: %v", err)
	}

	entries, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("expected 4 entries, got %d", len(entries))
	}
}

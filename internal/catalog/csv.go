package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/johnnie2785/comedogenic-tester/internal/domain"
)

// Expected column order of the tabular source.
// name, score, synonyms, category, notes
const (
	colName = iota
	colScore
	colSynonyms
	colCategory
	colNotes
)

// LoadCSV reads catalog entries from the external tabular source.
// A header row is skipped when present. Malformed rows (missing name,
// non-numeric score) are dropped silently per the degrade-don't-fail
// policy; only an unreadable file surfaces an error, and callers treat
// that as "empty catalog", not a fatal condition.
func LoadCSV(path string) ([]*domain.CatalogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog source: %w", err)
	}
	defer f.Close()

	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]*domain.CatalogEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate short rows, pad below

	var entries []*domain.CatalogEntry
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip unparseable rows, keep reading.
			line++
			continue
		}
		line++

		entry, ok := parseRow(record)
		if !ok {
			if line > 1 { // header row is expected to fail
				slog.Debug("skipping malformed catalog row", "line", line)
			}
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseRow(record []string) (*domain.CatalogEntry, bool) {
	if len(record) <= colScore {
		return nil, false
	}

	name := strings.TrimSpace(record[colName])
	if name == "" {
		return nil, false
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(record[colScore]), 64)
	if err != nil {
		return nil, false
	}

	entry := &domain.CatalogEntry{Name: name, Score: score}
	if len(record) > colSynonyms {
		entry.Synonyms = strings.TrimSpace(record[colSynonyms])
	}
	if len(record) > colCategory {
		entry.Category = strings.TrimSpace(record[colCategory])
	}
	if len(record) > colNotes {
		entry.Notes = strings.TrimSpace(record[colNotes])
	}

	return entry, true
}

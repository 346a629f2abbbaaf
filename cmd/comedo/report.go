package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/johnnie2785/comedogenic-tester/internal/domain"
	"github.com/johnnie2785/comedogenic-tester/internal/scorer"
)

// printReport renders an analysis in the on-screen layout of the desktop
// tool. Display rounding happens only here; the domain result keeps full
// precision.
func printReport(w io.Writer, res *domain.AnalysisResult) {
	if res == nil {
		fmt.Fprintln(w, "No ingredients provided.")
		return
	}

	fmt.Fprintf(w, "Overall score (0-5): %v  - Category: %s\n", round(res.Score, 2), res.Category)
	fmt.Fprintf(w, "Baseline: %v  Modifier: %v\n", round(res.Baseline, 3), round(res.Modifier, 3))

	if len(res.Notes) > 0 {
		fmt.Fprintln(w, "Modifiers applied:")
		for _, n := range res.Notes {
			fmt.Fprintf(w, " - %s\n", n)
		}
	}

	fmt.Fprintln(w, "\nIngredient breakdown (top -> bottom):")
	for _, b := range res.Breakdown {
		fmt.Fprintf(w, " - %s: base %v * weight %v => contrib %v   (%s)\n",
			b.Name, b.BaseScore, round(b.Weight, 4), round(b.Contribution, 4), b.Notes)
	}

	if len(res.HighRisk) > 0 {
		fmt.Fprintln(w, "\nHigh-risk ingredients found:")
		for _, h := range res.HighRisk {
			fmt.Fprintf(w, " - %s\n", h)
		}
	}
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// runBatch analyzes one ingredient list per line of path with a bounded
// worker pool. The catalog is immutable and the scorer stateless, so
// concurrent analyses need no synchronization beyond output ordering.
func runBatch(ctx context.Context, sc *scorer.Scorer, path string, workers int, leaveOn bool, formulation string) error {
	if workers <= 0 {
		workers = 4
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc1 := bufio.NewScanner(f)
	sc1.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc1.Scan() {
		lines = append(lines, sc1.Text())
	}
	if err := sc1.Err(); err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	results := make([]*domain.AnalysisResult, len(lines))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, line := range lines {
		wg.Add(1)
		go func(idx int, text string) {
			defer wg.Done()

			sem <- struct{}{}        // Acquire
			defer func() { <-sem }() // Release

			results[idx] = sc.Analyze(ctx, &domain.AnalysisRequest{
				RawText:     text,
				LeaveOn:     leaveOn,
				Formulation: formulation,
			})
		}(i, line)
	}

	wg.Wait()

	for i, res := range results {
		if res == nil {
			fmt.Printf("line %d: no ingredients\n", i+1)
			continue
		}
		fmt.Printf("line %d: score %v (%s), %d ingredients, %d high-risk\n",
			i+1, round(res.Score, 2), res.Category, len(res.Breakdown), len(res.HighRisk))
	}

	return nil
}

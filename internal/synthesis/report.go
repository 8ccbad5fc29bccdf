// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesis renders evaluation results into a human-readable report.
// Rendering is a pure function of its inputs: identical inputs produce
// byte-identical reports, so no clocks or randomness are used here.
package synthesis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hassanmzia/AI-Research-Agent/internal/evaluator"
	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

const topPaperCount = 5

// Report renders the final analysis report for a completed run.
func Report(objective string, papers []types.CandidatePaper, evals []types.EvaluationResult) string {
	sorted := make([]types.EvaluationResult, len(evals))
	copy(sorted, evals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].PaperID < sorted[j].PaperID
	})

	var high, medium, low int
	total := 0.0
	for _, ev := range sorted {
		total += ev.Score
		switch ev.Classification {
		case types.ClassificationHigh:
			high++
		case types.ClassificationMedium:
			medium++
		default:
			low++
		}
	}
	avg := 0.0
	if len(sorted) > 0 {
		avg = total / float64(len(sorted))
	}

	var b strings.Builder
	b.WriteString("# Research Analysis Report\n\n")
	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "**Research Objective:** %s\n\n", objective)
	b.WriteString("**Discovery Overview:**\n")
	fmt.Fprintf(&b, "- Total papers discovered: %d\n", len(papers))
	fmt.Fprintf(&b, "- Papers successfully evaluated: %d\n", len(evals))
	fmt.Fprintf(&b, "- Average score: %.1f/100\n\n", avg)
	b.WriteString("**Potential Distribution:**\n")
	fmt.Fprintf(&b, "- High potential: %d papers\n", high)
	fmt.Fprintf(&b, "- Medium potential: %d papers\n", medium)
	fmt.Fprintf(&b, "- Low potential: %d papers\n\n", low)
	b.WriteString("## Top-Scoring Papers\n\n")

	n := topPaperCount
	if n > len(sorted) {
		n = len(sorted)
	}
	for i, ev := range sorted[:n] {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, ev.PaperTitle)
		fmt.Fprintf(&b, "**Authors:** %s\n", formatAuthors(ev.PaperAuthors))
		fmt.Fprintf(&b, "**Score:** %.1f/100 (%s)\n", ev.Score, ev.Classification)
		fmt.Fprintf(&b, "**Key Innovations:** %s\n", formatList(ev.Innovations))
		fmt.Fprintf(&b, "**Assessment:** %s\n\n", ev.Assessment)
	}

	b.WriteString(methodologySection())
	return b.String()
}

// NoResultsReport is the canned report for runs where discovery found
// nothing to evaluate.
func NoResultsReport(objective string) string {
	var b strings.Builder
	b.WriteString("# Research Analysis Report\n\n")
	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "**Research Objective:** %s\n\n", objective)
	b.WriteString("No papers were discovered for the given research objective.\n\n")
	b.WriteString("## Recommendations\n\n")
	b.WriteString("1. **Broaden Search Criteria:** Expand search terms and sources\n")
	b.WriteString("2. **Adjust Date Range:** Consider extending the search timeframe\n")
	b.WriteString("3. **Review Keywords:** Try alternative or broader keywords\n")
	return b.String()
}

// methodologySection renders the fixed scoring legend from the rubric table.
func methodologySection() string {
	var b strings.Builder
	b.WriteString("---\n\n## Scoring Methodology\n\n")
	b.WriteString("### Weighted Parameters:\n")
	for i, p := range evaluator.Parameters {
		fmt.Fprintf(&b, "%d. %s (%.0f%%)\n", i+1, p.Label, p.Weight*100)
	}
	b.WriteString("\n### Score Interpretation:\n")
	b.WriteString("- 90-100: Exceptional contribution\n")
	b.WriteString("- 70-89: High potential\n")
	b.WriteString("- 40-69: Medium potential\n")
	b.WriteString("- 0-39: Low potential\n")
	return b.String()
}

func formatAuthors(authors []string) string {
	if len(authors) == 0 {
		return "Unknown"
	}
	if len(authors) > 3 {
		return strings.Join(authors[:3], ", ") + "..."
	}
	return strings.Join(authors, ", ")
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "N/A"
	}
	if len(items) > 3 {
		items = items[:3]
	}
	return strings.Join(items, ", ")
}

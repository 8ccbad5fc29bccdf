// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"sort"
	"strings"

	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

const (
	// titleMatchWeight scores a relevance term found in the title.
	titleMatchWeight = 3.0

	// abstractMatchWeight scores a term found only in the abstract.
	abstractMatchWeight = 1.5

	// minRelevanceScore is the threshold a candidate must reach to be kept.
	minRelevanceScore = 2.0
)

// ScoredCandidate pairs a candidate with its relevance score for sorting.
type ScoredCandidate struct {
	Score float64
	Paper types.CandidatePaper
}

// RelevanceScore scores one candidate against the relevance terms. When
// required terms are present, a candidate containing none of them verbatim in
// its title or abstract scores zero regardless of other matches. Otherwise
// each matching term contributes its word count times the title or abstract
// weight, so a phrase match outweighs a single-word match.
func RelevanceScore(paper types.CandidatePaper, terms, required []string) float64 {
	title := strings.ToLower(paper.Title)
	text := title + " " + strings.ToLower(paper.Abstract)

	if len(required) > 0 && !containsAny(text, required) {
		return 0
	}

	score := 0.0
	for _, term := range terms {
		if !strings.Contains(text, term) {
			continue
		}
		words := float64(len(strings.Fields(term)))
		if strings.Contains(title, term) {
			score += titleMatchWeight * words
		} else {
			score += abstractMatchWeight * words
		}
	}
	return score
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// FilterResult carries the filter's outcome and accounting.
type FilterResult struct {
	Papers       []types.CandidatePaper
	FilteredOut  int
	FallbackUsed bool
}

// FilterByRelevance scores candidates, sorts them by score descending, and
// keeps those at or above the minimum threshold, capped at maxPapers. When
// the threshold keeps nothing but candidates exist, the top
// max(3, maxPapers/3) raw-scored candidates are kept instead: weak signal
// beats an empty run.
func FilterByRelevance(papers []types.CandidatePaper, terms, required []string, maxPapers int) FilterResult {
	scored := make([]ScoredCandidate, 0, len(papers))
	for _, p := range papers {
		scored = append(scored, ScoredCandidate{
			Score: RelevanceScore(p, terms, required),
			Paper: p,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	var kept []types.CandidatePaper
	for _, sc := range scored {
		if sc.Score < minRelevanceScore {
			break
		}
		kept = append(kept, sc.Paper)
		if len(kept) == maxPapers {
			break
		}
	}

	fallback := false
	if len(kept) == 0 && len(scored) > 0 {
		fallback = true
		n := maxInt(3, maxPapers/3)
		if n > len(scored) {
			n = len(scored)
		}
		for _, sc := range scored[:n] {
			kept = append(kept, sc.Paper)
		}
	}

	return FilterResult{
		Papers:       kept,
		FilteredOut:  len(papers) - len(kept),
		FallbackUsed: fallback,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

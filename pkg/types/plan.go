// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research pipeline:
// execution plans, candidate papers, evaluation results, and the run
// aggregate returned to callers.
package types

import (
	"strings"
	"time"
)

// DateWindow is an inclusive publication date range for discovery queries.
type DateWindow struct {
	// From is the start of the window.
	From time.Time `json:"from" yaml:"from"`

	// To is the end of the window.
	To time.Time `json:"to" yaml:"to"`
}

// IsZero reports whether neither bound is set.
func (w DateWindow) IsZero() bool {
	return w.From.IsZero() && w.To.IsZero()
}

// ExecutionPlan is the planner's output for one pipeline run. It is created
// once per run and immutable afterwards, except that caller-supplied custom
// keywords are unioned into Keywords before discovery begins.
type ExecutionPlan struct {
	// Keywords are curated search phrases, most specific first.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// StructuredQueries are the 1-4 queries issued against the paper index,
	// derived from Keywords by the discovery stage.
	StructuredQueries []string `json:"structured_queries" yaml:"structured_queries"`

	// RequiredTerms must appear (any one of them) in a candidate's title or
	// abstract before it receives any relevance score.
	RequiredTerms []string `json:"required_terms,omitempty" yaml:"required_terms,omitempty"`

	// Categories are source subject hints (e.g. "cs.AI", "cs.LG").
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Window bounds the publication dates searched.
	Window DateWindow `json:"date_range" yaml:"date_range"`

	// Fallback records that the plan was derived mechanically from the
	// objective because the planning model call failed or was unparsable.
	Fallback bool `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// MergeKeywords unions extra keywords into the plan, preserving existing
// order and dropping duplicates case-insensitively.
func (p *ExecutionPlan) MergeKeywords(extra []string) {
	seen := make(map[string]bool, len(p.Keywords))
	for _, k := range p.Keywords {
		seen[normalizeKeyword(k)] = true
	}
	for _, k := range extra {
		norm := normalizeKeyword(k)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		p.Keywords = append(p.Keywords, k)
	}
}

func normalizeKeyword(k string) string {
	return strings.Join(strings.Fields(strings.ToLower(k)), " ")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discovery finds candidate papers for an execution plan: it builds
// structured queries, fans them out against an academic search source, merges
// results by paper identity, and filters them by relevance to the objective.
package discovery

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

// Source issues one structured query against an academic paper index.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, limit int, window types.DateWindow, categories []string) ([]types.CandidatePaper, error)
}

// Discoverer runs the discovery phase against a single source.
type Discoverer struct {
	source Source
	logger *zap.Logger
}

// New returns a Discoverer over the given source.
func New(source Source, logger *zap.Logger) *Discoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{source: source, logger: logger}
}

// Result is the discovery phase output.
type Result struct {
	Papers []types.CandidatePaper
	Stats  types.DiscoveryStats
}

// Discover runs every structured query in the plan concurrently, merges the
// results keyed by paper identity (first query wins, later queries never
// overwrite), and applies the relevance filter. Source failures degrade to
// fewer candidates; they never abort the phase.
func (d *Discoverer) Discover(ctx context.Context, plan *types.ExecutionPlan, objective string, maxPapers int) Result {
	queries := plan.StructuredQueries
	if len(queries) > maxStructuredQueries {
		queries = queries[:maxStructuredQueries]
	}

	perQuery := maxPapers * 2
	if perQuery < 20 {
		perQuery = 20
	}

	// Fan out, but keep per-query result slots so the merge below walks in
	// query order regardless of completion order.
	byQuery := make([][]types.CandidatePaper, len(queries))
	errs := make([]error, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			papers, err := d.source.Search(ctx, q, perQuery, plan.Window, plan.Categories)
			byQuery[i], errs[i] = papers, err
		}(i, q)
	}
	wg.Wait()

	stats := types.DiscoveryStats{QueriesIssued: len(queries)}

	var all []types.CandidatePaper
	seen := make(map[string]bool)
	for i := range queries {
		if errs[i] != nil {
			d.logger.Warn("search query failed",
				zap.String("source", d.source.Name()),
				zap.String("query", queries[i]),
				zap.Error(errs[i]))
			stats.SourceErrors++
			continue
		}
		for _, p := range byQuery[i] {
			stats.InitialCount++
			key := p.Identity()
			if seen[key] {
				stats.DuplicatesRemoved++
				continue
			}
			seen[key] = true
			all = append(all, p)
		}
	}

	terms := ExtractRelevanceTerms(objective, plan.Keywords)
	d.logger.Debug("relevance terms extracted", zap.Strings("terms", terms))

	filtered := FilterByRelevance(all, terms, plan.RequiredTerms, maxPapers)
	stats.RelevanceFiltered = filtered.FilteredOut
	stats.FallbackUsed = filtered.FallbackUsed

	if filtered.FallbackUsed {
		d.logger.Warn("no candidates met the relevance threshold, keeping top raw-scored papers",
			zap.Int("kept", len(filtered.Papers)))
	}

	return Result{Papers: filtered.Papers, Stats: stats}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassanmzia/AI-Research-Agent/internal/discovery"
	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

type fakePlanner struct {
	plan     *types.ExecutionPlan
	lookback int
}

func (f *fakePlanner) CreatePlan(_ context.Context, objective string, lookbackDays int) *types.ExecutionPlan {
	f.lookback = lookbackDays
	if f.plan != nil {
		return f.plan
	}
	return &types.ExecutionPlan{Keywords: []string{"neural architecture search"}}
}

type fakeDiscoverer struct {
	papers    []types.CandidatePaper
	stats     types.DiscoveryStats
	maxPapers int
	plan      *types.ExecutionPlan
	panicMsg  string
}

func (f *fakeDiscoverer) Discover(_ context.Context, plan *types.ExecutionPlan, _ string, maxPapers int) discovery.Result {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.maxPapers = maxPapers
	f.plan = plan
	return discovery.Result{Papers: f.papers, Stats: f.stats}
}

type fakeEvaluator struct {
	failIDs map[string]bool
	scores  map[string]float64
}

func (f *fakeEvaluator) Evaluate(_ context.Context, paper types.CandidatePaper) (*types.EvaluationResult, error) {
	if f.failIDs[paper.ID] {
		return nil, errors.New("model said no")
	}
	score := f.scores[paper.ID]
	if score == 0 {
		score = 50
	}
	return &types.EvaluationResult{
		PaperID:        paper.ID,
		PaperTitle:     paper.Title,
		Score:          score,
		Classification: types.ClassificationMedium,
	}, nil
}

func discoveredPapers(n int) []types.CandidatePaper {
	papers := make([]types.CandidatePaper, n)
	for i := range papers {
		papers[i] = types.CandidatePaper{
			ID:    fmt.Sprintf("p-%d", i),
			Title: fmt.Sprintf("Paper %d", i),
		}
	}
	return papers
}

func newTestPipeline(d *fakeDiscoverer, e *fakeEvaluator) *Pipeline {
	return New(&fakePlanner{}, d, e, nil)
}

func TestRunHappyPath(t *testing.T) {
	d := &fakeDiscoverer{papers: discoveredPapers(2)}
	e := &fakeEvaluator{scores: map[string]float64{"p-0": 80, "p-1": 40}}
	p := newTestPipeline(d, e)

	var phases []string
	run := p.Run(context.Background(), Request{Objective: "efficient architecture search"}, Callbacks{
		OnPhaseChange: func(phase string) { phases = append(phases, phase) },
	})

	require.NotNil(t, run)
	assert.False(t, run.Failed())
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, types.PhaseCompletion, run.Phase)
	assert.Equal(t, []string{"planning", "discovery", "evaluation", "synthesis", "completion"}, phases)
	assert.Equal(t, []string{"planning", "discovery", "evaluation", "synthesis", "completion"}, run.PhasesCompleted)

	assert.Len(t, run.Evaluations, 2)
	assert.Equal(t, 60.0, run.Stats.AverageScore)
	assert.Equal(t, 2, run.Stats.Evaluation.Success)
	assert.Contains(t, run.Report, "Research Analysis Report")
	assert.NotEmpty(t, run.Plan.StructuredQueries, "queries are built during planning")
}

func TestRunEmptyObjectiveFails(t *testing.T) {
	p := newTestPipeline(&fakeDiscoverer{}, &fakeEvaluator{})

	run := p.Run(context.Background(), Request{Objective: "   "}, Callbacks{})

	assert.True(t, run.Failed())
	assert.Equal(t, types.PhaseFailed, run.Phase)
	require.Len(t, run.Errors, 1)
	assert.Equal(t, "empty research objective", run.Errors[0].Message)
	assert.Empty(t, run.PhasesCompleted)
}

func TestRunZeroPapersShortCircuits(t *testing.T) {
	evaluatorCalled := false
	d := &fakeDiscoverer{papers: nil}
	e := &fakeEvaluator{}
	p := New(&fakePlanner{}, d, evaluatorSpy{inner: e, called: &evaluatorCalled}, nil)

	var phases []string
	run := p.Run(context.Background(), Request{Objective: "something nobody studies"}, Callbacks{
		OnPhaseChange: func(phase string) { phases = append(phases, phase) },
	})

	assert.False(t, run.Failed())
	assert.Equal(t, types.PhaseCompletion, run.Phase)
	assert.Equal(t, []string{"planning", "discovery", "completion"}, run.PhasesCompleted)
	assert.Equal(t, []string{"planning", "discovery", "completion"}, phases)
	assert.Contains(t, run.Report, "No papers were discovered")
	assert.False(t, evaluatorCalled, "evaluation must be skipped entirely")
}

type evaluatorSpy struct {
	inner  Evaluator
	called *bool
}

func (s evaluatorSpy) Evaluate(ctx context.Context, paper types.CandidatePaper) (*types.EvaluationResult, error) {
	*s.called = true
	return s.inner.Evaluate(ctx, paper)
}

func TestRunPerPaperFailuresDegrade(t *testing.T) {
	d := &fakeDiscoverer{papers: discoveredPapers(3)}
	e := &fakeEvaluator{
		failIDs: map[string]bool{"p-1": true},
		scores:  map[string]float64{"p-0": 60, "p-2": 40},
	}
	p := newTestPipeline(d, e)

	run := p.Run(context.Background(), Request{Objective: "obj"}, Callbacks{})

	assert.False(t, run.Failed(), "per-paper failures must not fail the run")
	assert.Len(t, run.Evaluations, 2)
	assert.Equal(t, 3, run.Stats.Evaluation.Total)
	assert.Equal(t, 2, run.Stats.Evaluation.Success)
	assert.Equal(t, 1, run.Stats.Evaluation.Failed)
	assert.Equal(t, 50.0, run.Stats.AverageScore)

	require.Len(t, run.Errors, 1)
	assert.Equal(t, types.PhaseEvaluation, run.Errors[0].Phase)
	assert.Equal(t, "p-1", run.Errors[0].PaperID)
}

func TestRunPanicRecoversToFailed(t *testing.T) {
	d := &fakeDiscoverer{panicMsg: "index out of range"}
	p := newTestPipeline(d, &fakeEvaluator{})

	run := p.Run(context.Background(), Request{Objective: "obj"}, Callbacks{})

	require.NotNil(t, run, "a run is always returned")
	assert.True(t, run.Failed())
	assert.Equal(t, types.PhaseFailed, run.Phase)
	require.NotEmpty(t, run.Errors)
	assert.Contains(t, run.Errors[0].Message, "index out of range")
	assert.Equal(t, types.PhaseDiscovery, run.Errors[0].Phase, "fault recorded against the phase it struck")
}

func TestRunKnobClamping(t *testing.T) {
	tests := []struct {
		name         string
		maxPapers    int
		lookbackDays int
		wantPapers   int
		wantLookback int
	}{
		{"zero selects defaults", 0, 0, 10, 14},
		{"negative clamps to minimum", -5, -1, 1, 1},
		{"above limit clamps down", 200, 1000, 50, 365},
		{"in range passes through", 25, 30, 25, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := &fakePlanner{}
			d := &fakeDiscoverer{}
			p := New(planner, d, &fakeEvaluator{}, nil)

			p.Run(context.Background(), Request{
				Objective:    "obj",
				MaxPapers:    tt.maxPapers,
				LookbackDays: tt.lookbackDays,
			}, Callbacks{})

			assert.Equal(t, tt.wantPapers, d.maxPapers)
			assert.Equal(t, tt.wantLookback, planner.lookback)
		})
	}
}

func TestRunCustomKeywordsAndCategories(t *testing.T) {
	planner := &fakePlanner{plan: &types.ExecutionPlan{
		Keywords:   []string{"base keyword"},
		Categories: []string{"cs.LG"},
	}}
	d := &fakeDiscoverer{}
	p := New(planner, d, &fakeEvaluator{}, nil)

	p.Run(context.Background(), Request{
		Objective:      "obj",
		CustomKeywords: []string{"extra keyword", "Base Keyword"},
		Categories:     []string{"cs.RO"},
	}, Callbacks{})

	require.NotNil(t, d.plan)
	assert.Equal(t, []string{"base keyword", "extra keyword"}, d.plan.Keywords)
	assert.Equal(t, []string{"cs.RO"}, d.plan.Categories, "request categories override the plan")
}

func TestRunLogCallbackRoles(t *testing.T) {
	d := &fakeDiscoverer{papers: discoveredPapers(1)}
	p := newTestPipeline(d, &fakeEvaluator{})

	roles := map[string]bool{}
	run := p.Run(context.Background(), Request{Objective: "obj"}, Callbacks{
		OnLog: func(role, message, level string, _ map[string]any) {
			roles[role] = true
			assert.NotEmpty(t, message)
			assert.Contains(t, []string{"info", "warning", "error"}, level)
		},
	})

	assert.False(t, run.Failed())
	for _, want := range []string{"lead_supervisor", "planner", "discovery", "evaluation"} {
		assert.True(t, roles[want], "missing log role %q", want)
	}
}

func TestRunRecordsProcessingTime(t *testing.T) {
	d := &fakeDiscoverer{papers: discoveredPapers(1)}
	p := newTestPipeline(d, &fakeEvaluator{})

	run := p.Run(context.Background(), Request{Objective: "obj"}, Callbacks{})
	assert.GreaterOrEqual(t, run.Stats.ProcessingSeconds, 0.0)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("x", 70)
	got := truncate(long, 60)
	assert.Len(t, got, 60)
	assert.True(t, strings.HasSuffix(got, "..."))
}

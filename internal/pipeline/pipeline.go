// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the research workflow: planning, discovery,
// evaluation, and synthesis, with phase-change and log callbacks for the
// caller. The returned PipelineRun is the only artifact; failures degrade the
// result instead of escaping to the caller.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hassanmzia/AI-Research-Agent/internal/discovery"
	"github.com/hassanmzia/AI-Research-Agent/internal/synthesis"
	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

// Request bounds for caller-supplied knobs.
const (
	defaultMaxPapers    = 10
	maxPapersLimit      = 50
	defaultLookbackDays = 14
	lookbackDaysLimit   = 365
)

// Request holds the caller's parameters for one run.
type Request struct {
	// Objective is the research question.
	Objective string

	// MaxPapers caps the papers kept after filtering (1-50; 0 selects the
	// default of 10).
	MaxPapers int

	// LookbackDays bounds the discovery window (1-365; 0 selects the
	// default of 14).
	LookbackDays int

	// CustomKeywords are unioned into the plan's keywords.
	CustomKeywords []string

	// Categories override the plan's category hints when non-empty.
	Categories []string
}

// Callbacks are the caller's synchronous notification hooks. Either may be
// nil.
type Callbacks struct {
	// OnPhaseChange fires on entry to each phase.
	OnPhaseChange func(phase string)

	// OnLog receives every role-tagged pipeline log line.
	OnLog func(role, message, level string, metadata map[string]any)
}

// Planner creates the execution plan for an objective.
type Planner interface {
	CreatePlan(ctx context.Context, objective string, lookbackDays int) *types.ExecutionPlan
}

// Discoverer finds and filters candidate papers for a plan.
type Discoverer interface {
	Discover(ctx context.Context, plan *types.ExecutionPlan, objective string, maxPapers int) discovery.Result
}

// Evaluator scores one paper against the rubric.
type Evaluator interface {
	Evaluate(ctx context.Context, paper types.CandidatePaper) (*types.EvaluationResult, error)
}

// Pipeline drives the phase state machine. It exclusively owns the
// PipelineRun aggregate while a run is in flight.
type Pipeline struct {
	planner    Planner
	discoverer Discoverer
	evaluator  Evaluator
	logger     *zap.Logger

	// now is injectable for timing tests.
	now func() time.Time
}

// New assembles a Pipeline from its components.
func New(planner Planner, discoverer Discoverer, evaluator Evaluator, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		planner:    planner,
		discoverer: discoverer,
		evaluator:  evaluator,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes the pipeline for one objective. It always returns a
// PipelineRun: component failures are recorded in the run's Errors and the
// result degrades (fewer papers, a no-results report) rather than the call
// failing. An unexpected fault terminates the run in the failed phase with
// whatever partial results were accumulated.
func (p *Pipeline) Run(ctx context.Context, req Request, cb Callbacks) (run *types.PipelineRun) {
	start := p.now()
	run = &types.PipelineRun{
		ID:        uuid.NewString(),
		Objective: strings.TrimSpace(req.Objective),
	}

	defer func() {
		if r := recover(); r != nil {
			run.Errors = append(run.Errors, types.PipelineError{
				Message: fmt.Sprintf("pipeline fault: %v", r),
				Phase:   run.Phase,
			})
			run.Phase = types.PhaseFailed
			p.log(cb, "lead_supervisor", fmt.Sprintf("pipeline failed: %v", r), "error", nil)
		}
		run.Stats.ProcessingSeconds = round1(p.now().Sub(start).Seconds())
	}()

	if run.Objective == "" {
		run.Phase = types.PhaseFailed
		run.Errors = append(run.Errors, types.PipelineError{
			Message: "empty research objective",
			Phase:   types.PhasePlanning,
		})
		return run
	}

	maxPapers := clamp(req.MaxPapers, defaultMaxPapers, 1, maxPapersLimit)
	lookback := clamp(req.LookbackDays, defaultLookbackDays, 1, lookbackDaysLimit)

	// Planning.
	p.enterPhase(run, cb, types.PhasePlanning)
	p.log(cb, "planner", "creating execution plan for: "+run.Objective, "info", nil)

	plan := p.planner.CreatePlan(ctx, run.Objective, lookback)
	plan.MergeKeywords(req.CustomKeywords)
	if len(req.Categories) > 0 {
		plan.Categories = req.Categories
	}
	plan.StructuredQueries = discovery.BuildQueries(plan.Keywords, run.Objective)
	run.Plan = plan

	run.PhasesCompleted = append(run.PhasesCompleted, string(types.PhasePlanning))
	p.log(cb, "planner", fmt.Sprintf("plan created with %d keywords, %d queries",
		len(plan.Keywords), len(plan.StructuredQueries)), "info", nil)

	// Discovery.
	p.enterPhase(run, cb, types.PhaseDiscovery)
	p.log(cb, "discovery", fmt.Sprintf("searching with %d structured queries", len(plan.StructuredQueries)), "info", nil)

	result := p.discoverer.Discover(ctx, plan, run.Objective, maxPapers)
	run.Discovered = result.Papers
	run.Stats.Discovery = result.Stats
	run.PhasesCompleted = append(run.PhasesCompleted, string(types.PhaseDiscovery))

	if result.Stats.FallbackUsed {
		p.log(cb, "discovery", "low relevance matches, kept top papers by raw score", "warning", nil)
	}
	p.log(cb, "discovery", fmt.Sprintf("discovered %d relevant papers", len(run.Discovered)),
		"info", map[string]any{"papers_found": len(run.Discovered)})

	if len(run.Discovered) == 0 {
		// Nothing to evaluate: short-circuit to completion with a canned
		// report.
		p.log(cb, "lead_supervisor", "no papers discovered, generating summary report", "info", nil)
		run.Report = synthesis.NoResultsReport(run.Objective)
		p.enterPhase(run, cb, types.PhaseCompletion)
		run.PhasesCompleted = append(run.PhasesCompleted, string(types.PhaseCompletion))
		return run
	}

	// Evaluation.
	p.enterPhase(run, cb, types.PhaseEvaluation)

	total := 0.0
	stats := types.EvaluationStats{Total: len(run.Discovered)}
	for i, paper := range run.Discovered {
		p.log(cb, "evaluation", fmt.Sprintf("evaluating paper %d/%d: %s",
			i+1, len(run.Discovered), truncate(paper.Title, 60)), "info", nil)

		ev, err := p.evaluator.Evaluate(ctx, paper)
		if err != nil {
			stats.Failed++
			run.Errors = append(run.Errors, types.PipelineError{
				Message: err.Error(),
				Phase:   types.PhaseEvaluation,
				PaperID: paper.ID,
			})
			p.log(cb, "evaluation", "evaluation failed: "+err.Error(), "error", nil)
			continue
		}

		stats.Success++
		total += ev.Score
		run.Evaluations = append(run.Evaluations, *ev)
		p.log(cb, "evaluation", fmt.Sprintf("paper scored %.1f/100 (%s)",
			ev.Score, ev.Classification), "info", nil)
	}

	run.Stats.Evaluation = stats
	if stats.Success > 0 {
		run.Stats.AverageScore = round1(total / float64(stats.Success))
	}
	run.PhasesCompleted = append(run.PhasesCompleted, string(types.PhaseEvaluation))
	p.log(cb, "evaluation", fmt.Sprintf("evaluation complete: %d/%d papers",
		stats.Success, stats.Total), "info", nil)

	// Synthesis.
	p.enterPhase(run, cb, types.PhaseSynthesis)
	run.Report = synthesis.Report(run.Objective, run.Discovered, run.Evaluations)
	run.PhasesCompleted = append(run.PhasesCompleted, string(types.PhaseSynthesis))

	// Completion.
	p.enterPhase(run, cb, types.PhaseCompletion)
	run.PhasesCompleted = append(run.PhasesCompleted, string(types.PhaseCompletion))
	p.log(cb, "lead_supervisor", "pipeline completed", "info", nil)
	return run
}

// enterPhase transitions the run and fires the callbacks: phase change
// first, then the log hook.
func (p *Pipeline) enterPhase(run *types.PipelineRun, cb Callbacks, phase types.Phase) {
	run.Phase = phase
	if cb.OnPhaseChange != nil {
		cb.OnPhaseChange(string(phase))
	}
	p.log(cb, "lead_supervisor", "phase transition: "+string(phase), "info", nil)
}

// log writes a role-tagged line to the structured logger and mirrors it to
// the caller's log hook.
func (p *Pipeline) log(cb Callbacks, role, message, level string, metadata map[string]any) {
	fields := []zap.Field{zap.String("role", role)}
	for k, v := range metadata {
		fields = append(fields, zap.Any(k, v))
	}
	switch level {
	case "error":
		p.logger.Error(message, fields...)
	case "warning":
		p.logger.Warn(message, fields...)
	default:
		p.logger.Info(message, fields...)
	}
	if cb.OnLog != nil {
		cb.OnLog(role, message, level, metadata)
	}
}

func clamp(v, def, lo, hi int) int {
	if v == 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

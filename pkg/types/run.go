// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Phase is one stage of the pipeline state machine.
type Phase string

const (
	PhasePlanning   Phase = "planning"
	PhaseDiscovery  Phase = "discovery"
	PhaseEvaluation Phase = "evaluation"
	PhaseSynthesis  Phase = "synthesis"
	PhaseCompletion Phase = "completion"
	PhaseFailed     Phase = "failed"
)

// PipelineError records a failure inside one phase. Component failures are
// collected here instead of aborting the run.
type PipelineError struct {
	// Message describes the failure.
	Message string `json:"message" yaml:"message"`

	// Phase names the phase in which the failure occurred.
	Phase Phase `json:"phase" yaml:"phase"`

	// PaperID identifies the affected paper for per-paper failures.
	PaperID string `json:"paper_id,omitempty" yaml:"paper_id,omitempty"`
}

// DiscoveryStats summarizes the discovery phase.
type DiscoveryStats struct {
	// QueriesIssued is the number of structured queries run.
	QueriesIssued int `json:"queries_issued" yaml:"queries_issued"`

	// InitialCount is the raw candidate count before deduplication.
	InitialCount int `json:"initial_count" yaml:"initial_count"`

	// DuplicatesRemoved counts candidates merged away by identity.
	DuplicatesRemoved int `json:"duplicates_removed" yaml:"duplicates_removed"`

	// RelevanceFiltered counts candidates dropped by the relevance filter.
	RelevanceFiltered int `json:"relevance_filtered" yaml:"relevance_filtered"`

	// FallbackUsed marks that the threshold filter kept nothing and the
	// top raw-scored candidates were used instead.
	FallbackUsed bool `json:"fallback_used" yaml:"fallback_used"`

	// SourceErrors counts backend queries that failed.
	SourceErrors int `json:"source_errors" yaml:"source_errors"`
}

// EvaluationStats summarizes the evaluation phase.
type EvaluationStats struct {
	Total   int `json:"total" yaml:"total"`
	Success int `json:"success" yaml:"success"`
	Failed  int `json:"failed" yaml:"failed"`
}

// Statistics aggregates per-phase counters for one run.
type Statistics struct {
	Discovery  DiscoveryStats  `json:"discovery" yaml:"discovery"`
	Evaluation EvaluationStats `json:"evaluation" yaml:"evaluation"`

	// AverageScore is the mean evaluation score across successful evaluations.
	AverageScore float64 `json:"average_score" yaml:"average_score"`

	// ProcessingSeconds is the wall-clock duration of the run.
	ProcessingSeconds float64 `json:"processing_seconds" yaml:"processing_seconds"`
}

// PipelineRun is the aggregate result of one pipeline execution. It is owned
// and mutated exclusively by the orchestrator for the run's lifetime and is
// the sole artifact handed back to the caller.
type PipelineRun struct {
	// ID uniquely identifies the run.
	ID string `json:"id" yaml:"id"`

	// Objective is the caller's research question.
	Objective string `json:"objective" yaml:"objective"`

	// Phase is the state the run terminated in (completion or failed).
	Phase Phase `json:"phase" yaml:"phase"`

	// PhasesCompleted lists phases that ran to completion, in order.
	PhasesCompleted []string `json:"phases_completed" yaml:"phases_completed"`

	// Plan is the execution plan used for discovery.
	Plan *ExecutionPlan `json:"execution_plan,omitempty" yaml:"execution_plan,omitempty"`

	// Discovered holds the papers that survived the relevance filter.
	Discovered []CandidatePaper `json:"discovered_papers" yaml:"discovered_papers"`

	// Evaluations holds one result per successfully evaluated paper.
	Evaluations []EvaluationResult `json:"evaluation_results" yaml:"evaluation_results"`

	// Report is the synthesized human-readable report.
	Report string `json:"final_report" yaml:"final_report"`

	// Stats aggregates per-phase counters.
	Stats Statistics `json:"statistics" yaml:"statistics"`

	// Errors collects component failures recorded during the run. A non-empty
	// list alongside a terminal Phase of "completion" is a degraded success.
	Errors []PipelineError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Failed reports whether the run terminated in the absorbing failed state.
func (r *PipelineRun) Failed() bool {
	return r.Phase == PhaseFailed
}

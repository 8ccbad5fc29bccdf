// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Classification buckets a paper's weighted score.
type Classification string

const (
	ClassificationHigh   Classification = "high"
	ClassificationMedium Classification = "medium"
	ClassificationLow    Classification = "low"
)

// Confidence is the model's self-reported certainty in its evaluation.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ParameterScore is the model's rating of one rubric dimension.
type ParameterScore struct {
	// Score is the raw 1-10 rating.
	Score float64 `json:"score" yaml:"score"`

	// Reasoning is the model's justification for the score.
	Reasoning string `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`

	// Weight is the dimension's share of the final score.
	Weight float64 `json:"weight" yaml:"weight"`
}

// EvaluationResult is the evaluator's output for one paper. Immutable once
// produced.
type EvaluationResult struct {
	// PaperID identifies the evaluated paper.
	PaperID string `json:"paper_id" yaml:"paper_id"`

	// PaperTitle is carried along for report rendering.
	PaperTitle string `json:"paper_title" yaml:"paper_title"`

	// PaperAuthors lists the author names in source order.
	PaperAuthors []string `json:"paper_authors,omitempty" yaml:"paper_authors,omitempty"`

	// PaperURL is the paper's landing page.
	PaperURL string `json:"paper_url,omitempty" yaml:"paper_url,omitempty"`

	// Score is the weighted rubric score on a 0-100 scale, one decimal.
	Score float64 `json:"score" yaml:"score"`

	// Classification buckets Score: >=70 high, >=40 medium, else low.
	Classification Classification `json:"classification" yaml:"classification"`

	// ParameterScores maps rubric dimension name to its rating.
	ParameterScores map[string]ParameterScore `json:"parameter_scores" yaml:"parameter_scores"`

	// Assessment is the model's overall summary of the paper.
	Assessment string `json:"assessment,omitempty" yaml:"assessment,omitempty"`

	// Innovations lists the paper's key contributions.
	Innovations []string `json:"innovations,omitempty" yaml:"innovations,omitempty"`

	// Limitations lists the paper's stated or apparent weaknesses.
	Limitations []string `json:"limitations,omitempty" yaml:"limitations,omitempty"`

	// Confidence is the model's certainty in this evaluation.
	Confidence Confidence `json:"confidence" yaml:"confidence"`
}

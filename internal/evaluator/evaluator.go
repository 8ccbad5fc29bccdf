// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evaluator scores candidate papers against a fixed weighted rubric
// via a language-model call.
package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/hassanmzia/AI-Research-Agent/internal/llm"
	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

// minAbstractLength is the minimum abstract size worth evaluating. Shorter
// abstracts give the model nothing to score.
const minAbstractLength = 50

// ErrInsufficientAbstract designates a paper whose abstract is too short to
// evaluate. No model call is made in that case.
var ErrInsufficientAbstract = errors.New("insufficient abstract content")

// Classification thresholds on the 0-100 weighted score.
const (
	highThreshold   = 70.0
	mediumThreshold = 40.0
)

// Invoker is the model gateway contract the evaluator needs.
type Invoker interface {
	Invoke(ctx context.Context, system, user string) (string, error)
}

// Evaluator scores papers against the rubric.
type Evaluator struct {
	gateway Invoker
	logger  *zap.Logger
}

// New returns an Evaluator, validating the rubric weight table.
func New(gateway Invoker, logger *zap.Logger) (*Evaluator, error) {
	if err := ValidateWeights(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{gateway: gateway, logger: logger}, nil
}

// evalPayload mirrors the JSON object the model is asked for.
type evalPayload struct {
	ParameterScores   map[string]paramPayload `json:"parameter_scores"`
	OverallAssessment string                  `json:"overall_assessment"`
	KeyInnovations    []string                `json:"key_innovations"`
	Limitations       []string                `json:"limitations"`
	ConfidenceLevel   string                  `json:"confidence_level"`
}

type paramPayload struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// Evaluate scores one paper. Expected failures (short abstract, unparsable
// model output, exhausted retries) come back as errors for the orchestrator
// to record; they carry no partial result.
func (e *Evaluator) Evaluate(ctx context.Context, paper types.CandidatePaper) (*types.EvaluationResult, error) {
	if len(paper.Abstract) < minAbstractLength {
		return nil, fmt.Errorf("paper %s: %w", paper.ID, ErrInsufficientAbstract)
	}

	prompt, err := renderPrompt(paper)
	if err != nil {
		return nil, fmt.Errorf("rendering rubric prompt: %w", err)
	}

	raw, err := e.gateway.Invoke(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("evaluating paper %s: %w", paper.ID, err)
	}

	obj, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("paper %s: %w", paper.ID, err)
	}

	var payload evalPayload
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return nil, fmt.Errorf("paper %s: parsing evaluation JSON: %w: %v", paper.ID, llm.ErrMalformedResponse, err)
	}

	scores, finalScore, err := weightedScore(payload.ParameterScores)
	if err != nil {
		return nil, fmt.Errorf("paper %s: %w", paper.ID, err)
	}

	result := &types.EvaluationResult{
		PaperID:         paper.ID,
		PaperTitle:      paper.Title,
		PaperAuthors:    paper.AuthorNames(),
		PaperURL:        paper.SourceURL,
		Score:           finalScore,
		Classification:  classify(finalScore),
		ParameterScores: scores,
		Assessment:      payload.OverallAssessment,
		Innovations:     payload.KeyInnovations,
		Limitations:     payload.Limitations,
		Confidence:      parseConfidence(payload.ConfidenceLevel),
	}

	e.logger.Info("paper evaluated",
		zap.String("paper_id", paper.ID),
		zap.Float64("score", finalScore),
		zap.String("classification", string(result.Classification)))
	return result, nil
}

// weightedScore computes the 0-100 score from the parameters the model
// actually returned: sum(score*weight) / sum(weight used) * 10, one decimal.
// Omitted parameters drop out of both sums instead of counting as zero.
func weightedScore(params map[string]paramPayload) (map[string]types.ParameterScore, float64, error) {
	scores := make(map[string]types.ParameterScore)
	totalWeighted := 0.0
	totalWeight := 0.0

	for _, p := range Parameters {
		payload, ok := params[p.Name]
		if !ok {
			continue
		}
		s := clampScore(payload.Score)
		scores[p.Name] = types.ParameterScore{
			Score:     s,
			Reasoning: payload.Reasoning,
			Weight:    p.Weight,
		}
		totalWeighted += s * p.Weight
		totalWeight += p.Weight
	}

	if totalWeight == 0 {
		return nil, 0, fmt.Errorf("no recognized parameter scores: %w", llm.ErrMalformedResponse)
	}

	final := totalWeighted / totalWeight * 10
	return scores, math.Round(final*10) / 10, nil
}

// clampScore bounds a raw rating to the 1-10 scale.
func clampScore(s float64) float64 {
	if s < 1 {
		return 1
	}
	if s > 10 {
		return 10
	}
	return s
}

func classify(score float64) types.Classification {
	switch {
	case score >= highThreshold:
		return types.ClassificationHigh
	case score >= mediumThreshold:
		return types.ClassificationMedium
	}
	return types.ClassificationLow
}

// parseConfidence tolerates any casing of high/medium/low and defaults to
// medium.
func parseConfidence(s string) types.Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return types.ConfidenceHigh
	case "low":
		return types.ConfidenceLow
	}
	return types.ConfidenceMedium
}

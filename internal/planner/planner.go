// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planner turns a free-text research objective into a structured
// execution plan via a planning model call, with a deterministic mechanical
// fallback so the pipeline can always proceed.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/hassanmzia/AI-Research-Agent/internal/llm"
	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

const systemPrompt = `You are a planning specialist in an academic research analysis system. Create a focused execution plan for the given research objective. Respond only with the requested JSON object.`

// userPromptTmpl embeds the objective and default date window into the
// planning request.
var userPromptTmpl = template.Must(template.New("plan").Parse(`Create a research execution plan for:

RESEARCH OBJECTIVE: {{.Objective}}

Current date: {{.Now}}
Default date range: {{.From}} to {{.To}}

Context:
- Papers are discovered via the arXiv search index.
- Pipeline stages: discovery, evaluation, synthesis.
- Prefer recent, high-impact machine learning work.

OUTPUT FORMAT: a single JSON object:
{
    "search_keywords": ["specific phrase or term", ...],
    "required_terms": ["term that must appear in title or abstract", ...],
    "categories": ["cs.AI", "cs.LG", ...],
    "date_range": "YYYY-MM-DD to YYYY-MM-DD"
}

GUIDELINES:
1. Extract 5-10 highly relevant search keywords, most specific first.
2. Use multi-word phrases where the objective names a concrete technique.
3. List at most 3 required terms, only when the objective is unambiguous.
4. Keep the default date range unless the objective implies another.

Generate the plan now.`))

// planPayload mirrors the JSON object the model is asked for.
type planPayload struct {
	SearchKeywords []string `json:"search_keywords"`
	RequiredTerms  []string `json:"required_terms"`
	Categories     []string `json:"categories"`
	DateRange      string   `json:"date_range"`
}

// Invoker is the model gateway contract the planner needs.
type Invoker interface {
	Invoke(ctx context.Context, system, user string) (string, error)
}

// Planner builds execution plans.
type Planner struct {
	gateway Invoker
	logger  *zap.Logger

	// now is injectable for window tests.
	now func() time.Time
}

// New returns a Planner using the given gateway.
func New(gateway Invoker, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{gateway: gateway, logger: logger, now: time.Now}
}

// CreatePlan asks the planning model for an execution plan. On any failure
// (gateway error, unparsable output) it falls back to a plan derived
// mechanically from the objective, so an error is never returned.
func (p *Planner) CreatePlan(ctx context.Context, objective string, lookbackDays int) *types.ExecutionPlan {
	window := p.defaultWindow(lookbackDays)

	prompt, err := renderPrompt(objective, p.now(), window)
	if err != nil {
		p.logger.Error("rendering planner prompt", zap.Error(err))
		return FallbackPlan(objective, window)
	}

	raw, err := p.gateway.Invoke(ctx, systemPrompt, prompt)
	if err != nil {
		p.logger.Warn("planning model call failed, using fallback plan", zap.Error(err))
		return FallbackPlan(objective, window)
	}

	plan, err := parsePlan(raw, window)
	if err != nil {
		p.logger.Warn("planning response unparsable, using fallback plan", zap.Error(err))
		return FallbackPlan(objective, window)
	}

	p.logger.Info("execution plan created",
		zap.Int("keywords", len(plan.Keywords)),
		zap.Int("required_terms", len(plan.RequiredTerms)))
	return plan
}

func (p *Planner) defaultWindow(lookbackDays int) types.DateWindow {
	end := p.now()
	return types.DateWindow{
		From: end.AddDate(0, 0, -lookbackDays),
		To:   end,
	}
}

func renderPrompt(objective string, now time.Time, window types.DateWindow) (string, error) {
	var buf bytes.Buffer
	err := userPromptTmpl.Execute(&buf, struct {
		Objective, Now, From, To string
	}{
		Objective: objective,
		Now:       now.Format("2006-01-02"),
		From:      window.From.Format("2006-01-02"),
		To:        window.To.Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parsePlan extracts the JSON payload from the model output, tolerant of
// surrounding prose and code fences.
func parsePlan(raw string, window types.DateWindow) (*types.ExecutionPlan, error) {
	obj, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return nil, fmt.Errorf("parsing plan JSON: %w: %v", llm.ErrMalformedResponse, err)
	}

	keywords := cleanTerms(payload.SearchKeywords)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("plan has no usable keywords: %w", llm.ErrMalformedResponse)
	}

	if from, to, ok := parseDateRange(payload.DateRange); ok {
		window = types.DateWindow{From: from, To: to}
	}

	return &types.ExecutionPlan{
		Keywords:      keywords,
		RequiredTerms: cleanTerms(payload.RequiredTerms),
		Categories:    cleanTerms(payload.Categories),
		Window:        window,
	}, nil
}

// parseDateRange splits "YYYY-MM-DD to YYYY-MM-DD".
func parseDateRange(s string) (from, to time.Time, ok bool) {
	parts := strings.Split(s, " to ")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false
	}
	from, err1 := time.Parse("2006-01-02", strings.TrimSpace(parts[0]))
	to, err2 := time.Parse("2006-01-02", strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || to.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// cleanTerms trims entries and drops empties and duplicates, preserving order.
func cleanTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	var out []string
	for _, t := range terms {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// fallbackKeywordLimit bounds the mechanical plan's keyword count.
const fallbackKeywordLimit = 8

// FallbackPlan derives a plan mechanically from the objective: lowercase
// alphanumeric words longer than 3 characters, up to 8 of them, empty
// category set, default window.
func FallbackPlan(objective string, window types.DateWindow) *types.ExecutionPlan {
	var keywords []string
	for _, w := range splitWords(objective) {
		if len(w) <= 3 {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == fallbackKeywordLimit {
			break
		}
	}

	return &types.ExecutionPlan{
		Keywords: keywords,
		Window:   window,
		Fallback: true,
	}
}

// splitWords lowercases the text and splits it into runs of letters and
// digits.
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluator

import (
	"fmt"
	"math"
)

// Parameter is one rubric dimension for scoring a paper's contribution to
// general-intelligence research.
type Parameter struct {
	Name        string
	Label       string
	Weight      float64
	Description string
}

// Parameters is the fixed weighted rubric, most heavily weighted first.
// The weights must sum to 1.0; NewEvaluator checks this.
var Parameters = []Parameter{
	{"novel_problem_solving", "Novel Problem Solving", 0.15, "Ability to solve new problems that were not in training data"},
	{"few_shot_learning", "Few-Shot Learning", 0.15, "Learning new tasks from minimal examples"},
	{"task_transfer", "Task Transfer", 0.15, "Applying learned skills to different domains"},
	{"abstract_reasoning", "Abstract Reasoning", 0.12, "Logical thinking and pattern recognition"},
	{"contextual_adaptation", "Contextual Adaptation", 0.10, "Adapting behavior based on context"},
	{"multi_rule_integration", "Multi-Rule Integration", 0.10, "Following multiple complex rules simultaneously"},
	{"generalization_efficiency", "Generalization Efficiency", 0.08, "Generalizing from small amounts of data"},
	{"meta_learning", "Meta-Learning", 0.08, "Learning how to learn new tasks"},
	{"world_modeling", "World Modeling", 0.04, "Understanding and modeling complex environments"},
	{"autonomous_goal_setting", "Autonomous Goal Setting", 0.03, "Setting and pursuing own objectives"},
}

// weightTolerance allows for float accumulation noise in the sum check.
const weightTolerance = 1e-6

// ValidateWeights confirms the rubric weights sum to 1.0.
func ValidateWeights() error {
	sum := 0.0
	for _, p := range Parameters {
		sum += p.Weight
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("rubric weights sum to %g, want 1.0", sum)
	}
	return nil
}

// weightOf returns the weight for a rubric dimension name.
func weightOf(name string) (float64, bool) {
	for _, p := range Parameters {
		if p.Name == name {
			return p.Weight, true
		}
	}
	return 0, false
}

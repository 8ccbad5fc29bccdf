// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-agent/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LLMConfig holds settings for the language-model gateway.
type LLMConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxAttempts is the total number of attempts for transient failures
	// (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
}

// SearchConfig holds settings for the academic paper source.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`
}

// StoreConfig holds settings for run persistence.
type StoreConfig struct {
	// Path is the SQLite database file (default "runs/research.db").
	Path string `json:"path" yaml:"path"`
}

// PipelineDefaults holds run-parameter defaults applied when the caller
// leaves a knob unset.
type PipelineDefaults struct {
	// MaxPapers is the default candidate cap per run (default 10, bounds 1-50).
	MaxPapers int `json:"max_papers" yaml:"max_papers"`

	// LookbackDays is the default discovery window (default 14, bounds 1-365).
	LookbackDays int `json:"lookback_days" yaml:"lookback_days"`
}

// Config groups all component configurations.
type Config struct {
	LLM      LLMConfig        `json:"llm" yaml:"llm"`
	Search   SearchConfig     `json:"search" yaml:"search"`
	Store    StoreConfig      `json:"store" yaml:"store"`
	Defaults PipelineDefaults `json:"defaults" yaml:"defaults"`
}

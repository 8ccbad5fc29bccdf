// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-agent CLI. The agent
// turns a research objective into a ranked, scored set of papers and a
// synthesized report; subcommands run the pipeline and inspect stored runs.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hassanmzia/AI-Research-Agent/internal/secrets"
	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the research-agent CLI.
var rootCmd = &cobra.Command{
	Use:   "research-agent",
	Short: "Research pipeline: discover, score, and report on academic papers",
	Long: `research-agent runs a multi-stage research pipeline: it plans structured
searches for a free-text objective, discovers candidate papers on arXiv,
filters them for relevance, scores each against a weighted rubric via a
language model, and synthesizes a report.

Completed runs are stored in SQLite; use "runs" to list and inspect them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-agent.yaml or ~/.config/research-agent/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-agent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-agent"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_AGENT")
	viper.AutomaticEnv()

	viper.SetDefault("llm.model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("llm.max_attempts", 3)
	viper.SetDefault("search.timeout", "30s")
	viper.SetDefault("search.user_agent", "research-agent/"+version)
	viper.SetDefault("store.path", "runs/research.db")
	viper.SetDefault("defaults.max_papers", 10)
	viper.SetDefault("defaults.lookback_days", 14)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the viper state into the typed config.
func loadConfig() types.Config {
	return types.Config{
		LLM: types.LLMConfig{
			Model:       viper.GetString("llm.model"),
			APIKey:      viper.GetString("llm.api_key"),
			MaxAttempts: viper.GetInt("llm.max_attempts"),
		},
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
		},
		Store: types.StoreConfig{
			Path: viper.GetString("store.path"),
		},
		Defaults: types.PipelineDefaults{
			MaxPapers:    viper.GetInt("defaults.max_papers"),
			LookbackDays: viper.GetInt("defaults.lookback_days"),
		},
	}
}

// secretValue resolves an API key: explicit config value, then .secrets/
// file, then environment variable.
func secretValue(key, explicit string) string {
	return secrets.Get(loadedSecrets, key, explicit)
}

// newLogger builds the CLI's structured logger: console output on stderr,
// debug level when --verbose is set.
func newLogger() *zap.Logger {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

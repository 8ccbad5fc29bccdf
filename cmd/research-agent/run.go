// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hassanmzia/AI-Research-Agent/internal/discovery"
	"github.com/hassanmzia/AI-Research-Agent/internal/evaluator"
	"github.com/hassanmzia/AI-Research-Agent/internal/llm"
	"github.com/hassanmzia/AI-Research-Agent/internal/pipeline"
	"github.com/hassanmzia/AI-Research-Agent/internal/planner"
	"github.com/hassanmzia/AI-Research-Agent/internal/runstore"
)

var runCmd = &cobra.Command{
	Use:   "run [objective...]",
	Short: "Run the research pipeline for an objective",
	Long: `Run executes the full pipeline for a free-text research objective:
planning, discovery, evaluation, and synthesis. The synthesized report is
printed to stdout and the run is stored for later inspection.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		objective := strings.Join(args, " ")
		cfg := loadConfig()
		logger := newLogger()
		defer logger.Sync()

		maxPapers, _ := cmd.Flags().GetInt("max-papers")
		if maxPapers == 0 {
			maxPapers = cfg.Defaults.MaxPapers
		}
		lookback, _ := cmd.Flags().GetInt("lookback-days")
		if lookback == 0 {
			lookback = cfg.Defaults.LookbackDays
		}
		keywords, _ := cmd.Flags().GetStringSlice("keywords")
		categories, _ := cmd.Flags().GetStringSlice("categories")
		asJSON, _ := cmd.Flags().GetBool("json")
		noStore, _ := cmd.Flags().GetBool("no-store")

		apiKey := secretValue("anthropic-api-key", cfg.LLM.APIKey)
		if apiKey == "" {
			return fmt.Errorf("no Anthropic API key: set llm.api_key, .secrets/anthropic-api-key, or ANTHROPIC_API_KEY")
		}

		gateway := llm.NewGateway(&llm.AnthropicBackend{
			APIKey: apiKey,
			Model:  cfg.LLM.Model,
			Client: &http.Client{Timeout: cfg.Search.Timeout},
		}, logger, cfg.LLM.MaxAttempts)

		source := &discovery.ArxivSource{
			Client: &http.Client{Timeout: cfg.Search.Timeout},
			Config: cfg.Search,
			Logger: logger,
		}

		eval, err := evaluator.New(gateway, logger)
		if err != nil {
			return err
		}

		pipe := pipeline.New(
			planner.New(gateway, logger),
			discovery.New(source, logger),
			eval,
			logger,
		)

		callbacks := pipeline.Callbacks{
			OnPhaseChange: func(phase string) {
				fmt.Fprintf(os.Stderr, "==> %s\n", phase)
			},
		}

		run := pipe.Run(cmd.Context(), pipeline.Request{
			Objective:      objective,
			MaxPapers:      maxPapers,
			LookbackDays:   lookback,
			CustomKeywords: keywords,
			Categories:     categories,
		}, callbacks)

		if !noStore {
			store, err := runstore.NewStore(cfg.Store)
			if err != nil {
				return fmt.Errorf("opening run store: %w", err)
			}
			defer store.Close()
			if err := store.Save(cmd.Context(), run); err != nil {
				return fmt.Errorf("saving run: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Run stored: %s\n", run.ID)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		}

		fmt.Println(run.Report)
		fmt.Fprintf(os.Stderr, "\nPapers: %d discovered, %d evaluated; average score %.1f; %d error(s); %.1fs\n",
			len(run.Discovered), len(run.Evaluations), run.Stats.AverageScore,
			len(run.Errors), run.Stats.ProcessingSeconds)

		if run.Failed() {
			return fmt.Errorf("pipeline terminated in failed state")
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Int("max-papers", 0, "maximum papers to keep after filtering (1-50)")
	runCmd.Flags().Int("lookback-days", 0, "how many days back to search (1-365)")
	runCmd.Flags().StringSlice("keywords", nil, "extra search keywords (comma-separated)")
	runCmd.Flags().StringSlice("categories", nil, "arXiv categories to search (comma-separated, e.g. cs.AI,cs.LG)")
	runCmd.Flags().Bool("json", false, "print the full run as JSON instead of the report")
	runCmd.Flags().Bool("no-store", false, "do not persist the run")

	rootCmd.AddCommand(runCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/hassanmzia/AI-Research-Agent/internal/runstore"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List and inspect stored pipeline runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := runstore.NewStore(loadConfig().Store)
		if err != nil {
			return err
		}
		defer store.Close()

		summaries, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println("No stored runs.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-10s  %-6s  %s\n", "ID", "Created", "Phase", "Papers", "Objective")
		for _, rs := range summaries {
			created := ""
			if !rs.CreatedAt.IsZero() {
				created = rs.CreatedAt.Format("2006-01-02 15:04:05")
			}
			objective := rs.Objective
			if len(objective) > 50 {
				objective = objective[:47] + "..."
			}
			fmt.Printf("%-36s  %-19s  %-10s  %-6d  %s\n", rs.ID, created, rs.Phase, rs.PaperCount, objective)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one stored run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := runstore.NewStore(loadConfig().Store)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		asYAML, _ := cmd.Flags().GetBool("yaml")

		switch {
		case asJSON:
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		case asYAML:
			data, err := yaml.Marshal(run)
			if err != nil {
				return fmt.Errorf("marshaling run: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		}

		fmt.Println(run.Report)
		return nil
	},
}

func init() {
	runsShowCmd.Flags().Bool("json", false, "print the full run as JSON")
	runsShowCmd.Flags().Bool("yaml", false, "print the full run as YAML")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs and checkpoint decisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		store := openStore(cfg)
		defer store.Close()

		runs, err := store.RecentRuns(historyLimit)
		if err != nil {
			return fmt.Errorf("loading runs: %w", err)
		}

		color.New(color.FgCyan, color.Bold).Println("RECENT RUNS")
		if len(runs) == 0 {
			fmt.Println("  (none)")
		}
		for _, run := range runs {
			finished := "in progress"
			if run.FinishedAt != nil {
				finished = run.FinishedAt.Local().Format(time.DateTime)
			}
			fmt.Printf("  %s  %-12s %-28s quality %.1f  %s\n",
				run.ID, run.TeamName, run.Status, run.QualityScore, finished)
			fmt.Printf("          task: %s\n", run.Task)
		}

		decisions, err := store.RecentDecisions(historyLimit)
		if err != nil {
			return fmt.Errorf("loading decisions: %w", err)
		}

		fmt.Println()
		color.New(color.FgCyan, color.Bold).Println("RECENT DECISIONS")
		if len(decisions) == 0 {
			fmt.Println("  (none)")
		}
		for _, d := range decisions {
			line := fmt.Sprintf("  %s  %-20s %-8s %s",
				d.SessionID, d.Stage, d.Kind, d.DecidedAt.Local().Format(time.DateTime))
			if d.Reason != "" {
				line += "  " + d.Reason
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum entries per section")
}

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <task>",
	Short: "Show the dispatch plan for a task without executing it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task := strings.Join(args, " ")

		cfg := mustLoadConfig()
		dispatcher, err := buildDispatcher(cfg)
		if err != nil {
			return err
		}

		plan := dispatcher.Analyze(task)

		if analyzeJSON {
			data, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding plan: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		color.New(color.FgCyan, color.Bold).Println("DISPATCH PLAN")
		fmt.Printf("Task: %s\n\n", task)

		fmt.Println("Selected tools:")
		for _, tool := range plan.Tools {
			fmt.Printf("  - %s\n", tool)
		}
		fmt.Printf("\nComplexity: %s\n", plan.TaskComplexity)
		fmt.Printf("Strategy:   %s\n", plan.ExecutionStrategy)
		fmt.Printf("Location:   %s\n", plan.ExtractedContext.Location)
		fmt.Printf("Task type:  %s\n", plan.ExtractedContext.TaskType)
		if plan.ExtractedContext.HasComparison {
			fmt.Println("Comparison: year-over-year baselines requested")
		}

		order := dispatcher.ExecutionOrder(plan.Tools)
		if len(order) > 1 {
			names := make([]string, len(order))
			for i, tool := range order {
				names[i] = string(tool)
			}
			fmt.Printf("\nExecution order: %s\n", strings.Join(names, " -> "))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw plan as JSON")
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/somind-ai/somind/internal/approval"
	"github.com/somind-ai/somind/internal/config"
	"github.com/somind-ai/somind/internal/llm"
	"github.com/somind-ai/somind/internal/team"

	"github.com/anthropics/anthropic-sdk-go"
)

var runCmd = &cobra.Command{
	Use:   "run <task>",
	Short: "Run one task through a supervised inner-team workflow",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeRun(strings.Join(args, " "))
	},
}

func executeRun(task string) error {
	if task == "" {
		return fmt.Errorf("task is empty")
	}

	cfg := mustLoadConfig()
	dispatcher, err := buildDispatcher(cfg)
	if err != nil {
		return err
	}

	store := openStore(cfg)
	defer store.Close()

	manager := approval.NewManager()
	console := approval.NewConsole(manager, os.Stdin, os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go console.Serve(ctx)

	inner := team.NewInnerTeam("research_team", team.Deps{
		Dispatcher:  dispatcher,
		Approvals:   manager,
		Store:       store,
		Completer:   buildCompleter(cfg),
		Out:         os.Stdout,
		ToolTimeout: cfg.Tools.Timeout,
	})

	result, err := inner.ExecuteTask(ctx, task)
	if err != nil {
		return err
	}

	if result.Report != "" {
		fmt.Println()
		fmt.Println(result.Report)
	}

	printDecisionSummary(manager)

	if result.Succeeded() {
		printStatus("✓", fmt.Sprintf("workflow complete: %s", result.Run.Status), color.FgGreen)
	} else {
		printStatus("⚠", fmt.Sprintf("workflow ended: %s", result.Run.Status), color.FgYellow)
	}
	return nil
}

// buildCompleter returns a model-backed completer when one is enabled,
// or nil so agents fall back to their deterministic templates.
func buildCompleter(cfg *config.Config) llm.Completer {
	if !cfg.Model.Enabled {
		return nil
	}

	client, err := llm.NewClient(llm.ClientConfig{
		Model:         anthropic.Model(cfg.Model.Name),
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Model.UseBedrock,
		AWSRegion:     cfg.Model.AWSRegion,
		AWSProfile:    cfg.Model.AWSProfile,
	})
	if err != nil {
		printStatus("⚠", fmt.Sprintf("model disabled: %v", err), color.FgYellow)
		return nil
	}
	return client
}

func printDecisionSummary(manager *approval.Manager) {
	summary := manager.Summary()
	if summary.Total == 0 {
		return
	}

	fmt.Println()
	color.New(color.FgCyan).Println("DECISION SUMMARY")
	fmt.Printf("Total checkpoints: %d\n", summary.Total)
	for kind, count := range summary.ByKind {
		fmt.Printf("  %s: %d\n", kind, count)
	}
	if summary.Last != nil {
		fmt.Printf("Last: %s at %s (%s)\n",
			summary.Last.Kind, summary.Last.Stage, summary.Last.DecidedAt.Format("15:04:05"))
	}
}

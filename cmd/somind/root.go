package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/somind-ai/somind/internal/config"
	"github.com/somind-ai/somind/internal/dispatch"
	"github.com/somind-ai/somind/internal/state"
)

var rootCmd = &cobra.Command{
	Use:   "somind",
	Short: "Human-supervised multi-agent workflow demo",
	Long: `Somind runs research tasks through supervised agent teams.

A rule-based dispatcher reads each task, selects data tools, synthesizes
their parameters, and recommends an execution strategy. Inner teams run
one task through research, analysis, and validation phases with a human
checkpoint at each; the outer team coordinates several inner teams under
strategic checkpoints.

With no arguments, launches an interactive demo menu.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveMenu()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// runInteractiveMenu is the default entry point: pick a demo, type the
// task(s), and run with the console answering every checkpoint.
func runInteractiveMenu() error {
	color.New(color.FgCyan, color.Bold).Println("SOMIND - Supervised Multi-Agent Workflows")
	fmt.Println()
	fmt.Println("1. Single team workflow (research, analysis, validation)")
	fmt.Println("2. Multi-team project coordination")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Select demo [1-2]: ")
	choice, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading selection: %w", err)
	}

	switch strings.TrimSpace(choice) {
	case "1":
		fmt.Print("Enter the task: ")
		task, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading task: %w", err)
		}
		return executeRun(strings.TrimSpace(task))
	case "2":
		cfg := mustLoadConfig()
		tasks := make([]string, 0, cfg.Teams.MaxInnerTeams)
		for i := 0; i < cfg.Teams.MaxInnerTeams; i++ {
			fmt.Printf("Task %d (empty to stop): ", i+1)
			task, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading task: %w", err)
			}
			task = strings.TrimSpace(task)
			if task == "" {
				break
			}
			tasks = append(tasks, task)
		}
		return executeProject(tasks)
	default:
		return fmt.Errorf("unknown selection %q", strings.TrimSpace(choice))
	}
}

// mustLoadConfig loads configuration, falling back to defaults so the
// demo runs even with a broken config file.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		printStatus("⚠", fmt.Sprintf("config load failed, using defaults: %v", err), color.FgYellow)
		return config.Default()
	}
	return cfg
}

// buildDispatcher creates the dispatcher, applying the configured
// pattern overlay when one is set. A malformed overlay is fatal.
func buildDispatcher(cfg *config.Config) (*dispatch.Dispatcher, error) {
	patterns := dispatch.DefaultPatterns()

	if cfg.Patterns.OverlayPath != "" {
		overlay, err := dispatch.LoadOverlay(cfg.Patterns.OverlayPath)
		if err != nil {
			return nil, fmt.Errorf("loading pattern overlay: %w", err)
		}
		patterns, err = patterns.WithOverlay(overlay)
		if err != nil {
			return nil, fmt.Errorf("applying pattern overlay: %w", err)
		}
	}

	return dispatch.New(patterns, dispatch.WithResultLimit(cfg.Tools.SearchResultLimit)), nil
}

// openStore opens the configured audit store.
func openStore(cfg *config.Config) state.Store {
	path := cfg.State.DBPath
	if path == "" {
		path = state.GlobalDBPath()
	}
	return state.OpenStore(path)
}

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/somind-ai/somind/internal/approval"
	"github.com/somind-ai/somind/internal/team"
)

var projectCmd = &cobra.Command{
	Use:   "project <task>...",
	Short: "Coordinate multiple tasks across inner teams with strategic oversight",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeProject(args)
	},
}

var teamNames = []string{"team_alpha", "team_beta", "team_gamma", "team_delta", "team_epsilon"}

func executeProject(tasks []string) error {
	if len(tasks) == 0 {
		return fmt.Errorf("no tasks given")
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

	teamCount := len(tasks)
	if teamCount > cfg.Teams.MaxInnerTeams {
		printStatus("⚠", fmt.Sprintf("capping at %d teams, extra tasks dropped", cfg.Teams.MaxInnerTeams), color.FgYellow)
		teamCount = cfg.Teams.MaxInnerTeams
	}
	if teamCount > len(teamNames) {
		teamCount = len(teamNames)
	}

	completer := buildCompleter(cfg)
	teams := make([]*team.InnerTeam, 0, teamCount)
	for i := 0; i < teamCount; i++ {
		teams = append(teams, team.NewInnerTeam(teamNames[i], team.Deps{
			Dispatcher:  dispatcher,
			Approvals:   manager,
			Store:       store,
			Completer:   completer,
			Out:         os.Stdout,
			ToolTimeout: cfg.Tools.Timeout,
		}))
	}

	outer := team.NewOuterTeam(teams, manager, os.Stdout)
	result, err := outer.CoordinateProject(ctx, tasks)
	if err != nil {
		return err
	}

	if result.Summary != "" {
		fmt.Println()
		fmt.Println(result.Summary)
	}

	printDecisionSummary(manager)

	if result.Approved {
		printStatus("✓", fmt.Sprintf("project %s: %s", result.ProjectID, result.Status), color.FgGreen)
	} else {
		printStatus("⚠", fmt.Sprintf("project %s: %s", result.ProjectID, result.Status), color.FgYellow)
	}
	return nil
}

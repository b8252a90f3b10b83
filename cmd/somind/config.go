package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/somind-ai/somind/internal/config"
	"github.com/somind-ai/somind/internal/state"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration and where it comes from",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()

		color.New(color.FgCyan, color.Bold).Println("CONFIGURATION")
		fmt.Printf("User config:    %s\n", config.GetUserConfigPath())
		if project := config.GetProjectConfigPath(); project != "" {
			fmt.Printf("Project config: %s\n", project)
		}

		dbPath := cfg.State.DBPath
		if dbPath == "" {
			dbPath = state.GlobalDBPath()
		}
		fmt.Printf("State database: %s\n\n", dbPath)

		apiKey := "(not set)"
		if cfg.Anthropic.APIKey != "" {
			apiKey = "(set)"
		}
		fmt.Printf("anthropic.api_key:         %s\n", apiKey)
		fmt.Printf("model.enabled:             %v\n", cfg.Model.Enabled)
		fmt.Printf("model.name:                %s\n", cfg.Model.Name)
		fmt.Printf("model.use_bedrock:         %v\n", cfg.Model.UseBedrock)
		if cfg.Model.AWSRegion != "" {
			fmt.Printf("model.aws_region:          %s\n", cfg.Model.AWSRegion)
		}
		if cfg.Model.AWSProfile != "" {
			fmt.Printf("model.aws_profile:         %s\n", cfg.Model.AWSProfile)
		}
		fmt.Printf("tools.timeout:             %s\n", cfg.Tools.Timeout)
		fmt.Printf("tools.search_result_limit: %d\n", cfg.Tools.SearchResultLimit)
		fmt.Printf("teams.max_inner_teams:     %d\n", cfg.Teams.MaxInnerTeams)
		if cfg.Patterns.OverlayPath != "" {
			fmt.Printf("patterns.overlay_path:     %s\n", cfg.Patterns.OverlayPath)
		}
		return nil
	},
}

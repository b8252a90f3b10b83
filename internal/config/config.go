// Package config handles configuration loading and management.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for somind.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Model     ModelConfig     `mapstructure:"model"`
	Tools     ToolsConfig     `mapstructure:"tools"`
	Teams     TeamsConfig     `mapstructure:"teams"`
	Patterns  PatternsConfig  `mapstructure:"patterns"`
	State     StateConfig     `mapstructure:"state"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// ModelConfig holds model selection settings.
type ModelConfig struct {
	// Name is the model identifier passed to the SDK.
	Name string `mapstructure:"name"`
	// UseBedrock routes calls through AWS Bedrock instead of the direct API.
	UseBedrock bool `mapstructure:"use_bedrock"`
	// AWSRegion is the Bedrock region (e.g., "us-west-2").
	AWSRegion string `mapstructure:"aws_region"`
	// AWSProfile is the optional AWS profile name.
	AWSProfile string `mapstructure:"aws_profile"`
	// Enabled turns model consultation on; the demo default is off and
	// agents run their deterministic templates.
	Enabled bool `mapstructure:"enabled"`
}

// ToolsConfig holds tool execution settings.
type ToolsConfig struct {
	// Timeout bounds one tool invocation.
	Timeout time.Duration `mapstructure:"timeout"`
	// SearchResultLimit caps web search results when a limit applies.
	SearchResultLimit int `mapstructure:"search_result_limit"`
}

// TeamsConfig holds team sizing settings.
type TeamsConfig struct {
	// MaxInnerTeams bounds how many inner teams a project run coordinates.
	MaxInnerTeams int `mapstructure:"max_inner_teams"`
}

// PatternsConfig holds dispatcher pattern-table settings.
type PatternsConfig struct {
	// OverlayPath points at a YAML overlay extending the built-in
	// category tables. Empty means built-ins only.
	OverlayPath string `mapstructure:"overlay_path"`
}

// StateConfig holds persistence settings.
type StateConfig struct {
	// DBPath overrides the default database location.
	DBPath string `mapstructure:"db_path"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, SOMIND_*)
// 2. Project config (.somind.yaml in current directory or parent)
// 3. User config (~/.config/somind/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("SOMIND")
	v.AutomaticEnv()

	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("model.name", "SOMIND_MODEL")
	v.BindEnv("patterns.overlay_path", "SOMIND_PATTERNS")
	v.BindEnv("state.db_path", "SOMIND_DB")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("model.name", cfg.Model.Name)
	v.Set("model.use_bedrock", cfg.Model.UseBedrock)
	v.Set("model.aws_region", cfg.Model.AWSRegion)
	v.Set("model.aws_profile", cfg.Model.AWSProfile)
	v.Set("model.enabled", cfg.Model.Enabled)
	v.Set("tools.timeout", cfg.Tools.Timeout.String())
	v.Set("tools.search_result_limit", cfg.Tools.SearchResultLimit)
	v.Set("teams.max_inner_teams", cfg.Teams.MaxInnerTeams)
	v.Set("patterns.overlay_path", cfg.Patterns.OverlayPath)
	v.Set("state.db_path", cfg.State.DBPath)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")

	v.SetDefault("model.name", "")
	v.SetDefault("model.use_bedrock", false)
	v.SetDefault("model.aws_region", "")
	v.SetDefault("model.aws_profile", "")
	v.SetDefault("model.enabled", false)

	v.SetDefault("tools.timeout", "30s")
	v.SetDefault("tools.search_result_limit", 10)

	v.SetDefault("teams.max_inner_teams", 3)

	v.SetDefault("patterns.overlay_path", "")
	v.SetDefault("state.db_path", "")
}

// getUserConfigDir returns the XDG config directory for somind.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "somind")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "somind")
	}
	return filepath.Join(home, ".config", "somind")
}

// findProjectConfig searches for .somind.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".somind.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Tools: ToolsConfig{
			Timeout:           30 * time.Second,
			SearchResultLimit: 10,
		},
		Teams: TeamsConfig{
			MaxInnerTeams: 3,
		},
	}
}

package config

import (
	"strings"

	"feedbackbot/internal/agent"
	"feedbackbot/internal/logging"
	"feedbackbot/internal/survey"
)

// Supported values and defaults.
const (
	CurrentVersion = 1

	FormatCSV    = "csv"
	FormatDuckDB = "duckdb"
	FormatSQLite = "sqlite"

	DefaultAgentType      = agent.TypeAzure
	DefaultTimeoutSeconds = 30
	DefaultCSVPath        = "survey_responses.csv"
	DefaultDuckDBPath     = "survey_responses.duckdb"
	DefaultSQLitePath     = "survey_responses.sqlite3"
)

// DefaultOutputPath returns the output file used for format when none is set.
func DefaultOutputPath(format string) string {
	switch format {
	case FormatDuckDB:
		return DefaultDuckDBPath
	case FormatSQLite:
		return DefaultSQLitePath
	default:
		return DefaultCSVPath
	}
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	cfg := Config{Version: CurrentVersion}
	Normalize(&cfg)
	return cfg
}

// Normalize fills unset fields with defaults.
func Normalize(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}

	cfg.Agent.Type = strings.ToLower(strings.TrimSpace(cfg.Agent.Type))
	if cfg.Agent.Type == "" {
		cfg.Agent.Type = DefaultAgentType
	}
	if strings.TrimSpace(cfg.Agent.Model) == "" {
		cfg.Agent.Model = agent.DefaultModel
		if cfg.Agent.Type == agent.TypeOllama {
			cfg.Agent.Model = agent.DefaultOllamaModel
		}
	}
	if strings.TrimSpace(cfg.Agent.APIVersion) == "" {
		cfg.Agent.APIVersion = agent.DefaultAPIVersion
	}
	if cfg.Agent.MaxTokens == 0 {
		cfg.Agent.MaxTokens = agent.DefaultMaxTokens
	}
	if cfg.Agent.Temperature == nil {
		temperature := agent.DefaultTemperature
		cfg.Agent.Temperature = &temperature
	}
	if cfg.Agent.TimeoutSeconds == 0 {
		cfg.Agent.TimeoutSeconds = DefaultTimeoutSeconds
	}

	if cfg.Survey.MaxRetries == 0 {
		cfg.Survey.MaxRetries = survey.DefaultMaxRetries
	}
	if strings.TrimSpace(cfg.Survey.ExitWord) == "" {
		cfg.Survey.ExitWord = survey.DefaultExitWord
	}

	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatCSV
	}
	if strings.TrimSpace(cfg.Output.Path) == "" {
		cfg.Output.Path = DefaultOutputPath(cfg.Output.Format)
	}

	if strings.TrimSpace(cfg.Log.Path) == "" {
		cfg.Log.Path = logging.DefaultPath
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = logging.DefaultMaxSizeMB
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = logging.DefaultMaxBackups
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = logging.DefaultMaxAgeDays
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"feedbackbot/internal/agent"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

// add records a new validation issue.
func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// result returns a ValidationError when issues are present.
func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config. baseDir resolves the questions file.
func Validate(cfg *Config, baseDir string) error {
	collector := &issueCollector{}

	if cfg.Version != CurrentVersion {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	validateAgent(cfg.Agent, collector)
	validateSurvey(cfg.Survey, baseDir, collector)

	switch cfg.Output.Format {
	case FormatCSV, FormatDuckDB, FormatSQLite:
	default:
		collector.add("output.format", fmt.Sprintf("unsupported format %q", cfg.Output.Format))
	}
	if strings.TrimSpace(cfg.Output.Path) == "" {
		collector.add("output.path", "is required")
	}

	if strings.TrimSpace(cfg.Log.Path) == "" {
		collector.add("log.path", "is required")
	}
	if cfg.Log.MaxSizeMB < 0 {
		collector.add("log.max_size_mb", "must be >= 0")
	}
	if cfg.Log.MaxBackups < 0 {
		collector.add("log.max_backups", "must be >= 0")
	}
	if cfg.Log.MaxAgeDays < 0 {
		collector.add("log.max_age_days", "must be >= 0")
	}
	return collector.result()
}

func validateAgent(cfg AgentConfig, collector *issueCollector) {
	switch cfg.Type {
	case agent.TypeOpenAI, agent.TypeAzure, agent.TypeOllama:
	default:
		collector.add("agent.type", fmt.Sprintf("unsupported type %q", cfg.Type))
	}
	if strings.TrimSpace(cfg.Model) == "" {
		collector.add("agent.model", "is required")
	}
	if cfg.MaxTokens < 0 {
		collector.add("agent.max_tokens", "must be > 0")
	}
	if cfg.Temperature != nil && (*cfg.Temperature < 0 || *cfg.Temperature > 2) {
		collector.add("agent.temperature", "must be between 0 and 2")
	}
	if cfg.TimeoutSeconds < 0 {
		collector.add("agent.timeout_seconds", "must be > 0")
	}
}

func validateSurvey(cfg SurveyConfig, baseDir string, collector *issueCollector) {
	if cfg.MaxRetries < 0 {
		collector.add("survey.max_retries", "must be > 0")
	}
	if strings.TrimSpace(cfg.ExitWord) == "" {
		collector.add("survey.exit_word", "is required")
	} else if strings.ContainsAny(strings.TrimSpace(cfg.ExitWord), " \t") {
		collector.add("survey.exit_word", "must be a single word")
	}
	if strings.TrimSpace(cfg.QuestionsFile) == "" {
		return
	}
	path := ResolvePath(baseDir, cfg.QuestionsFile)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			collector.add("survey.questions_file", fmt.Sprintf("file not found: %s", path))
			return
		}
		collector.add("survey.questions_file", fmt.Sprintf("stat %s: %v", path, err))
		return
	}
	if info.IsDir() {
		collector.add("survey.questions_file", fmt.Sprintf("%s is a directory", path))
	}
}

// ResolvePath joins a relative path onto baseDir.
func ResolvePath(baseDir, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if baseDir == "" {
		baseDir = "."
	}
	return filepath.Join(baseDir, path)
}

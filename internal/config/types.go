package config

// Config is the feedbackbot configuration file.
type Config struct {
	Version int          `yaml:"version"`
	Agent   AgentConfig  `yaml:"agent"`
	Survey  SurveyConfig `yaml:"survey"`
	Output  OutputConfig `yaml:"output"`
	Log     LogConfig    `yaml:"log"`
}

// AgentConfig describes the chat-completions endpoint. The credential and
// base URL always come from the environment.
type AgentConfig struct {
	Type           string   `yaml:"type"`
	Model          string   `yaml:"model"`
	APIVersion     string   `yaml:"api_version"`
	MaxTokens      int      `yaml:"max_tokens"`
	Temperature    *float64 `yaml:"temperature"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// SurveyConfig controls the question catalog and retry policy.
type SurveyConfig struct {
	// QuestionsFile is resolved relative to the config file; empty uses the built-in catalog.
	QuestionsFile string `yaml:"questions_file"`
	MaxRetries    int    `yaml:"max_retries"`
	ExitWord      string `yaml:"exit_word"`
}

// OutputConfig selects where completed responses are stored.
type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

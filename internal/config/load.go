package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"feedbackbot/internal/agent"
	"feedbackbot/internal/logging"
	"feedbackbot/internal/question"
)

// Loaded is a validated config together with where it came from.
type Loaded struct {
	Config Config
	// Path is empty when built-in defaults are in use.
	Path string
	// Root resolves relative paths in the config.
	Root string
}

// Parse decodes a single strict YAML document.
func Parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg, RootFromConfigPath(path)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads the config at explicitPath, or searches upward from the
// working directory. Without a config file the defaults apply.
func Resolve(explicitPath string) (Loaded, error) {
	path := strings.TrimSpace(explicitPath)
	if path == "" {
		found, err := FindConfigPath("")
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				return Loaded{Config: Default(), Root: "."}, nil
			}
			return Loaded{}, err
		}
		path = found
	}
	cfg, err := Load(path)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Config: cfg, Path: path, Root: RootFromConfigPath(path)}, nil
}

// Catalog loads the configured question catalog, or the built-in one.
func (l Loaded) Catalog() (question.Catalog, error) {
	if strings.TrimSpace(l.Config.Survey.QuestionsFile) == "" {
		return question.Default(), nil
	}
	return question.LoadCatalog(ResolvePath(l.Root, l.Config.Survey.QuestionsFile))
}

// OutputConfig returns the output settings with the path resolved.
func (l Loaded) OutputConfig() OutputConfig {
	out := l.Config.Output
	out.Path = ResolvePath(l.Root, out.Path)
	return out
}

// LogOptions returns the rotating log settings with the path resolved.
func (l Loaded) LogOptions() logging.Options {
	return logging.Options{
		Path:       ResolvePath(l.Root, l.Config.Log.Path),
		MaxSizeMB:  l.Config.Log.MaxSizeMB,
		MaxBackups: l.Config.Log.MaxBackups,
		MaxAgeDays: l.Config.Log.MaxAgeDays,
	}
}

// AgentSettings converts the agent section into client settings. The
// credential and endpoint are left for the environment.
func (c Config) AgentSettings() agent.Settings {
	settings := agent.Settings{
		Type:       c.Agent.Type,
		Model:      c.Agent.Model,
		APIVersion: c.Agent.APIVersion,
		MaxTokens:  c.Agent.MaxTokens,
	}
	if c.Agent.Temperature != nil {
		temperature := *c.Agent.Temperature
		settings.Temperature = &temperature
	}
	return settings
}

// ClarifyTimeout returns the per-call clarifier timeout.
func (c Config) ClarifyTimeout() time.Duration {
	if c.Agent.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.Agent.TimeoutSeconds) * time.Second
}

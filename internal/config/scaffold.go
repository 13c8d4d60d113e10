package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"feedbackbot/internal/question"
)

const defaultConfig = `version: 1
agent:
  # azure, openai or ollama
  type: azure
  model: "gpt-4"
  api_version: "2023-05-15"
  max_tokens: 150
  temperature: 0.7
  timeout_seconds: 30

survey:
  questions_file: ".feedbackbot/questions.yml"
  max_retries: 3
  exit_word: "exit"

output:
  # csv, duckdb or sqlite
  format: csv
  path: "survey_responses.csv"

log:
  path: "chatbot.log"
  max_size_mb: 10
  max_backups: 3
  max_age_days: 28
`

// Scaffold writes a default config at configPath and the built-in catalog
// next to it. Existing files are never overwritten.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	questionsPath := filepath.Join(filepath.Dir(configPath), QuestionsFileName)
	for _, path := range []string{configPath, questionsPath} {
		if err := ensureAbsent(path); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	catalog, err := question.MarshalYAML(question.Default())
	if err != nil {
		return fmt.Errorf("render questions file: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(scaffoldConfig(configPath)), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(questionsPath, catalog, 0o644); err != nil {
		return fmt.Errorf("write questions file: %w", err)
	}
	return nil
}

// scaffoldConfig points questions_file at the scaffolded catalog.
func scaffoldConfig(configPath string) string {
	if filepath.Base(filepath.Dir(configPath)) == ConfigDirName {
		return defaultConfig
	}
	return replaceQuestionsFile(defaultConfig, QuestionsFileName)
}

func replaceQuestionsFile(text, path string) string {
	const current = `questions_file: ".feedbackbot/questions.yml"`
	return strings.Replace(text, current, fmt.Sprintf("questions_file: %q", path), 1)
}

func ensureAbsent(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("path %q is a directory", path)
		}
		return fmt.Errorf("file already exists at %q", path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}

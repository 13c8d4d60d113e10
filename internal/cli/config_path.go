package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"feedbackbot/internal/config"
)

// resolveConfigPath makes an explicit config path absolute. An empty path
// stays empty so config.Resolve can search for one.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return "", nil
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig resolves and loads the config, falling back to defaults when
// no file exists.
func loadConfig(configPath string) (config.Loaded, error) {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return config.Loaded{}, err
	}
	return config.Resolve(path)
}

package agent

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Environment variables read by SettingsFromEnv.
const (
	EnvAPIKey     = "OPENAI_API_KEY"
	EnvAPIBase    = "OPENAI_API_BASE"
	EnvAPIType    = "OPENAI_API_TYPE"
	EnvAPIVersion = "OPENAI_API_VERSION"
	EnvModel      = "OPENAI_MODEL"
)

// Completer answers a conversation with one reply. Client and
// OllamaClient implement it.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// MissingEnvError reports required environment variables that are unset.
type MissingEnvError struct {
	Names []string
}

// Error lists the missing variables.
func (err *MissingEnvError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(err.Names, ", "))
}

// SettingsFromEnv overlays the environment on top of base. The credential
// and endpoint must come from the environment.
func SettingsFromEnv(base Settings) (Settings, error) {
	settings := base
	settings.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	settings.BaseURL = strings.TrimSpace(os.Getenv(EnvAPIBase))

	var missing []string
	if settings.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if settings.BaseURL == "" {
		missing = append(missing, EnvAPIBase)
	}
	if len(missing) > 0 {
		return Settings{}, &MissingEnvError{Names: missing}
	}

	if value := strings.TrimSpace(os.Getenv(EnvAPIType)); value != "" {
		settings.Type = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvAPIVersion)); value != "" {
		settings.APIVersion = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvModel)); value != "" {
		settings.Model = value
	}
	return settings, nil
}

// ClientFromEnv builds a client from base settings and the environment.
// OPENAI_API_TYPE may switch the provider. Ollama needs no credential; its
// address comes from OLLAMA_HOST. When the environment switches a chat
// config to Ollama the configured model is dropped for DefaultOllamaModel
// unless OPENAI_MODEL names one.
func ClientFromEnv(base Settings, client HTTPDoer) (Completer, error) {
	if providerType(base) == TypeOllama {
		settings := base
		settings.BaseURL = ""
		if !strings.EqualFold(strings.TrimSpace(base.Type), TypeOllama) {
			settings.Type = TypeOllama
			settings.Model = DefaultOllamaModel
		}
		if value := strings.TrimSpace(os.Getenv(EnvModel)); value != "" {
			settings.Model = value
		}
		ollamaClient, err := NewOllamaClient(settings, nil)
		if err != nil {
			return nil, err
		}
		return ollamaClient, nil
	}
	settings, err := SettingsFromEnv(base)
	if err != nil {
		return nil, err
	}
	chatClient, err := NewClient(settings, client)
	if err != nil {
		return nil, err
	}
	return chatClient, nil
}

// providerType resolves the provider, letting the environment override base.
func providerType(base Settings) string {
	if value := strings.TrimSpace(os.Getenv(EnvAPIType)); value != "" {
		return strings.ToLower(value)
	}
	return strings.ToLower(strings.TrimSpace(base.Type))
}

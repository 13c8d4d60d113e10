package agent

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"
)

// TypeOllama selects a local Ollama server instead of a chat-completions
// endpoint. The server address comes from OLLAMA_HOST.
const TypeOllama = "ollama"

// DefaultOllamaModel is used when no model is configured for Ollama.
const DefaultOllamaModel = "llama3.2"

// OllamaClient asks a local Ollama server for clarifications.
type OllamaClient struct {
	settings Settings
	client   *ollama.Client
}

// NewOllamaClient builds a client for settings. An empty BaseURL defers to
// OLLAMA_HOST and then to the Ollama default address.
func NewOllamaClient(settings Settings, httpClient *http.Client) (*OllamaClient, error) {
	settings.Type = TypeOllama
	if strings.TrimSpace(settings.Model) == "" {
		settings.Model = DefaultOllamaModel
	}
	if settings.MaxTokens <= 0 {
		settings.MaxTokens = DefaultMaxTokens
	}
	if settings.Temperature == nil {
		temperature := DefaultTemperature
		settings.Temperature = &temperature
	}

	var client *ollama.Client
	if base := strings.TrimSpace(settings.BaseURL); base != "" {
		parsed, err := url.Parse(strings.TrimRight(base, "/"))
		if err != nil {
			return nil, fmt.Errorf("parse ollama host: %w", err)
		}
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		client = ollama.NewClient(parsed, httpClient)
	} else {
		fromEnv, err := ollama.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		client = fromEnv
	}
	return &OllamaClient{settings: settings, client: client}, nil
}

// Settings returns the resolved client settings.
func (c *OllamaClient) Settings() Settings {
	return c.settings
}

// Complete sends the conversation without streaming and returns the
// reply, trimmed.
func (c *OllamaClient) Complete(ctx context.Context, messages []Message) (string, error) {
	converted := make([]ollama.Message, len(messages))
	for i, message := range messages {
		converted[i] = ollama.Message{Role: message.Role, Content: message.Content}
	}
	stream := false
	req := &ollama.ChatRequest{
		Model:    c.settings.Model,
		Messages: converted,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": *c.settings.Temperature,
			"num_predict": c.settings.MaxTokens,
		},
	}

	var reply strings.Builder
	err := c.client.Chat(ctx, req, func(resp ollama.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	text := strings.TrimSpace(reply.String())
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

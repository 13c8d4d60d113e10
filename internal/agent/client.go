package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Provider types supported by Client.
const (
	TypeOpenAI = "openai"
	TypeAzure  = "azure"
)

// Defaults applied by NewClient when a setting is left empty.
const (
	DefaultModel       = "gpt-4"
	DefaultAPIVersion  = "2023-05-15"
	DefaultMaxTokens   = 150
	DefaultTemperature = 0.7
)

// ErrEmptyReply indicates the endpoint returned no choices or blank content.
var ErrEmptyReply = errors.New("empty reply from chat completions")

// HTTPDoer abstracts HTTP clients used by the chat client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Settings configures a chat-completions client. It is built once at
// startup and passed to NewClient.
type Settings struct {
	Type        string
	BaseURL     string
	APIKey      string
	Model       string
	APIVersion  string
	MaxTokens   int
	Temperature *float64
}

// Client calls an OpenAI-compatible or Azure OpenAI chat-completions endpoint.
type Client struct {
	settings Settings
	client   HTTPDoer
}

// NewClient constructs a client with explicit settings.
func NewClient(settings Settings, client HTTPDoer) (*Client, error) {
	settings.Type = strings.ToLower(strings.TrimSpace(settings.Type))
	if settings.Type == "" {
		settings.Type = TypeOpenAI
	}
	if settings.Type != TypeOpenAI && settings.Type != TypeAzure {
		return nil, fmt.Errorf("unsupported api type %q", settings.Type)
	}
	if strings.TrimSpace(settings.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(settings.BaseURL) == "" {
		return nil, fmt.Errorf("base url is required")
	}
	settings.BaseURL = strings.TrimRight(strings.TrimSpace(settings.BaseURL), "/")
	if strings.TrimSpace(settings.Model) == "" {
		settings.Model = DefaultModel
	}
	if settings.Type == TypeAzure && strings.TrimSpace(settings.APIVersion) == "" {
		settings.APIVersion = DefaultAPIVersion
	}
	if settings.MaxTokens <= 0 {
		settings.MaxTokens = DefaultMaxTokens
	}
	if settings.Temperature == nil {
		temperature := DefaultTemperature
		settings.Temperature = &temperature
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{settings: settings, client: client}, nil
}

// Settings returns the resolved client settings.
func (c *Client) Settings() Settings {
	return c.settings
}

// Complete sends the conversation and returns the first reply, trimmed.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	body := chatRequest{
		Messages:    messages,
		MaxTokens:   c.settings.MaxTokens,
		Temperature: *c.settings.Temperature,
		N:           1,
	}
	if c.settings.Type == TypeOpenAI {
		body.Model = c.settings.Model
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.settings.Type == TypeAzure {
		req.Header.Set("api-key", c.settings.APIKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.settings.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat completions error (%d): %s", resp.StatusCode, errorMessage(data))
	}

	var decoded chatResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", ErrEmptyReply
	}
	reply := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// endpoint builds the request URL for the configured provider type.
func (c *Client) endpoint() string {
	if c.settings.Type == TypeAzure {
		query := url.Values{}
		query.Set("api-version", c.settings.APIVersion)
		return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?%s",
			c.settings.BaseURL, url.PathEscape(c.settings.Model), query.Encode())
	}
	return c.settings.BaseURL + "/chat/completions"
}

// errorMessage extracts a readable message from an error body.
func errorMessage(data []byte) string {
	var envelope chatErrorResponse
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(data))
}

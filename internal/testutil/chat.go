package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// ChatMessage is one message of a recorded chat-completions request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the decoded body of a chat-completions request.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatServer fakes an OpenAI-compatible chat-completions endpoint at
// URL + "/chat/completions". It answers every request with Reply.
type ChatServer struct {
	URL string
	Key string

	mu       sync.Mutex
	reply    string
	requests []ChatRequest
}

// NewChatServer starts a fake endpoint that expects the bearer key.
func NewChatServer(t testing.TB, key, reply string) *ChatServer {
	t.Helper()
	chat := &ChatServer{Key: key, reply: reply}
	server := httptest.NewServer(http.HandlerFunc(chat.handle))
	t.Cleanup(server.Close)
	chat.URL = server.URL
	return chat
}

// SetReply changes the reply for later requests.
func (c *ChatServer) SetReply(reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reply = reply
}

// Requests returns the requests received so far.
func (c *ChatServer) Requests() []ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ChatRequest(nil), c.requests...)
}

// Calls returns the number of requests received.
func (c *ChatServer) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func (c *ChatServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/chat/completions") {
		http.NotFound(w, r)
		return
	}
	if got := r.Header.Get("Authorization"); got != "Bearer "+c.Key {
		writeChatError(w, http.StatusUnauthorized, "invalid api key")
		return
	}
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeChatError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	c.mu.Lock()
	c.requests = append(c.requests, req)
	reply := c.reply
	c.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{{
			"message":       ChatMessage{Role: "assistant", Content: reply},
			"finish_reason": "stop",
		}},
	})
}

func writeChatError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": message}})
}

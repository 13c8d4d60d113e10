package agent

// Chat roles understood by chat-completions endpoints.
const (
	RoleSystem    = "system"
	RoleAssistant = "assistant"
	RoleUser      = "user"
)

// Message is one entry of a conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the JSON payload sent to the chat-completions endpoint.
type chatRequest struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
	N           int       `json:"n"`
}

// chatResponse is the subset of the chat-completions reply we read.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// chatChoice holds one generated reply.
type chatChoice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// chatErrorResponse is the error envelope returned on non-2xx replies.
type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

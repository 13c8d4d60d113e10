package survey

import (
	"context"
	"errors"
	"time"

	"feedbackbot/internal/agent"
)

// Fixed bot messages.
const (
	FallbackMessage        = "I'm sorry, I encountered an error processing your request."
	AcknowledgementMessage = "Thank you for your response!"
	MoveOnMessage          = "Let's move on to the next question."
	WelcomeMessage         = "Welcome to the Feedback Bot! Type 'exit' to quit."
	ClosingMessage         = "Thank you for completing the survey. Have a great day!"
	GoodbyeMessage         = "Goodbye!"
)

// Driver defaults.
const (
	DefaultMaxRetries     = 3
	DefaultClarifyTimeout = 30 * time.Second
	DefaultExitWord       = "exit"
)

var (
	// ErrDone is returned when the driver has walked the whole catalog.
	ErrDone = errors.New("survey is complete")
	// ErrNotAwaiting is returned when an answer arrives before a question was presented.
	ErrNotAwaiting = errors.New("no question is awaiting an answer")
)

// State is the driver's position in the question lifecycle.
type State int

const (
	// Presenting means the cursor points at a question that has not been shown yet.
	Presenting State = iota
	// AwaitingValidAnswer means the current question was shown and needs an answer.
	AwaitingValidAnswer
	// Done means every question has been visited.
	Done
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Presenting:
		return "presenting"
	case AwaitingValidAnswer:
		return "awaiting_valid_answer"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// OutcomeKind classifies what happened to a submitted answer.
type OutcomeKind int

const (
	// Accepted means the answer was valid and recorded.
	Accepted OutcomeKind = iota
	// Clarify means the answer was invalid and a restatement was produced.
	Clarify
	// Skipped means the answer was invalid and retries were exhausted.
	Skipped
)

// String returns the outcome name.
func (k OutcomeKind) String() string {
	switch k {
	case Accepted:
		return "accepted"
	case Clarify:
		return "clarify"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Prompt is a rendered question ready to show to the respondent.
type Prompt struct {
	QuestionID int
	Index      int
	Total      int
	Text       string
}

// Outcome describes the result of one submitted answer.
type Outcome struct {
	Kind       OutcomeKind
	QuestionID int
	// Value is the sanitized answer that was evaluated.
	Value string
	// Message is the bot reply to show: acknowledgement, clarification or move-on notice.
	Message string
	// Attempt is the number of invalid answers given to this question so far.
	Attempt int
	// Done reports whether the driver finished the catalog with this answer.
	Done bool
}

// Answer pairs a question with its recorded value. Value is empty when the
// question was skipped.
type Answer struct {
	QuestionID int    `json:"question_id"`
	Question   string `json:"question"`
	Value      string `json:"value"`
}

// Response is a completed survey handed to persistence.
type Response struct {
	ID          string
	SubmittedAt time.Time
	Respondent  string
	Answers     []Answer
}

// Clarifier produces a clarifying restatement from the exchange history.
type Clarifier interface {
	Complete(ctx context.Context, messages []agent.Message) (string, error)
}

// Saver persists completed responses.
type Saver interface {
	Save(ctx context.Context, response Response) error
}

// Logger receives driver and session activity.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

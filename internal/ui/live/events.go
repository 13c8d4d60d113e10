package live

import "feedbackbot/internal/survey"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventStart signals the session start.
	EventStart EventKind = iota
	// EventPrompt delivers the next question.
	EventPrompt
	// EventAnswer echoes what the respondent typed.
	EventAnswer
	// EventOutcome delivers the driver's reaction to an answer.
	EventOutcome
	// EventSaved signals the response was persisted.
	EventSaved
	// EventSaveFailed signals persistence failed.
	EventSaveFailed
	// EventExit signals the respondent left early.
	EventExit
)

// Event carries a UI update payload.
type Event struct {
	Kind     EventKind
	Prompt   survey.Prompt
	Text     string
	Outcome  survey.Outcome
	Location string
	Err      error
}

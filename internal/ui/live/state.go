package live

// Speaker identifies who wrote a transcript entry.
type Speaker int

const (
	// SpeakerBot marks bot messages.
	SpeakerBot Speaker = iota
	// SpeakerUser marks respondent answers.
	SpeakerUser
	// SpeakerNotice marks status lines such as save results.
	SpeakerNotice
)

// Entry is one transcript line.
type Entry struct {
	Speaker Speaker
	Text    string
}

// Phase is where the session stands from the UI's point of view.
type Phase int

const (
	// PhaseWaiting blocks input until the session starts and while an
	// answer or save is in flight.
	PhaseWaiting Phase = iota
	// PhaseAnswering accepts input.
	PhaseAnswering
	// PhaseFinished means the survey ended and only quitting remains.
	PhaseFinished
	// PhaseExited means the respondent left before the end.
	PhaseExited
)

// State captures the live UI state for one survey session.
type State struct {
	Entries []Entry
	Phase   Phase
	// Index is the 0-based position of the current question.
	Index int
	Total int
	// Attempt counts invalid answers to the current question.
	Attempt   int
	Answered  int
	Skipped   int
	LastEvent string
}

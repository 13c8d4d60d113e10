package live

import (
	"fmt"

	"feedbackbot/internal/survey"
)

// Reduce applies a UI event to the session state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventStart:
		state.Entries = append(state.Entries, Entry{Speaker: SpeakerBot, Text: survey.WelcomeMessage})
		state.Phase = PhaseWaiting
	case EventPrompt:
		if state.Index != event.Prompt.Index {
			state.Attempt = 0
		}
		state.Index = event.Prompt.Index
		state.Total = event.Prompt.Total
		state.Entries = append(state.Entries, Entry{Speaker: SpeakerBot, Text: event.Prompt.Text})
		state.Phase = PhaseAnswering
		state.LastEvent = fmt.Sprintf("Question %d of %d", event.Prompt.Index+1, event.Prompt.Total)
	case EventAnswer:
		state.Entries = append(state.Entries, Entry{Speaker: SpeakerUser, Text: event.Text})
		state.Phase = PhaseWaiting
		state.LastEvent = "Checking answer..."
	case EventOutcome:
		state = applyOutcome(state, event.Outcome)
	case EventSaved:
		text := "Responses saved."
		if event.Location != "" {
			text = fmt.Sprintf("Responses saved to %s.", event.Location)
		}
		state.Entries = append(state.Entries, Entry{Speaker: SpeakerNotice, Text: text})
		state.Phase = PhaseFinished
		state.LastEvent = "Press Enter or Esc to close."
	case EventSaveFailed:
		state.Entries = append(state.Entries, Entry{Speaker: SpeakerNotice, Text: fmt.Sprintf("Error saving responses: %v", event.Err)})
		state.Phase = PhaseFinished
		state.LastEvent = "Press Enter or Esc to close."
	case EventExit:
		state.Entries = append(state.Entries, Entry{Speaker: SpeakerBot, Text: survey.GoodbyeMessage})
		state.Phase = PhaseExited
		state.LastEvent = "Survey terminated."
	}
	return state
}

// applyOutcome records the driver's reaction to an answer.
func applyOutcome(state State, outcome survey.Outcome) State {
	state.Entries = append(state.Entries, Entry{Speaker: SpeakerBot, Text: outcome.Message})
	switch outcome.Kind {
	case survey.Accepted:
		state.Answered++
		state.Attempt = 0
	case survey.Skipped:
		state.Skipped++
		state.Attempt = 0
	case survey.Clarify:
		state.Attempt = outcome.Attempt
		state.Phase = PhaseAnswering
		state.LastEvent = fmt.Sprintf("Q%d needs another answer (attempt %d)", state.Index+1, outcome.Attempt)
		return state
	}
	if outcome.Done {
		state.Entries = append(state.Entries, Entry{Speaker: SpeakerBot, Text: survey.ClosingMessage})
		state.Index = state.Total
		state.LastEvent = "Saving responses..."
	}
	state.Phase = PhaseWaiting
	return state
}

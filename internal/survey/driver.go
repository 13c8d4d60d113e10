package survey

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"feedbackbot/internal/agent"
	"feedbackbot/internal/question"
)

// Driver walks a catalog one question at a time, validating answers and
// asking the clarifier for help when an answer does not fit.
//
// A Driver has exactly one logical caller; it is not safe for concurrent use.
type Driver struct {
	catalog        question.Catalog
	clarifier      Clarifier
	logger         Logger
	maxRetries     int
	clarifyTimeout time.Duration

	state   State
	cursor  int
	retries int
	ledger  map[int]string
	history []agent.Message
}

// Option customizes a Driver.
type Option func(*Driver)

// WithMaxRetries sets how many clarifications a question gets before the
// next invalid answer skips it.
func WithMaxRetries(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.maxRetries = n
		}
	}
}

// WithLogger sets the activity logger.
func WithLogger(logger Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithSystemPrompt seeds the exchange history with system instructions.
func WithSystemPrompt(text string) Option {
	return func(d *Driver) {
		if strings.TrimSpace(text) != "" {
			d.history = append(d.history, agent.Message{Role: agent.RoleSystem, Content: text})
		}
	}
}

// WithClarifyTimeout bounds each clarifier call.
func WithClarifyTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		if timeout > 0 {
			d.clarifyTimeout = timeout
		}
	}
}

// NewDriver builds a driver positioned at the first question. A nil
// clarifier always yields FallbackMessage.
func NewDriver(catalog question.Catalog, clarifier Clarifier, opts ...Option) *Driver {
	d := &Driver{
		catalog:        catalog,
		clarifier:      clarifier,
		logger:         nopLogger{},
		maxRetries:     DefaultMaxRetries,
		clarifyTimeout: DefaultClarifyTimeout,
		ledger:         map[int]string{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if catalog.Len() == 0 {
		d.state = Done
	}
	return d
}

// State reports the current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Cursor reports the 0-based index of the current question.
func (d *Driver) Cursor() int {
	return d.cursor
}

// Retries reports the clarifications given for the current question.
func (d *Driver) Retries() int {
	return d.retries
}

// Current returns the question under the cursor.
func (d *Driver) Current() (question.Question, bool) {
	if d.state == Done {
		return question.Question{}, false
	}
	return d.catalog.At(d.cursor)
}

// Present renders the current question and starts waiting for its answer.
// Presenting again before an answer arrives returns the same prompt.
func (d *Driver) Present() (Prompt, error) {
	q, ok := d.Current()
	if !ok {
		return Prompt{}, ErrDone
	}
	prompt := Prompt{
		QuestionID: q.ID,
		Index:      d.cursor,
		Total:      d.catalog.Len(),
		Text:       question.Render(q),
	}
	if d.state == Presenting {
		d.history = append(d.history, agent.Message{Role: agent.RoleAssistant, Content: prompt.Text})
		d.state = AwaitingValidAnswer
		d.logger.Infof("Asking Question ID %d: %s", q.ID, prompt.Text)
	}
	return prompt, nil
}

// Submit evaluates a raw answer for the presented question. The answer is
// trimmed and sanitized before validation, and the sanitized value is what
// gets recorded.
func (d *Driver) Submit(ctx context.Context, raw string) (Outcome, error) {
	switch d.state {
	case Done:
		return Outcome{}, ErrDone
	case Presenting:
		return Outcome{}, ErrNotAwaiting
	}
	q, _ := d.catalog.At(d.cursor)
	value := question.Sanitize(strings.TrimSpace(raw))
	d.history = append(d.history, agent.Message{Role: agent.RoleUser, Content: value})

	if question.Validate(q, value) {
		d.ledger[q.ID] = value
		d.history = append(d.history, agent.Message{Role: agent.RoleAssistant, Content: AcknowledgementMessage})
		d.logger.Infof("Recorded Answer for Question ID %d: %s", q.ID, value)
		d.advance()
		return Outcome{
			Kind:       Accepted,
			QuestionID: q.ID,
			Value:      value,
			Message:    AcknowledgementMessage,
			Done:       d.state == Done,
		}, nil
	}

	if d.retries >= d.maxRetries {
		attempt := d.retries + 1
		d.logger.Infof("Max retries reached for Question ID %d. Moving to next question.", q.ID)
		d.advance()
		return Outcome{
			Kind:       Skipped,
			QuestionID: q.ID,
			Value:      value,
			Message:    MoveOnMessage,
			Attempt:    attempt,
			Done:       d.state == Done,
		}, nil
	}

	d.retries++
	attempt := d.retries
	return Outcome{
		Kind:       Clarify,
		QuestionID: q.ID,
		Value:      value,
		Message:    d.clarify(ctx, q.ID),
		Attempt:    attempt,
	}, nil
}

// clarify asks the clarifier for a restatement, falling back to a fixed
// message on any failure.
func (d *Driver) clarify(ctx context.Context, questionID int) string {
	if d.clarifier == nil {
		return FallbackMessage
	}
	callCtx, cancel := context.WithTimeout(ctx, d.clarifyTimeout)
	defer cancel()
	reply, err := d.clarifier.Complete(callCtx, d.History())
	if err != nil {
		d.logger.Errorf("Error generating assistant response for Question ID %d: %v", questionID, err)
		return FallbackMessage
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		d.logger.Warnf("Empty assistant response for Question ID %d", questionID)
		return FallbackMessage
	}
	d.history = append(d.history, agent.Message{Role: agent.RoleAssistant, Content: reply})
	d.logger.Infof("Assistant Response: %s", reply)
	return reply
}

func (d *Driver) advance() {
	d.cursor++
	d.retries = 0
	if d.cursor >= d.catalog.Len() {
		d.state = Done
		return
	}
	d.state = Presenting
}

// Ledger returns a copy of the recorded answers keyed by question id.
func (d *Driver) Ledger() map[int]string {
	out := make(map[int]string, len(d.ledger))
	for id, value := range d.ledger {
		out[id] = value
	}
	return out
}

// History returns a copy of the exchange history.
func (d *Driver) History() []agent.Message {
	out := make([]agent.Message, len(d.history))
	copy(out, d.history)
	return out
}

// Answers lists every catalog question in order with its recorded value,
// using an empty value for questions without one.
func (d *Driver) Answers() []Answer {
	questions := d.catalog.Questions()
	answers := make([]Answer, 0, len(questions))
	for _, q := range questions {
		answers = append(answers, Answer{QuestionID: q.ID, Question: q.Text, Value: d.ledger[q.ID]})
	}
	return answers
}

// AnswerMap maps question text to recorded value for every catalog question.
func (d *Driver) AnswerMap() map[string]string {
	out := make(map[string]string, d.catalog.Len())
	for _, answer := range d.Answers() {
		out[answer.Question] = answer.Value
	}
	return out
}

// Response packages the answers for persistence.
func (d *Driver) Response(respondent string, submittedAt time.Time) Response {
	return Response{
		ID:          uuid.NewString(),
		SubmittedAt: submittedAt,
		Respondent:  strings.TrimSpace(respondent),
		Answers:     d.Answers(),
	}
}

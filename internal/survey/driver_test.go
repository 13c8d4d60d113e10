package survey

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedbackbot/internal/agent"
	"feedbackbot/internal/question"
)

// fakeClarifier records calls and replies with a fixed message or error.
type fakeClarifier struct {
	reply string
	err   error
	calls [][]agent.Message
}

func (f *fakeClarifier) Complete(_ context.Context, messages []agent.Message) (string, error) {
	f.calls = append(f.calls, messages)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// blockingClarifier waits for the context to expire.
type blockingClarifier struct{}

func (blockingClarifier) Complete(ctx context.Context, _ []agent.Message) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// validAnswers answers every default catalog question validly, in order.
var validAnswers = []string{
	"B", "5", "c", "=SUM(A1)", "fine", "Good", "7", "d", "yes",
	"More examples", "4", "3", "n", "Just right", "2",
}

func mustPresent(t *testing.T, d *Driver) Prompt {
	t.Helper()
	prompt, err := d.Present()
	if err != nil {
		t.Fatalf("present: %v", err)
	}
	return prompt
}

func mustSubmit(t *testing.T, d *Driver, answer string) Outcome {
	t.Helper()
	outcome, err := d.Submit(context.Background(), answer)
	if err != nil {
		t.Fatalf("submit %q: %v", answer, err)
	}
	return outcome
}

// TestDriverAnswersEveryQuestion verifies a fully valid run records each sanitized answer.
func TestDriverAnswersEveryQuestion(t *testing.T) {
	catalog := question.Default()
	d := NewDriver(catalog, &fakeClarifier{reply: "unused"})
	for i, answer := range validAnswers {
		prompt := mustPresent(t, d)
		if prompt.Index != i || prompt.Total != catalog.Len() {
			t.Fatalf("unexpected prompt position %+v", prompt)
		}
		outcome := mustSubmit(t, d, answer)
		if outcome.Kind != Accepted {
			t.Fatalf("expected %q to be accepted for question %d, got %s", answer, prompt.QuestionID, outcome.Kind)
		}
		if outcome.Message != AcknowledgementMessage {
			t.Fatalf("unexpected acknowledgement %q", outcome.Message)
		}
	}
	if d.State() != Done {
		t.Fatalf("expected done state, got %s", d.State())
	}

	answers := d.Answers()
	questions := catalog.Questions()
	if len(answers) != len(questions) {
		t.Fatalf("expected %d answers, got %d", len(questions), len(answers))
	}
	for i, answer := range answers {
		if answer.Question != questions[i].Text {
			t.Fatalf("answer %d out of catalog order: %q", i, answer.Question)
		}
		want := question.Sanitize(validAnswers[i])
		if answer.Value != want {
			t.Fatalf("answer %d: expected %q, got %q", i, want, answer.Value)
		}
	}
	if got := d.AnswerMap()[questions[3].Text]; got != "'=SUM(A1)" {
		t.Fatalf("expected sanitized answer, got %q", got)
	}
	if _, err := d.Present(); !errors.Is(err, ErrDone) {
		t.Fatalf("expected ErrDone from Present, got %v", err)
	}
	if _, err := d.Submit(context.Background(), "x"); !errors.Is(err, ErrDone) {
		t.Fatalf("expected ErrDone from Submit, got %v", err)
	}
}

// TestDriverRetryExhaustion verifies three clarifications precede the skip and
// a skipped question has no ledger entry.
func TestDriverRetryExhaustion(t *testing.T) {
	catalog, err := question.NewCatalog([]question.Record{
		{ID: 7, Text: "How challenging?", Type: question.KindRating, Scale: []int{1, 10}},
		{ID: 8, Text: "Anything else?", Type: question.KindOpenEnded},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	clarifier := &fakeClarifier{reply: "Please answer with a number from 1 to 10."}
	d := NewDriver(catalog, clarifier)
	mustPresent(t, d)

	first := mustSubmit(t, d, "eleven")
	if first.Kind != Clarify || first.Attempt != 1 || first.Message != clarifier.reply {
		t.Fatalf("unexpected first outcome %+v", first)
	}
	second := mustSubmit(t, d, "0")
	if second.Kind != Clarify || second.Attempt != 2 {
		t.Fatalf("unexpected second outcome %+v", second)
	}
	third := mustSubmit(t, d, "abc")
	if third.Kind != Clarify || third.Attempt != 3 || d.Retries() != 3 {
		t.Fatalf("unexpected third outcome %+v", third)
	}
	fourth := mustSubmit(t, d, "11")
	if fourth.Kind != Skipped || fourth.Message != MoveOnMessage || fourth.Attempt != 4 {
		t.Fatalf("unexpected fourth outcome %+v", fourth)
	}
	if len(clarifier.calls) != 3 {
		t.Fatalf("expected 3 clarifier calls, got %d", len(clarifier.calls))
	}
	if d.State() != Presenting || d.Cursor() != 1 || d.Retries() != 0 {
		t.Fatalf("expected driver to advance, state=%s cursor=%d retries=%d", d.State(), d.Cursor(), d.Retries())
	}
	if _, ok := d.Ledger()[7]; ok {
		t.Fatalf("expected no ledger entry for skipped question")
	}
	if got, ok := d.AnswerMap()["How challenging?"]; !ok || got != "" {
		t.Fatalf("expected empty answer for skipped question, got %q (present=%v)", got, ok)
	}
}

// TestDriverClarifierFailureUsesFallback verifies collaborator errors never abort the session.
func TestDriverClarifierFailureUsesFallback(t *testing.T) {
	catalog, err := question.NewCatalog([]question.Record{
		{ID: 1, Text: "Ok?", Type: question.KindYesNo},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	d := NewDriver(catalog, &fakeClarifier{err: errors.New("network down")})
	mustPresent(t, d)
	outcome := mustSubmit(t, d, "maybe")
	if outcome.Kind != Clarify || outcome.Message != FallbackMessage {
		t.Fatalf("expected fallback clarification, got %+v", outcome)
	}
	if d.Retries() != 1 {
		t.Fatalf("expected one retry consumed by the invalid answer, got %d", d.Retries())
	}
	outcome = mustSubmit(t, d, "y")
	if outcome.Kind != Accepted || !outcome.Done {
		t.Fatalf("expected final acceptance, got %+v", outcome)
	}
}

// TestDriverClarifierTimeout verifies a slow collaborator is treated as a failure.
func TestDriverClarifierTimeout(t *testing.T) {
	catalog, err := question.NewCatalog([]question.Record{
		{ID: 1, Text: "Why?", Type: question.KindOpenEnded},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	d := NewDriver(catalog, blockingClarifier{}, WithClarifyTimeout(20*time.Millisecond))
	mustPresent(t, d)
	outcome := mustSubmit(t, d, "   ")
	if outcome.Message != FallbackMessage {
		t.Fatalf("expected fallback on timeout, got %q", outcome.Message)
	}
}

// TestDriverNilClarifier verifies a missing collaborator yields the fallback.
func TestDriverNilClarifier(t *testing.T) {
	d := NewDriver(question.Default(), nil)
	mustPresent(t, d)
	if outcome := mustSubmit(t, d, "Z"); outcome.Message != FallbackMessage {
		t.Fatalf("expected fallback, got %q", outcome.Message)
	}
}

// TestDriverStateGuards verifies submissions require a presented question.
func TestDriverStateGuards(t *testing.T) {
	d := NewDriver(question.Default(), nil)
	if d.State() != Presenting {
		t.Fatalf("expected presenting state, got %s", d.State())
	}
	if _, err := d.Submit(context.Background(), "A"); !errors.Is(err, ErrNotAwaiting) {
		t.Fatalf("expected ErrNotAwaiting, got %v", err)
	}
	first := mustPresent(t, d)
	again := mustPresent(t, d)
	if first != again {
		t.Fatalf("expected repeated Present to return the same prompt")
	}
	if d.State() != AwaitingValidAnswer {
		t.Fatalf("expected awaiting state, got %s", d.State())
	}
	if got := len(d.History()); got != 1 {
		t.Fatalf("expected one history entry after repeated Present, got %d", got)
	}

	empty := NewDriver(question.Catalog{}, nil)
	if empty.State() != Done {
		t.Fatalf("expected empty catalog to start done")
	}
}

// TestDriverHistory verifies the exchange history sent to the clarifier.
func TestDriverHistory(t *testing.T) {
	catalog, err := question.NewCatalog([]question.Record{
		{ID: 1, Text: "Rate it", Type: question.KindRating, Scale: []int{1, 5}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	clarifier := &fakeClarifier{reply: "A number from 1 to 5, please."}
	d := NewDriver(catalog, clarifier, WithSystemPrompt("be kind"), WithMaxRetries(5))
	mustPresent(t, d)
	mustSubmit(t, d, "-3")

	if len(clarifier.calls) != 1 {
		t.Fatalf("expected one clarifier call, got %d", len(clarifier.calls))
	}
	sent := clarifier.calls[0]
	want := []agent.Message{
		{Role: agent.RoleSystem, Content: "be kind"},
		{Role: agent.RoleAssistant, Content: "Rate it (Please rate from 1 to 5)"},
		{Role: agent.RoleUser, Content: "'-3"},
	}
	if len(sent) != len(want) {
		t.Fatalf("expected %d messages, got %+v", len(want), sent)
	}
	for i := range want {
		if sent[i] != want[i] {
			t.Fatalf("message %d: expected %+v, got %+v", i, want[i], sent[i])
		}
	}
	history := d.History()
	if last := history[len(history)-1]; last.Role != agent.RoleAssistant || last.Content != clarifier.reply {
		t.Fatalf("expected clarification in history, got %+v", last)
	}
}

// TestDriverMaxRetriesOption verifies the retry cap is configurable.
func TestDriverMaxRetriesOption(t *testing.T) {
	catalog, err := question.NewCatalog([]question.Record{
		{ID: 1, Text: "Ok?", Type: question.KindYesNo},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	d := NewDriver(catalog, nil, WithMaxRetries(1))
	mustPresent(t, d)
	if outcome := mustSubmit(t, d, "perhaps"); outcome.Kind != Clarify || outcome.Message != FallbackMessage {
		t.Fatalf("expected one clarification, got %+v", outcome)
	}
	if outcome := mustSubmit(t, d, "perhaps"); outcome.Kind != Skipped || !outcome.Done {
		t.Fatalf("expected skip on the second invalid answer, got %+v", outcome)
	}
}

// TestDriverResponse verifies the persistence payload.
func TestDriverResponse(t *testing.T) {
	d := NewDriver(question.Default(), nil)
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	response := d.Response("  Ada ", at)
	if response.ID == "" {
		t.Fatalf("expected response id")
	}
	if response.Respondent != "Ada" || !response.SubmittedAt.Equal(at) {
		t.Fatalf("unexpected response %+v", response)
	}
	if len(response.Answers) != 15 {
		t.Fatalf("expected 15 answers, got %d", len(response.Answers))
	}
}

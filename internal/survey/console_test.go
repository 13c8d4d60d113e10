package survey

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"feedbackbot/internal/question"
	"feedbackbot/internal/testutil"
)

type recordingSaver struct {
	saved []Response
	err   error
}

func (s *recordingSaver) Save(_ context.Context, response Response) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, response)
	return nil
}

type locatedSaver struct {
	recordingSaver
}

func (s *locatedSaver) Location() string {
	return "out/responses.csv"
}

// TestConsoleCompletesAndSaves verifies a full session persists exactly once.
func TestConsoleCompletesAndSaves(t *testing.T) {
	saver := &locatedSaver{}
	clock := testutil.NewFakeClock(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	var out bytes.Buffer
	console := Console{
		In:         strings.NewReader(strings.Join(validAnswers, "\n") + "\n"),
		Out:        &out,
		Saver:      saver,
		Respondent: "student-1",
		Now:        clock.Now,
	}
	result, err := console.Run(context.Background(), NewDriver(question.Default(), nil))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Exited || !result.Saved || result.SaveErr != nil {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(saver.saved) != 1 {
		t.Fatalf("expected one saved response, got %d", len(saver.saved))
	}
	saved := saver.saved[0]
	if saved.Respondent != "student-1" || !saved.SubmittedAt.Equal(clock.Now()) {
		t.Fatalf("unexpected saved response %+v", saved)
	}
	if len(saved.Answers) != 15 || saved.Answers[0].Value != "B" {
		t.Fatalf("unexpected answers %+v", saved.Answers)
	}

	text := out.String()
	for _, want := range []string{
		WelcomeMessage,
		"Bot: " + AcknowledgementMessage,
		"Bot: " + ClosingMessage,
		"Responses saved to out/responses.csv.",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q, got %q", want, text)
		}
	}
}

// TestConsoleExitSkipsPersistence verifies the exit word ends the session without saving.
func TestConsoleExitSkipsPersistence(t *testing.T) {
	saver := &recordingSaver{}
	var out bytes.Buffer
	console := Console{
		In:    strings.NewReader("B\n  EXIT \n5\n"),
		Out:   &out,
		Saver: saver,
	}
	result, err := console.Run(context.Background(), NewDriver(question.Default(), nil))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Exited || result.Saved {
		t.Fatalf("expected exited result, got %+v", result)
	}
	if len(saver.saved) != 0 {
		t.Fatalf("expected no saved responses, got %d", len(saver.saved))
	}
	if !strings.Contains(out.String(), "Bot: "+GoodbyeMessage) {
		t.Fatalf("expected goodbye, got %q", out.String())
	}
}

// TestConsoleCustomExitWord verifies a configured exit word.
func TestConsoleCustomExitWord(t *testing.T) {
	saver := &recordingSaver{}
	console := Console{In: strings.NewReader("quit\n"), Saver: saver, ExitWord: "quit"}
	result, err := console.Run(context.Background(), NewDriver(question.Default(), nil))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Exited || len(saver.saved) != 0 {
		t.Fatalf("expected exit without save, got %+v", result)
	}
}

// TestConsoleEOFExits verifies closed input behaves like exit.
func TestConsoleEOFExits(t *testing.T) {
	saver := &recordingSaver{}
	console := Console{In: strings.NewReader("B\n5"), Saver: saver}
	result, err := console.Run(context.Background(), NewDriver(question.Default(), nil))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Exited || len(saver.saved) != 0 {
		t.Fatalf("expected exit on EOF, got %+v", result)
	}
}

// TestConsoleClarifiesThenSkips verifies the retry loop in a console session.
func TestConsoleClarifiesThenSkips(t *testing.T) {
	catalog, err := question.NewCatalog([]question.Record{
		{ID: 1, Text: "Rate it", Type: question.KindRating, Scale: []int{1, 10}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	saver := &recordingSaver{}
	var out bytes.Buffer
	clarifier := &fakeClarifier{reply: "Pick a number between 1 and 10."}
	console := Console{In: strings.NewReader("a\nb\nc\nd\n"), Out: &out, Saver: saver}
	result, err := console.Run(context.Background(), NewDriver(catalog, clarifier))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Saved {
		t.Fatalf("expected saved result, got %+v", result)
	}
	if got := strings.Count(out.String(), clarifier.reply); got != 3 {
		t.Fatalf("expected 3 clarifications, got %d in %q", got, out.String())
	}
	if !strings.Contains(out.String(), MoveOnMessage) {
		t.Fatalf("expected move-on notice, got %q", out.String())
	}
	if got := saver.saved[0].Answers[0].Value; got != "" {
		t.Fatalf("expected blank answer for skipped question, got %q", got)
	}
	if !strings.Contains(out.String(), "Responses saved.") {
		t.Fatalf("expected generic save notice, got %q", out.String())
	}
}

// TestConsoleSaveErrorIsReported verifies persistence failures do not fail the session.
func TestConsoleSaveErrorIsReported(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	var out bytes.Buffer
	console := Console{
		In:    strings.NewReader(strings.Join(validAnswers, "\n") + "\n"),
		Out:   &out,
		Saver: saver,
	}
	result, err := console.Run(context.Background(), NewDriver(question.Default(), nil))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Saved || result.SaveErr == nil {
		t.Fatalf("expected save error in result, got %+v", result)
	}
	if !strings.Contains(out.String(), "Error saving responses: disk full") {
		t.Fatalf("expected save error output, got %q", out.String())
	}
}

// TestIsExitCommand verifies case-insensitive exit matching.
func TestIsExitCommand(t *testing.T) {
	cases := []struct {
		input string
		word  string
		want  bool
	}{
		{"exit", "", true},
		{" Exit ", "exit", true},
		{"exiting", "exit", false},
		{"QUIT", "quit", true},
		{"exit", "quit", false},
	}
	for _, tc := range cases {
		if got := IsExitCommand(tc.input, tc.word); got != tc.want {
			t.Fatalf("IsExitCommand(%q, %q) = %v, want %v", tc.input, tc.word, got, tc.want)
		}
	}
}

// TestConsoleStopsOnCanceledContext verifies cancellation ends the loop without saving.
func TestConsoleStopsOnCanceledContext(t *testing.T) {
	saver := &recordingSaver{}
	var out bytes.Buffer
	console := Console{In: strings.NewReader("B\n"), Out: &out, Saver: saver}
	_, err := console.Run(testutil.Canceled(t), NewDriver(question.Default(), nil))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(saver.saved) != 0 {
		t.Fatalf("expected nothing saved, got %d", len(saver.saved))
	}
}

// TestConsoleCancelWhileWaitingForInput verifies cancellation interrupts a
// pending read and nothing is saved.
func TestConsoleCancelWhileWaitingForInput(t *testing.T) {
	reader, writer := io.Pipe()
	t.Cleanup(func() { writer.Close() })
	saver := &recordingSaver{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := Console{In: reader, Out: io.Discard, Saver: saver}.Run(ctx, NewDriver(question.Default(), nil))
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("console still waiting for input after cancel")
	}
	if len(saver.saved) != 0 {
		t.Fatalf("expected nothing saved, got %d", len(saver.saved))
	}
}

// TestConsoleClarifyAfterEOF verifies an unterminated last answer that needs
// clarification ends the session instead of waiting for more input.
func TestConsoleClarifyAfterEOF(t *testing.T) {
	saver := &recordingSaver{}
	console := Console{In: strings.NewReader("maybe"), Out: io.Discard, Saver: saver}
	result, err := console.Run(testutil.Context(t, 0), NewDriver(question.Default(), nil))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Exited || len(saver.saved) != 0 {
		t.Fatalf("expected exit without saving, got %+v", result)
	}
}

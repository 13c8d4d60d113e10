package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// TestBotPrinter verifies the label is coloured only when enabled.
func TestBotPrinter(t *testing.T) {
	var plain, colored bytes.Buffer
	botPrinter(false)(&plain, "Hello")
	botPrinter(true)(&colored, "Hello")

	if plain.String() != "Bot: Hello\n" {
		t.Fatalf("unexpected plain output %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") || !strings.HasSuffix(colored.String(), " Hello\n") {
		t.Fatalf("expected ANSI label, got %q", colored.String())
	}
	if got := errorLabel("Error:", false); got != "Error:" {
		t.Fatalf("unexpected error label %q", got)
	}
}

// TestColorEnabled verifies non-terminals and NO_COLOR disable colour.
func TestColorEnabled(t *testing.T) {
	if colorEnabled(&bytes.Buffer{}) {
		t.Fatalf("expected buffers to be uncoloured")
	}
	t.Setenv("NO_COLOR", "1")
	if colorEnabled(os.Stdout) {
		t.Fatalf("expected NO_COLOR to disable colour")
	}
}

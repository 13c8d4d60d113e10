package prompt

import (
	"context"
	"strings"
	"testing"

	"feedbackbot/internal/question"
)

// TestRenderSystemPromptListsQuestions verifies every catalog question appears with its hint.
func TestRenderSystemPromptListsQuestions(t *testing.T) {
	catalog := question.Default()
	text, err := RenderSystemPrompt(context.Background(), catalog)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(text, systemPreamble) {
		t.Fatalf("expected preamble first, got %q", text)
	}
	for i, q := range catalog.Questions() {
		if !strings.Contains(text, q.Text) {
			t.Fatalf("question %d missing from prompt", i+1)
		}
	}
	if !strings.Contains(text, "[1 to 10]") {
		t.Fatalf("expected rating hint, got %q", text)
	}
	if !strings.Contains(text, "[Yes or No]") {
		t.Fatalf("expected yes/no hint, got %q", text)
	}
}

// TestRenderSystemPromptEmptyCatalog verifies an empty catalog yields only the preamble.
func TestRenderSystemPromptEmptyCatalog(t *testing.T) {
	text, err := RenderSystemPrompt(context.Background(), question.Catalog{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if text != systemPreamble {
		t.Fatalf("unexpected prompt %q", text)
	}
}

// TestRenderSystemPromptFlattensText verifies multi-line question text stays on one line.
func TestRenderSystemPromptFlattensText(t *testing.T) {
	catalog, err := question.NewCatalog([]question.Record{
		{ID: 1, Text: "What did you\nthink?", Type: question.KindOpenEnded},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	text, err := RenderSystemPrompt(context.Background(), catalog)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(text, "\n1. What did you think? [free text]") {
		t.Fatalf("unexpected prompt %q", text)
	}
}

// TestRenderSystemPromptKeepsPunctuation verifies question text is written
// as plain text without HTML escaping.
func TestRenderSystemPromptKeepsPunctuation(t *testing.T) {
	catalog, err := question.NewCatalog([]question.Record{
		{ID: 1, Text: `What's "hard" & <new>?`, Type: question.KindOpenEnded},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	text, err := RenderSystemPrompt(context.Background(), catalog)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(text, `1. What's "hard" & <new>? [free text]`) {
		t.Fatalf("unexpected prompt %q", text)
	}
}

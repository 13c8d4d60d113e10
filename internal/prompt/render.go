package prompt

import (
	"context"
	"fmt"
	"strings"

	"feedbackbot/internal/question"
)

const systemPreamble = "You are a friendly course feedback assistant. You guide the student " +
	"through a fixed list of questions, one at a time. When an answer does not fit the " +
	"question, restate the question briefly and explain which answers are accepted. " +
	"Keep replies short and polite, and never invent new questions."

// RenderSystemPrompt builds the system prompt text from the compiled template.
func RenderSystemPrompt(ctx context.Context, catalog question.Catalog) (string, error) {
	var builder strings.Builder
	if err := SystemPrompt(catalog).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// questionLine formats one numbered catalog entry with its accepted answers.
func questionLine(index int, q question.Question) string {
	return fmt.Sprintf("\n%d. %s [%s]", index+1, singleLine(q.Text), question.Hint(q))
}

func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

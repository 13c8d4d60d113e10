package question

import (
	"fmt"
	"strings"
)

// Render formats the question as it is shown to the respondent: the text
// followed by an options listing, a yes/no hint or a scale hint.
func Render(q Question) string {
	var builder strings.Builder
	builder.WriteString(q.Text)
	switch rule := q.Rule.(type) {
	case MultipleChoice:
		builder.WriteString("\nOptions:")
		for _, option := range rule.Options {
			fmt.Fprintf(&builder, "\n%s. %s", option.Code, option.Text)
		}
	case YesNo:
		builder.WriteString(" (Yes or No)")
	case Rating:
		fmt.Fprintf(&builder, " (Please rate from %d to %d)", rule.Low, rule.High)
	}
	return builder.String()
}

// Hint returns a one-line description of the accepted answers.
func Hint(q Question) string {
	switch rule := q.Rule.(type) {
	case MultipleChoice:
		parts := make([]string, 0, len(rule.Options))
		for _, option := range rule.Options {
			parts = append(parts, fmt.Sprintf("%s. %s", option.Code, option.Text))
		}
		return strings.Join(parts, ", ")
	case YesNo:
		return "Yes or No"
	case Rating:
		return fmt.Sprintf("%d to %d", rule.Low, rule.High)
	case OpenEnded:
		return "free text"
	default:
		return ""
	}
}

package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a question catalog.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question catalog validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// buildQuestions trims and checks records, converting each into a Question.
// Every inconsistent pairing of type and constraints is reported.
func buildQuestions(records []Record) ([]Question, error) {
	collector := &issueCollector{}
	if len(records) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	questions := make([]Question, 0, len(records))
	seenIDs := map[int]struct{}{}
	for i, record := range records {
		prefix := fmt.Sprintf("questions[%d]", i)
		if record.ID <= 0 {
			collector.add(prefix+".id", "must be a positive integer")
		} else if _, exists := seenIDs[record.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %d", record.ID))
		} else {
			seenIDs[record.ID] = struct{}{}
		}

		text := strings.TrimSpace(record.Text)
		if text == "" {
			collector.add(prefix+".text", "is required")
		}

		kind := Kind(strings.TrimSpace(string(record.Type)))
		var rule Rule
		switch kind {
		case KindMultipleChoice:
			rule = buildMultipleChoice(prefix, record.Options, collector)
		case KindRating:
			rule = buildRating(prefix, record.Scale, collector)
		case KindYesNo:
			rule = YesNo{}
		case KindOpenEnded:
			rule = OpenEnded{}
		case "":
			collector.add(prefix+".type", "is required")
		default:
			collector.add(prefix+".type", fmt.Sprintf("unsupported type %q", record.Type))
		}
		if kind != KindMultipleChoice && len(record.Options) > 0 {
			collector.add(prefix+".options", fmt.Sprintf("not allowed for type %q", kind))
		}
		if kind != KindRating && len(record.Scale) > 0 {
			collector.add(prefix+".scale", fmt.Sprintf("not allowed for type %q", kind))
		}
		questions = append(questions, Question{ID: record.ID, Text: text, Rule: rule})
	}

	if err := collector.result(); err != nil {
		return nil, err
	}
	return questions, nil
}

func buildMultipleChoice(prefix string, options []Option, collector *issueCollector) Rule {
	if len(options) == 0 {
		collector.add(prefix+".options", "must include at least one entry")
		return nil
	}
	normalized := make([]Option, 0, len(options))
	seenCodes := map[string]struct{}{}
	for i, option := range options {
		field := fmt.Sprintf("%s.options[%d]", prefix, i)
		option.Code = strings.TrimSpace(option.Code)
		option.Text = strings.TrimSpace(option.Text)
		if option.Code == "" {
			collector.add(field+".code", "is required")
		} else {
			key := normalizeAnswer(option.Code)
			if _, exists := seenCodes[key]; exists {
				collector.add(field+".code", fmt.Sprintf("duplicate code %q", option.Code))
			}
			seenCodes[key] = struct{}{}
		}
		if option.Text == "" {
			collector.add(field+".text", "is required")
		}
		normalized = append(normalized, option)
	}
	return MultipleChoice{Options: normalized}
}

func buildRating(prefix string, scale []int, collector *issueCollector) Rule {
	if len(scale) != 2 {
		collector.add(prefix+".scale", "must be [low, high]")
		return nil
	}
	if scale[0] > scale[1] {
		collector.add(prefix+".scale", fmt.Sprintf("low %d is greater than high %d", scale[0], scale[1]))
		return nil
	}
	return Rating{Low: scale[0], High: scale[1]}
}

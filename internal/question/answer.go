package question

import (
	"strconv"
	"strings"
)

// formulaPrefixes are leading characters that spreadsheet tools evaluate.
const formulaPrefixes = "=+-@"

// Sanitize defuses spreadsheet formula injection by quoting values that
// start with a formula character.
func Sanitize(answer string) string {
	if answer != "" && strings.ContainsRune(formulaPrefixes, rune(answer[0])) {
		return "'" + answer
	}
	return answer
}

// normalizeAnswer trims and lowercases a value for matching.
func normalizeAnswer(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Validate reports whether answer satisfies the question's rule. It is a
// pure function of the rule and the trimmed, lowercased answer.
func Validate(q Question, answer string) bool {
	normalized := normalizeAnswer(answer)
	switch rule := q.Rule.(type) {
	case MultipleChoice:
		for _, option := range rule.Options {
			if normalized == normalizeAnswer(option.Code) || normalized == normalizeAnswer(option.Text) {
				return true
			}
		}
		return false
	case YesNo:
		switch normalized {
		case "yes", "no", "y", "n":
			return true
		}
		return false
	case Rating:
		value, err := strconv.Atoi(normalized)
		if err != nil {
			return false
		}
		return value >= rule.Low && value <= rule.High
	case OpenEnded:
		return len(normalized) > 0
	default:
		return false
	}
}

package question

import "testing"

func questionByID(t *testing.T, id int) Question {
	t.Helper()
	for _, q := range Default().Questions() {
		if q.ID == id {
			return q
		}
	}
	t.Fatalf("question %d not found", id)
	return Question{}
}

// TestValidateMultipleChoice verifies codes and option texts match case-insensitively.
func TestValidateMultipleChoice(t *testing.T) {
	q := questionByID(t, 1)
	for _, answer := range []string{"B", "b", " b ", "Supplement previous knowledge", "SUPPLEMENT PREVIOUS KNOWLEDGE"} {
		if !Validate(q, answer) {
			t.Fatalf("expected %q to be valid", answer)
		}
	}
	for _, answer := range []string{"Z", "", "Supplement"} {
		if Validate(q, answer) {
			t.Fatalf("expected %q to be invalid", answer)
		}
	}
}

// TestValidateRating verifies the inclusive scale bounds.
func TestValidateRating(t *testing.T) {
	q := Question{ID: 1, Text: "Rate", Rule: Rating{Low: 1, High: 5}}
	cases := []struct {
		answer string
		want   bool
	}{
		{answer: "5", want: true},
		{answer: "1", want: true},
		{answer: " 3 ", want: true},
		{answer: "6", want: false},
		{answer: "0", want: false},
		{answer: "abc", want: false},
		{answer: "2.5", want: false},
		{answer: "", want: false},
	}
	for _, tc := range cases {
		if got := Validate(q, tc.answer); got != tc.want {
			t.Fatalf("Validate(%q) = %v, want %v", tc.answer, got, tc.want)
		}
	}
}

// TestValidateYesNo verifies the accepted yes/no spellings.
func TestValidateYesNo(t *testing.T) {
	q := Question{ID: 1, Text: "Ok?", Rule: YesNo{}}
	for _, answer := range []string{"Yes", "y", "N", "no", " YES "} {
		if !Validate(q, answer) {
			t.Fatalf("expected %q to be valid", answer)
		}
	}
	for _, answer := range []string{"maybe", "", "yep"} {
		if Validate(q, answer) {
			t.Fatalf("expected %q to be invalid", answer)
		}
	}
}

// TestValidateOpenEnded verifies blank answers are rejected.
func TestValidateOpenEnded(t *testing.T) {
	q := Question{ID: 1, Text: "Why?", Rule: OpenEnded{}}
	if Validate(q, "") {
		t.Fatalf("expected empty answer to be invalid")
	}
	if Validate(q, " ") {
		t.Fatalf("expected whitespace answer to be invalid")
	}
	if !Validate(q, "fine") {
		t.Fatalf("expected text answer to be valid")
	}
}

// TestValidateWithoutRule verifies questions with no rule never validate.
func TestValidateWithoutRule(t *testing.T) {
	if Validate(Question{ID: 1, Text: "?"}, "anything") {
		t.Fatalf("expected question without rule to reject answers")
	}
}

// TestSanitize verifies formula prefixes are quoted.
func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"=SUM(A1)": "'=SUM(A1)",
		"+1":       "'+1",
		"-2":       "'-2",
		"@cmd":     "'@cmd",
		"hello":    "hello",
		"":         "",
		" =x":      " =x",
	}
	for input, want := range cases {
		if got := Sanitize(input); got != want {
			t.Fatalf("Sanitize(%q) = %q, want %q", input, got, want)
		}
	}
}

// TestRenderHints verifies the per-kind prompt suffixes.
func TestRenderHints(t *testing.T) {
	rating := Render(Question{Text: "Rate it", Rule: Rating{Low: 1, High: 4}})
	if rating != "Rate it (Please rate from 1 to 4)" {
		t.Fatalf("unexpected rating render: %q", rating)
	}
	yesNo := Render(Question{Text: "Ok?", Rule: YesNo{}})
	if yesNo != "Ok? (Yes or No)" {
		t.Fatalf("unexpected yes/no render: %q", yesNo)
	}
	open := Render(Question{Text: "Why?", Rule: OpenEnded{}})
	if open != "Why?" {
		t.Fatalf("unexpected open render: %q", open)
	}
	choice := Render(Question{Text: "Pick", Rule: MultipleChoice{Options: []Option{{Code: "A", Text: "One"}, {Code: "B", Text: "Two"}}}})
	if choice != "Pick\nOptions:\nA. One\nB. Two" {
		t.Fatalf("unexpected choice render: %q", choice)
	}
}

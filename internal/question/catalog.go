package question

// Catalog is an ordered, read-only list of questions. Insertion order is
// presentation order.
type Catalog struct {
	questions []Question
}

// NewCatalog validates records and builds a catalog from them.
func NewCatalog(records []Record) (Catalog, error) {
	questions, err := buildQuestions(records)
	if err != nil {
		return Catalog{}, err
	}
	return Catalog{questions: questions}, nil
}

// Default returns the built-in course feedback catalog.
func Default() Catalog {
	catalog, err := NewCatalog(defaultRecords())
	if err != nil {
		panic("question: invalid default catalog: " + err.Error())
	}
	return catalog
}

// Len reports the number of questions.
func (c Catalog) Len() int {
	return len(c.questions)
}

// At returns the question at index i.
func (c Catalog) At(i int) (Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[i], true
}

// Questions returns a copy of the questions in presentation order.
func (c Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	for i, q := range out {
		if mc, ok := q.Rule.(MultipleChoice); ok {
			options := make([]Option, len(mc.Options))
			copy(options, mc.Options)
			out[i].Rule = MultipleChoice{Options: options}
		}
	}
	return out
}

// Records converts the catalog back into its serialized form.
func (c Catalog) Records() []Record {
	records := make([]Record, 0, len(c.questions))
	for _, q := range c.questions {
		record := Record{ID: q.ID, Text: q.Text, Type: q.Kind()}
		switch rule := q.Rule.(type) {
		case MultipleChoice:
			record.Options = append([]Option(nil), rule.Options...)
		case Rating:
			record.Scale = []int{rule.Low, rule.High}
		}
		records = append(records, record)
	}
	return records
}

func defaultRecords() []Record {
	return []Record{
		{
			ID:   1,
			Text: "What were your goals for this course?",
			Type: KindMultipleChoice,
			Options: []Option{
				{Code: "A", Text: "Learn something completely new"},
				{Code: "B", Text: "Supplement previous knowledge"},
				{Code: "C", Text: "Refresh previous knowledge"},
				{Code: "D", Text: "Other"},
			},
		},
		{ID: 2, Text: "Out of 5 stars, what do you rate the course?", Type: KindRating, Scale: []int{1, 5}},
		{
			ID:   3,
			Text: "In general, how familiar were you with the content before the course?",
			Type: KindMultipleChoice,
			Options: []Option{
				{Code: "A", Text: "No knowledge"},
				{Code: "B", Text: "I've heard of it, but I don't know much more"},
				{Code: "C", Text: "I'm familiar with it"},
				{Code: "D", Text: "I could explain the content to others"},
				{Code: "E", Text: "I am an expert on the topic"},
				{Code: "F", Text: "Other"},
			},
		},
		{ID: 4, Text: "What did you like best about the course?", Type: KindOpenEnded},
		{ID: 5, Text: "Can you provide an example of how you applied what you learned in this course?", Type: KindOpenEnded},
		{
			ID:   6,
			Text: "How would you rate the instructor's ability to explain the material?",
			Type: KindMultipleChoice,
			Options: []Option{
				{Code: "A", Text: "Poor"},
				{Code: "B", Text: "Fair"},
				{Code: "C", Text: "Good"},
				{Code: "D", Text: "Excellent"},
				{Code: "E", Text: "Outstanding"},
			},
		},
		{
			ID:    7,
			Text:  "On a scale of 1 to 10, how challenging did you find the course content? (1 being not challenging at all and 10 being extremely challenging)",
			Type:  KindRating,
			Scale: []int{1, 10},
		},
		{
			ID:   8,
			Text: "How well were you able to apply what you learned?",
			Type: KindMultipleChoice,
			Options: []Option{
				{Code: "A", Text: "Not at all"},
				{Code: "B", Text: "A little bit"},
				{Code: "C", Text: "Moderately well"},
				{Code: "D", Text: "Very well"},
				{Code: "E", Text: "Exceptionally well"},
				{Code: "F", Text: "Other"},
			},
		},
		{ID: 9, Text: "Have you worked with the content before?", Type: KindYesNo},
		{ID: 10, Text: "What could be improved about the course?", Type: KindOpenEnded},
		{ID: 11, Text: "The content was accurate, up-to-date, applicable to the real world. (1-4, Untrue to True)", Type: KindRating, Scale: []int{1, 4}},
		{ID: 12, Text: "The learning goals were clearly defined. (1-4, Untrue to True)", Type: KindRating, Scale: []int{1, 4}},
		{ID: 13, Text: "The course content was relevant for me.", Type: KindYesNo},
		{
			ID:   14,
			Text: "The duration of the content was",
			Type: KindMultipleChoice,
			Options: []Option{
				{Code: "A", Text: "Much too short"},
				{Code: "B", Text: "A bit short"},
				{Code: "C", Text: "Just right"},
				{Code: "D", Text: "A bit long"},
				{Code: "E", Text: "Much too long"},
			},
		},
		{ID: 15, Text: "The course was of high quality (1-4, Untrue to True).", Type: KindRating, Scale: []int{1, 4}},
	}
}

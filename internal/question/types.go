package question

// Kind identifies the answer type a question expects.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindRating         Kind = "rating"
	KindYesNo          Kind = "yes_no"
	KindOpenEnded      Kind = "open_ended"
)

// Question is a single immutable survey question.
type Question struct {
	ID   int
	Text string
	Rule Rule
}

// Kind returns the answer type of the question.
func (q Question) Kind() Kind {
	if q.Rule == nil {
		return ""
	}
	return q.Rule.Kind()
}

// Rule carries the kind-specific constraints of a question.
// The concrete types are MultipleChoice, Rating, YesNo and OpenEnded.
type Rule interface {
	Kind() Kind
	rule()
}

// Option is one choice of a multiple-choice question.
type Option struct {
	Code string `json:"code" yaml:"code"`
	Text string `json:"text" yaml:"text"`
}

// MultipleChoice accepts one of its option codes or option texts.
type MultipleChoice struct {
	Options []Option
}

// Rating accepts an integer in the inclusive range [Low, High].
type Rating struct {
	Low  int
	High int
}

// YesNo accepts yes, no, y or n.
type YesNo struct{}

// OpenEnded accepts any non-blank text.
type OpenEnded struct{}

func (MultipleChoice) Kind() Kind { return KindMultipleChoice }
func (Rating) Kind() Kind         { return KindRating }
func (YesNo) Kind() Kind          { return KindYesNo }
func (OpenEnded) Kind() Kind      { return KindOpenEnded }

func (MultipleChoice) rule() {}
func (Rating) rule()         {}
func (YesNo) rule()          {}
func (OpenEnded) rule()      {}

// File is the on-disk schema of a question catalog loaded from JSON or YAML.
type File struct {
	Version   int      `json:"version" yaml:"version"`
	Questions []Record `json:"questions" yaml:"questions"`
}

// Record is the serialized form of a question. Only the fields that match
// Type may be set; NewCatalog rejects anything else.
type Record struct {
	ID      int      `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Type    Kind     `json:"type" yaml:"type"`
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Scale   []int    `json:"scale,omitempty" yaml:"scale,omitempty,flow"`
}

// Package model holds the shared domain types for the assessment pipeline.
package model

// Option is a single answer choice on the Likert scale.
type Option struct {
	Value int    `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Question is an immutable reference-data question definition.
type Question struct {
	ID        string     `json:"id" yaml:"id"`
	Number    int        `json:"number" yaml:"number"`
	Text      string     `json:"text" yaml:"text"`
	Pillar    Pillar     `json:"pillar" yaml:"pillar"`
	Weight    float64    `json:"weight" yaml:"weight"`
	Options   []Option   `json:"options" yaml:"options"`
	Required  bool       `json:"required" yaml:"required"`
	IncludeIf *Condition `json:"include_if,omitempty" yaml:"include_if,omitempty"`
}

// OptionValueValid reports whether v matches one of the question's declared
// option values.
func (q Question) OptionValueValid(v int) bool {
	for _, o := range q.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// QuestionSet is the resolved, possibly company-customized, ordered list of
// questions used for one submission.
type QuestionSet struct {
	Questions []Question `json:"questions"`
}

// Question returns the question with the given id, if present.
func (qs QuestionSet) Question(id string) (Question, bool) {
	for _, q := range qs.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// IDs returns the question identifiers in set order.
func (qs QuestionSet) IDs() []string {
	ids := make([]string, 0, len(qs.Questions))
	for _, q := range qs.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}

// ByPillar groups the set's questions by pillar, preserving set order.
func (qs QuestionSet) ByPillar() map[Pillar][]Question {
	grouped := make(map[Pillar][]Question)
	for _, q := range qs.Questions {
		grouped[q.Pillar] = append(grouped[q.Pillar], q)
	}
	return grouped
}

// AnswerSet maps question ids to validated option values.
type AnswerSet map[string]int

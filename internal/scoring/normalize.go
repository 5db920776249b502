package scoring

import (
	"fmt"
	"strings"

	"github.com/finwell/finhealth/internal/model"
)

// ValidationError reports a submission that does not answer every question
// in the resolved set, or answers one outside its declared option values.
// It is fatal to the submission.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing answers: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, fmt.Sprintf("invalid answers: %s", strings.Join(e.Invalid, ", ")))
	}
	return "scoring: " + strings.Join(parts, "; ")
}

// Normalize validates raw answers against the resolved question set and
// returns a validated AnswerSet. Every question in the set must be answered
// with one of its declared option values. Answers for questions outside the
// set are dropped.
func Normalize(qs model.QuestionSet, raw map[string]int) (model.AnswerSet, error) {
	verr := &ValidationError{}
	answers := make(model.AnswerSet, len(qs.Questions))

	for _, q := range qs.Questions {
		v, ok := raw[q.ID]
		if !ok {
			verr.Missing = append(verr.Missing, q.ID)
			continue
		}
		if !q.OptionValueValid(v) {
			verr.Invalid = append(verr.Invalid, q.ID)
			continue
		}
		answers[q.ID] = v
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return nil, verr
	}
	return answers, nil
}

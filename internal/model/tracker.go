package model

import "time"

// QuestionOverride customizes a single base question for a company tracker.
// Zero-value fields leave the base definition untouched.
type QuestionOverride struct {
	Text      string     `json:"text,omitempty" yaml:"text,omitempty"`
	Options   []Option   `json:"options,omitempty" yaml:"options,omitempty"`
	Weight    float64    `json:"weight,omitempty" yaml:"weight,omitempty"`
	IncludeIf *Condition `json:"include_if,omitempty" yaml:"include_if,omitempty"`
}

// Tracker is a company-specific survey configuration reachable through a
// URL key. It selects and customizes the question set for employee cohorts.
type Tracker struct {
	ID          string                      `json:"id"`
	CompanyName string                      `json:"company_name"`
	URLKey      string                      `json:"url_key"`
	Include     []string                    `json:"include,omitempty"`
	Exclude     []string                    `json:"exclude,omitempty"`
	Overrides   map[string]QuestionOverride `json:"overrides,omitempty"`
	Version     int                         `json:"version"`
	Active      bool                        `json:"active"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// Excludes reports whether the tracker excludes the given question id.
func (t *Tracker) Excludes(id string) bool {
	for _, e := range t.Exclude {
		if e == id {
			return true
		}
	}
	return false
}

// Includes reports whether the tracker's include list selects the given
// question id. An empty include list selects every base question.
func (t *Tracker) Includes(id string) bool {
	if len(t.Include) == 0 {
		return true
	}
	for _, in := range t.Include {
		if in == id {
			return true
		}
	}
	return false
}

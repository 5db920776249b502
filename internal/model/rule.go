package model

// Profile carries respondent demographic attributes used for conditional
// question inclusion and variation matching. Unknown fields are ignored.
type Profile map[string]any

// Condition is a demographic rule node. Exactly one branch is populated:
// either a boolean combinator (All/Any) or a single field comparison.
// The closed operator set is eq, in, gte, lte.
type Condition struct {
	All []Condition `json:"all,omitempty" yaml:"all,omitempty"`
	Any []Condition `json:"any,omitempty" yaml:"any,omitempty"`

	Field string  `json:"field,omitempty" yaml:"field,omitempty"`
	Op    string  `json:"op,omitempty" yaml:"op,omitempty"`
	Value any     `json:"value,omitempty" yaml:"value,omitempty"`
	In    []any   `json:"in,omitempty" yaml:"in,omitempty"`
}

// Condition operators.
const (
	OpEq  = "eq"
	OpIn  = "in"
	OpGte = "gte"
	OpLte = "lte"
)

package model

// Template is static, localizable advice content tied to a pillar.
// Templates are looked up, never mutated, during scoring. Lower priority
// values surface first.
type Template struct {
	ID          string   `json:"id" yaml:"id"`
	Pillar      Pillar   `json:"pillar" yaml:"pillar"`
	Priority    int      `json:"priority" yaml:"priority"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	ActionSteps []string `json:"action_steps" yaml:"action_steps"`
}

// Recommendation is a template resolved for one submission: localized to the
// requested language and annotated with the pillar score that selected it.
type Recommendation struct {
	TemplateID   string   `json:"template_id"`
	Pillar       Pillar   `json:"pillar"`
	Priority     int      `json:"priority"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ActionSteps  []string `json:"action_steps"`
	Language     string   `json:"language"`
	PillarScore  float64  `json:"pillar_score"`
	FallbackUsed bool     `json:"fallback_used,omitempty"`
}

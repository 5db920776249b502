package model

import "time"

// ContentType distinguishes the kinds of localizable content.
type ContentType string

const (
	ContentQuestion       ContentType = "question"
	ContentRecommendation ContentType = "recommendation"
	ContentUI             ContentType = "ui"
)

// Supported languages. English is the default and the fallback target.
const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// ContentEntry is one localized variant of a piece of display content,
// keyed by (type, content id, language).
type ContentEntry struct {
	Type        ContentType `json:"type" yaml:"type"`
	ContentID   string      `json:"content_id" yaml:"content_id"`
	Language    string      `json:"language" yaml:"language"`
	Title       string      `json:"title,omitempty" yaml:"title,omitempty"`
	Text        string      `json:"text" yaml:"text"`
	Options     []Option    `json:"options,omitempty" yaml:"options,omitempty"`
	ActionSteps []string    `json:"action_steps,omitempty" yaml:"action_steps,omitempty"`
	Active      bool        `json:"active" yaml:"active"`
	UpdatedAt   time.Time   `json:"updated_at,omitempty" yaml:"-"`
}

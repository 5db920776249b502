package model

import "time"

// RiskTolerance is a coarse label for self-reported investment risk appetite.
type RiskTolerance string

const (
	RiskLow      RiskTolerance = "low"
	RiskModerate RiskTolerance = "moderate"
	RiskHigh     RiskTolerance = "high"
)

// HealthLabel buckets the overall score for presentation.
type HealthLabel string

const (
	HealthExcellent HealthLabel = "excellent"
	HealthGood      HealthLabel = "good"
	HealthFair      HealthLabel = "fair"
	HealthPoor      HealthLabel = "poor"
)

// Health label cut points over the 0-100 overall score.
const (
	excellentCutoff = 85
	goodCutoff      = 70
	fairCutoff      = 50
)

// LabelForScore maps an overall score to its health label.
func LabelForScore(score float64) HealthLabel {
	switch {
	case score >= excellentCutoff:
		return HealthExcellent
	case score >= goodCutoff:
		return HealthGood
	case score >= fairCutoff:
		return HealthFair
	default:
		return HealthPoor
	}
}

// SurveyResult is the immutable output aggregate for one submission.
type SurveyResult struct {
	OverallScore    float64            `json:"overall_score"`
	PillarScores    map[Pillar]float64 `json:"pillar_scores"`
	HealthLabel     HealthLabel        `json:"health_label"`
	RiskTolerance   RiskTolerance      `json:"risk_tolerance"`
	Recommendations []Recommendation   `json:"recommendations"`
	Language        string             `json:"language"`
}

// SubmissionStatus tracks a stored submission's lifecycle.
type SubmissionStatus string

const (
	SubmissionScored SubmissionStatus = "scored"
)

// Submission is one stored survey submission with its computed result.
type Submission struct {
	ID         string           `json:"id"`
	TrackerKey string           `json:"tracker_key,omitempty"`
	Language   string           `json:"language"`
	Answers    map[string]int   `json:"answers"`
	Profile    Profile          `json:"profile,omitempty"`
	Result     *SurveyResult    `json:"result,omitempty"`
	Status     SubmissionStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}

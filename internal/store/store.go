// Package store persists submissions, company trackers, and localized
// content behind a driver-agnostic interface with SQLite and Postgres
// implementations.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/finwell/finhealth/internal/model"
)

// ErrNotFound reports a lookup for an entity that does not exist.
var ErrNotFound = eris.New("store: not found")

// SubmissionFilter specifies criteria for listing submissions.
type SubmissionFilter struct {
	TrackerKey string                 `json:"tracker_key,omitempty"`
	Status     model.SubmissionStatus `json:"status,omitempty"`
	Limit      int                    `json:"limit,omitempty"`
	Offset     int                    `json:"offset,omitempty"`
}

// TrackerVersion describes one archived revision of a tracker's question
// configuration.
type TrackerVersion struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the persistence interface for the assessment service.
type Store interface {
	// Submissions
	CreateSubmission(ctx context.Context, sub *model.Submission) error
	GetSubmission(ctx context.Context, id string) (*model.Submission, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error)
	UpdateSubmissionResult(ctx context.Context, id string, result *model.SurveyResult) error

	// Trackers. GetTracker returns (nil, nil) for an unknown key; callers
	// fall back to the default question set. Every configuration change
	// bumps the version and archives the previous revision for rollback.
	CreateTracker(ctx context.Context, t *model.Tracker) (*model.Tracker, error)
	GetTracker(ctx context.Context, urlKey string) (*model.Tracker, error)
	ListTrackers(ctx context.Context) ([]model.Tracker, error)
	UpdateTracker(ctx context.Context, t *model.Tracker) (*model.Tracker, error)
	ListTrackerVersions(ctx context.Context, urlKey string) ([]TrackerVersion, error)
	RollbackTracker(ctx context.Context, urlKey string, version int) (*model.Tracker, error)

	// Localized content overrides layered on top of the built-in catalog.
	UpsertContent(ctx context.Context, e model.ContentEntry) error
	ListContent(ctx context.Context) ([]model.ContentEntry, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// trackerConfig is the JSON shape stored for a tracker revision.
type trackerConfig struct {
	Include   []string                          `json:"include,omitempty"`
	Exclude   []string                          `json:"exclude,omitempty"`
	Overrides map[string]model.QuestionOverride `json:"overrides,omitempty"`
}

func configOf(t *model.Tracker) trackerConfig {
	return trackerConfig{Include: t.Include, Exclude: t.Exclude, Overrides: t.Overrides}
}

func (c trackerConfig) applyTo(t *model.Tracker) {
	t.Include = c.Include
	t.Exclude = c.Exclude
	t.Overrides = c.Overrides
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/finwell/finhealth/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS submissions (
	id          TEXT PRIMARY KEY,
	tracker_key TEXT,
	language    TEXT NOT NULL,
	answers     TEXT NOT NULL,
	profile     TEXT,
	result      TEXT,
	status      TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS trackers (
	id           TEXT PRIMARY KEY,
	company_name TEXT NOT NULL,
	url_key      TEXT NOT NULL UNIQUE,
	config       TEXT NOT NULL,
	version      INTEGER NOT NULL DEFAULT 1,
	active       INTEGER NOT NULL DEFAULT 1,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS tracker_versions (
	id         TEXT PRIMARY KEY,
	tracker_id TEXT NOT NULL REFERENCES trackers(id),
	version    INTEGER NOT NULL,
	config     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE(tracker_id, version)
);

CREATE TABLE IF NOT EXISTS content_entries (
	type         TEXT NOT NULL,
	content_id   TEXT NOT NULL,
	language     TEXT NOT NULL,
	title        TEXT NOT NULL DEFAULT '',
	text         TEXT NOT NULL,
	options      TEXT,
	action_steps TEXT,
	active       INTEGER NOT NULL DEFAULT 1,
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (type, content_id, language)
);

CREATE INDEX IF NOT EXISTS idx_submissions_tracker_key ON submissions(tracker_key);
CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions(status);
CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at);
CREATE INDEX IF NOT EXISTS idx_tracker_versions_tracker_id ON tracker_versions(tracker_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateSubmission(ctx context.Context, sub *model.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	answersJSON, err := json.Marshal(sub.Answers)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal answers")
	}
	profileJSON, err := json.Marshal(sub.Profile)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal profile")
	}
	resultJSON, err := json.Marshal(sub.Result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal result")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, tracker_key, language, answers, profile, result, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, nullString(sub.TrackerKey), sub.Language,
		string(answersJSON), string(profileJSON), string(resultJSON),
		string(sub.Status), sub.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert submission")
}

func (s *SQLiteStore) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, tracker_key, language, answers, profile, result, status, created_at
		 FROM submissions WHERE id = ?`,
		id,
	)
	return scanSubmission(row)
}

func (s *SQLiteStore) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error) {
	query := `SELECT id, tracker_key, language, answers, profile, result, status, created_at
	          FROM submissions WHERE 1=1`
	var args []any

	if filter.TrackerKey != "" {
		query += ` AND tracker_key = ?`
		args = append(args, filter.TrackerKey)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	// Limit <= 0 means no cap; batch callers rely on listing everything.
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += ` LIMIT -1`
		}
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list submissions")
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, eris.Wrap(rows.Err(), "sqlite: list submissions iterate")
}

func (s *SQLiteStore) UpdateSubmissionResult(ctx context.Context, id string, result *model.SurveyResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal result")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET result = ?, status = ? WHERE id = ?`,
		string(resultJSON), string(model.SubmissionScored), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update submission result %s", id)
	}
	return checkRowsAffected(res, "submission", id)
}

func (s *SQLiteStore) CreateTracker(ctx context.Context, t *model.Tracker) (*model.Tracker, error) {
	now := time.Now().UTC()
	created := *t
	created.ID = uuid.New().String()
	created.Version = 1
	created.Active = true
	created.CreatedAt = now
	created.UpdatedAt = now

	configJSON, err := json.Marshal(configOf(&created))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal tracker config")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO trackers (id, company_name, url_key, config, version, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.CompanyName, created.URLKey, string(configJSON),
		created.Version, created.Active, now, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert tracker %s", created.URLKey)
	}

	if err := s.archiveVersion(ctx, created.ID, created.Version, string(configJSON), now); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *SQLiteStore) GetTracker(ctx context.Context, urlKey string) (*model.Tracker, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, company_name, url_key, config, version, active, created_at, updated_at
		 FROM trackers WHERE url_key = ?`,
		urlKey,
	)
	t, err := scanTracker(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return t, err
}

func (s *SQLiteStore) ListTrackers(ctx context.Context) ([]model.Tracker, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, company_name, url_key, config, version, active, created_at, updated_at
		 FROM trackers ORDER BY company_name`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list trackers")
	}
	defer rows.Close()

	var trackers []model.Tracker
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, err
		}
		trackers = append(trackers, *t)
	}
	return trackers, eris.Wrap(rows.Err(), "sqlite: list trackers iterate")
}

func (s *SQLiteStore) UpdateTracker(ctx context.Context, t *model.Tracker) (*model.Tracker, error) {
	current, err := s.GetTracker(ctx, t.URLKey)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: tracker %s", t.URLKey)
	}
	return s.storeRevision(ctx, current, configOf(t), t.CompanyName, t.Active)
}

func (s *SQLiteStore) ListTrackerVersions(ctx context.Context, urlKey string) ([]TrackerVersion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tv.version, tv.created_at
		 FROM tracker_versions tv
		 JOIN trackers t ON t.id = tv.tracker_id
		 WHERE t.url_key = ?
		 ORDER BY tv.version DESC`,
		urlKey,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list tracker versions %s", urlKey)
	}
	defer rows.Close()

	var versions []TrackerVersion
	for rows.Next() {
		var v TrackerVersion
		if err := rows.Scan(&v.Version, &v.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan tracker version")
		}
		versions = append(versions, v)
	}
	return versions, eris.Wrap(rows.Err(), "sqlite: list tracker versions iterate")
}

// RollbackTracker restores an archived revision as a new version so the
// history never rewinds.
func (s *SQLiteStore) RollbackTracker(ctx context.Context, urlKey string, version int) (*model.Tracker, error) {
	current, err := s.GetTracker(ctx, urlKey)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: tracker %s", urlKey)
	}

	var configJSON string
	err = s.db.QueryRowContext(ctx,
		`SELECT config FROM tracker_versions WHERE tracker_id = ? AND version = ?`,
		current.ID, version,
	).Scan(&configJSON)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: tracker %s version %d", urlKey, version)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get tracker %s version %d", urlKey, version)
	}

	var cfg trackerConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal tracker config")
	}
	return s.storeRevision(ctx, current, cfg, current.CompanyName, current.Active)
}

// storeRevision bumps the tracker to a new version with the given config
// and archives it.
func (s *SQLiteStore) storeRevision(ctx context.Context, current *model.Tracker, cfg trackerConfig, companyName string, active bool) (*model.Tracker, error) {
	now := time.Now().UTC()
	next := *current
	cfg.applyTo(&next)
	next.CompanyName = companyName
	next.Active = active
	next.Version = current.Version + 1
	next.UpdatedAt = now

	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal tracker config")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE trackers SET company_name = ?, config = ?, version = ?, active = ?, updated_at = ? WHERE id = ?`,
		next.CompanyName, string(configJSON), next.Version, next.Active, now, next.ID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: update tracker %s", next.URLKey)
	}
	if err := checkRowsAffected(res, "tracker", next.URLKey); err != nil {
		return nil, err
	}

	if err := s.archiveVersion(ctx, next.ID, next.Version, string(configJSON), now); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *SQLiteStore) archiveVersion(ctx context.Context, trackerID string, version int, configJSON string, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tracker_versions (id, tracker_id, version, config, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), trackerID, version, configJSON, now,
	)
	return eris.Wrapf(err, "sqlite: archive tracker %s version %d", trackerID, version)
}

func (s *SQLiteStore) UpsertContent(ctx context.Context, e model.ContentEntry) error {
	optionsJSON, err := json.Marshal(e.Options)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal options")
	}
	stepsJSON, err := json.Marshal(e.ActionSteps)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal action steps")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO content_entries (type, content_id, language, title, text, options, action_steps, active, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (type, content_id, language) DO UPDATE SET
		   title = excluded.title, text = excluded.text, options = excluded.options,
		   action_steps = excluded.action_steps, active = excluded.active, updated_at = excluded.updated_at`,
		string(e.Type), e.ContentID, e.Language, e.Title, e.Text,
		string(optionsJSON), string(stepsJSON), e.Active, time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: upsert content %s/%s/%s", e.Type, e.ContentID, e.Language)
}

func (s *SQLiteStore) ListContent(ctx context.Context) ([]model.ContentEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, content_id, language, title, text, options, action_steps, active, updated_at
		 FROM content_entries ORDER BY type, content_id, language`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list content")
	}
	defer rows.Close()

	var entries []model.ContentEntry
	for rows.Next() {
		var e model.ContentEntry
		var optionsJSON, stepsJSON sql.NullString
		if err := rows.Scan(&e.Type, &e.ContentID, &e.Language, &e.Title, &e.Text,
			&optionsJSON, &stepsJSON, &e.Active, &e.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan content entry")
		}
		if optionsJSON.Valid {
			if err := json.Unmarshal([]byte(optionsJSON.String), &e.Options); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal options")
			}
		}
		if stepsJSON.Valid {
			if err := json.Unmarshal([]byte(stepsJSON.String), &e.ActionSteps); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal action steps")
			}
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: list content iterate")
}

// helpers

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSubmission(row scannable) (*model.Submission, error) {
	var sub model.Submission
	var trackerKey sql.NullString
	var answersJSON string
	var profileJSON, resultJSON sql.NullString

	err := row.Scan(&sub.ID, &trackerKey, &sub.Language, &answersJSON,
		&profileJSON, &resultJSON, &sub.Status, &sub.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrap(ErrNotFound, "submission")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan submission")
	}

	sub.TrackerKey = trackerKey.String
	if err := json.Unmarshal([]byte(answersJSON), &sub.Answers); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal answers")
	}
	if profileJSON.Valid && profileJSON.String != "null" {
		if err := json.Unmarshal([]byte(profileJSON.String), &sub.Profile); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal profile")
		}
	}
	if resultJSON.Valid && resultJSON.String != "null" {
		sub.Result = &model.SurveyResult{}
		if err := json.Unmarshal([]byte(resultJSON.String), sub.Result); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal result")
		}
	}
	return &sub, nil
}

func scanTracker(row scannable) (*model.Tracker, error) {
	var t model.Tracker
	var configJSON string

	err := row.Scan(&t.ID, &t.CompanyName, &t.URLKey, &configJSON,
		&t.Version, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrap(ErrNotFound, "tracker")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan tracker")
	}

	var cfg trackerConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal tracker config")
	}
	cfg.applyTo(&t)
	return &t, nil
}

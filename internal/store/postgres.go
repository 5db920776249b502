package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/finwell/finhealth/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, extracted so tests
// can substitute a mock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// the hot submission path.
var preparedStatements = map[string]string{
	"insert_submission": `INSERT INTO submissions (id, tracker_key, language, answers, profile, result, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	"get_submission":    `SELECT id, tracker_key, language, answers, profile, result, status, created_at FROM submissions WHERE id = $1`,
	"get_tracker":       `SELECT id, company_name, url_key, config, version, active, created_at, updated_at FROM trackers WHERE url_key = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool, used by tests.
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS submissions (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	tracker_key TEXT,
	language    TEXT NOT NULL,
	answers     JSONB NOT NULL,
	profile     JSONB,
	result      JSONB,
	status      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS trackers (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	company_name TEXT NOT NULL,
	url_key      TEXT NOT NULL UNIQUE,
	config       JSONB NOT NULL,
	version      INTEGER NOT NULL DEFAULT 1,
	active       BOOLEAN NOT NULL DEFAULT true,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tracker_versions (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	tracker_id TEXT NOT NULL REFERENCES trackers(id),
	version    INTEGER NOT NULL,
	config     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE(tracker_id, version)
);

CREATE TABLE IF NOT EXISTS content_entries (
	type         TEXT NOT NULL,
	content_id   TEXT NOT NULL,
	language     TEXT NOT NULL,
	title        TEXT NOT NULL DEFAULT '',
	text         TEXT NOT NULL,
	options      JSONB,
	action_steps JSONB,
	active       BOOLEAN NOT NULL DEFAULT true,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (type, content_id, language)
);

CREATE INDEX IF NOT EXISTS idx_submissions_tracker_key ON submissions(tracker_key);
CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions(status);
CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_tracker_versions_tracker_id ON tracker_versions(tracker_id);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateSubmission(ctx context.Context, sub *model.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	answersJSON, err := json.Marshal(sub.Answers)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal answers")
	}
	profileJSON, err := json.Marshal(sub.Profile)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal profile")
	}
	resultJSON, err := json.Marshal(sub.Result)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal result")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO submissions (id, tracker_key, language, answers, profile, result, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sub.ID, nullString(sub.TrackerKey), sub.Language,
		answersJSON, profileJSON, resultJSON, string(sub.Status), sub.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert submission")
}

func (s *PostgresStore) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	var sub model.Submission
	var trackerKey *string
	var answersJSON []byte
	var profileJSON, resultJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, tracker_key, language, answers, profile, result, status, created_at
		 FROM submissions WHERE id = $1`,
		id,
	).Scan(&sub.ID, &trackerKey, &sub.Language, &answersJSON,
		&profileJSON, &resultJSON, &sub.Status, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "submission %s", id)
		}
		return nil, eris.Wrapf(err, "postgres: get submission %s", id)
	}

	if err := decodeSubmission(&sub, trackerKey, answersJSON, profileJSON, resultJSON); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *PostgresStore) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]model.Submission, error) {
	query := `SELECT id, tracker_key, language, answers, profile, result, status, created_at
	          FROM submissions WHERE true`
	args := []any{}
	argIdx := 1

	if filter.TrackerKey != "" {
		query += fmt.Sprintf(` AND tracker_key = $%d`, argIdx)
		args = append(args, filter.TrackerKey)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	// Limit <= 0 means no cap; batch callers rely on listing everything.
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argIdx)
		args = append(args, filter.Limit)
		argIdx++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list submissions")
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var sub model.Submission
		var trackerKey *string
		var answersJSON, profileJSON, resultJSON []byte

		if err := rows.Scan(&sub.ID, &trackerKey, &sub.Language, &answersJSON,
			&profileJSON, &resultJSON, &sub.Status, &sub.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan submission")
		}
		if err := decodeSubmission(&sub, trackerKey, answersJSON, profileJSON, resultJSON); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, eris.Wrap(rows.Err(), "postgres: list submissions iterate")
}

func (s *PostgresStore) UpdateSubmissionResult(ctx context.Context, id string, result *model.SurveyResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal result")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE submissions SET result = $1, status = $2 WHERE id = $3`,
		resultJSON, string(model.SubmissionScored), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update submission result %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "submission %s", id)
	}
	return nil
}

func (s *PostgresStore) CreateTracker(ctx context.Context, t *model.Tracker) (*model.Tracker, error) {
	now := time.Now().UTC()
	created := *t
	created.ID = uuid.New().String()
	created.Version = 1
	created.Active = true
	created.CreatedAt = now
	created.UpdatedAt = now

	configJSON, err := json.Marshal(configOf(&created))
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal tracker config")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO trackers (id, company_name, url_key, config, version, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		created.ID, created.CompanyName, created.URLKey, configJSON,
		created.Version, created.Active, now, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert tracker %s", created.URLKey)
	}

	if err := s.archiveVersion(ctx, created.ID, created.Version, configJSON, now); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *PostgresStore) GetTracker(ctx context.Context, urlKey string) (*model.Tracker, error) {
	var t model.Tracker
	var configJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, company_name, url_key, config, version, active, created_at, updated_at
		 FROM trackers WHERE url_key = $1`,
		urlKey,
	).Scan(&t.ID, &t.CompanyName, &t.URLKey, &configJSON,
		&t.Version, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get tracker %s", urlKey)
	}

	var cfg trackerConfig
	if err := json.Unmarshal(configJSON, &cfg); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal tracker config")
	}
	cfg.applyTo(&t)
	return &t, nil
}

func (s *PostgresStore) ListTrackers(ctx context.Context) ([]model.Tracker, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, company_name, url_key, config, version, active, created_at, updated_at
		 FROM trackers ORDER BY company_name`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list trackers")
	}
	defer rows.Close()

	var trackers []model.Tracker
	for rows.Next() {
		var t model.Tracker
		var configJSON []byte
		if err := rows.Scan(&t.ID, &t.CompanyName, &t.URLKey, &configJSON,
			&t.Version, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan tracker")
		}
		var cfg trackerConfig
		if err := json.Unmarshal(configJSON, &cfg); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal tracker config")
		}
		cfg.applyTo(&t)
		trackers = append(trackers, t)
	}
	return trackers, eris.Wrap(rows.Err(), "postgres: list trackers iterate")
}

func (s *PostgresStore) UpdateTracker(ctx context.Context, t *model.Tracker) (*model.Tracker, error) {
	current, err := s.GetTracker(ctx, t.URLKey)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, eris.Wrapf(ErrNotFound, "postgres: tracker %s", t.URLKey)
	}
	return s.storeRevision(ctx, current, configOf(t), t.CompanyName, t.Active)
}

func (s *PostgresStore) ListTrackerVersions(ctx context.Context, urlKey string) ([]TrackerVersion, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT tv.version, tv.created_at
		 FROM tracker_versions tv
		 JOIN trackers t ON t.id = tv.tracker_id
		 WHERE t.url_key = $1
		 ORDER BY tv.version DESC`,
		urlKey,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list tracker versions %s", urlKey)
	}
	defer rows.Close()

	var versions []TrackerVersion
	for rows.Next() {
		var v TrackerVersion
		if err := rows.Scan(&v.Version, &v.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan tracker version")
		}
		versions = append(versions, v)
	}
	return versions, eris.Wrap(rows.Err(), "postgres: list tracker versions iterate")
}

func (s *PostgresStore) RollbackTracker(ctx context.Context, urlKey string, version int) (*model.Tracker, error) {
	current, err := s.GetTracker(ctx, urlKey)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, eris.Wrapf(ErrNotFound, "postgres: tracker %s", urlKey)
	}

	var configJSON []byte
	err = s.pool.QueryRow(ctx,
		`SELECT config FROM tracker_versions WHERE tracker_id = $1 AND version = $2`,
		current.ID, version,
	).Scan(&configJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "postgres: tracker %s version %d", urlKey, version)
		}
		return nil, eris.Wrapf(err, "postgres: get tracker %s version %d", urlKey, version)
	}

	var cfg trackerConfig
	if err := json.Unmarshal(configJSON, &cfg); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal tracker config")
	}
	return s.storeRevision(ctx, current, cfg, current.CompanyName, current.Active)
}

func (s *PostgresStore) storeRevision(ctx context.Context, current *model.Tracker, cfg trackerConfig, companyName string, active bool) (*model.Tracker, error) {
	now := time.Now().UTC()
	next := *current
	cfg.applyTo(&next)
	next.CompanyName = companyName
	next.Active = active
	next.Version = current.Version + 1
	next.UpdatedAt = now

	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal tracker config")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE trackers SET company_name = $1, config = $2, version = $3, active = $4, updated_at = $5 WHERE id = $6`,
		next.CompanyName, configJSON, next.Version, next.Active, now, next.ID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: update tracker %s", next.URLKey)
	}
	if tag.RowsAffected() == 0 {
		return nil, eris.Wrapf(ErrNotFound, "tracker %s", next.URLKey)
	}

	if err := s.archiveVersion(ctx, next.ID, next.Version, configJSON, now); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *PostgresStore) archiveVersion(ctx context.Context, trackerID string, version int, configJSON []byte, now time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tracker_versions (id, tracker_id, version, config, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), trackerID, version, configJSON, now,
	)
	return eris.Wrapf(err, "postgres: archive tracker %s version %d", trackerID, version)
}

func (s *PostgresStore) UpsertContent(ctx context.Context, e model.ContentEntry) error {
	optionsJSON, err := json.Marshal(e.Options)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal options")
	}
	stepsJSON, err := json.Marshal(e.ActionSteps)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal action steps")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO content_entries (type, content_id, language, title, text, options, action_steps, active, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (type, content_id, language) DO UPDATE SET
		   title = $4, text = $5, options = $6, action_steps = $7, active = $8, updated_at = $9`,
		string(e.Type), e.ContentID, e.Language, e.Title, e.Text,
		optionsJSON, stepsJSON, e.Active, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: upsert content %s/%s/%s", e.Type, e.ContentID, e.Language)
}

func (s *PostgresStore) ListContent(ctx context.Context) ([]model.ContentEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT type, content_id, language, title, text, options, action_steps, active, updated_at
		 FROM content_entries ORDER BY type, content_id, language`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list content")
	}
	defer rows.Close()

	var entries []model.ContentEntry
	for rows.Next() {
		var e model.ContentEntry
		var optionsJSON, stepsJSON []byte
		if err := rows.Scan(&e.Type, &e.ContentID, &e.Language, &e.Title, &e.Text,
			&optionsJSON, &stepsJSON, &e.Active, &e.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan content entry")
		}
		if len(optionsJSON) > 0 {
			if err := json.Unmarshal(optionsJSON, &e.Options); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal options")
			}
		}
		if len(stepsJSON) > 0 {
			if err := json.Unmarshal(stepsJSON, &e.ActionSteps); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal action steps")
			}
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "postgres: list content iterate")
}

func decodeSubmission(sub *model.Submission, trackerKey *string, answersJSON, profileJSON, resultJSON []byte) error {
	if trackerKey != nil {
		sub.TrackerKey = *trackerKey
	}
	if err := json.Unmarshal(answersJSON, &sub.Answers); err != nil {
		return eris.Wrap(err, "postgres: unmarshal answers")
	}
	if len(profileJSON) > 0 && string(profileJSON) != "null" {
		if err := json.Unmarshal(profileJSON, &sub.Profile); err != nil {
			return eris.Wrap(err, "postgres: unmarshal profile")
		}
	}
	if len(resultJSON) > 0 && string(resultJSON) != "null" {
		sub.Result = &model.SurveyResult{}
		if err := json.Unmarshal(resultJSON, sub.Result); err != nil {
			return eris.Wrap(err, "postgres: unmarshal result")
		}
	}
	return nil
}

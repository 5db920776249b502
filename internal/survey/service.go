// Package survey wires the scoring pipeline together: question-set
// resolution, answer validation, aggregation, risk classification,
// recommendation selection, and persistence.
package survey

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/finwell/finhealth/internal/cache"
	"github.com/finwell/finhealth/internal/catalog"
	"github.com/finwell/finhealth/internal/config"
	"github.com/finwell/finhealth/internal/locale"
	"github.com/finwell/finhealth/internal/model"
	"github.com/finwell/finhealth/internal/recommend"
	"github.com/finwell/finhealth/internal/scoring"
	"github.com/finwell/finhealth/internal/store"
)

// Service exposes the assessment operations backed by a store and an
// immutable resolver snapshot. Reload swaps the snapshot after reference
// data changes; in-flight requests keep the snapshot they started with.
type Service struct {
	store store.Store
	cache *cache.Cache
	cat   *catalog.Catalog
	cfg   config.ScoringConfig

	mu       sync.RWMutex
	resolver *locale.Resolver
	selector *recommend.Selector
}

// SubmitRequest carries one respondent's submission.
type SubmitRequest struct {
	TrackerKey string         `json:"tracker_key,omitempty"`
	Language   string         `json:"language,omitempty"`
	Answers    map[string]int `json:"answers"`
	Profile    model.Profile  `json:"profile,omitempty"`
}

// New builds a Service and its initial resolver snapshot.
func New(ctx context.Context, st store.Store, ch *cache.Cache, cat *catalog.Catalog, cfg config.ScoringConfig) (*Service, error) {
	if err := scoring.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	s := &Service{store: st, cache: ch, cat: cat, cfg: cfg}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds the resolver snapshot from the catalog plus stored
// content overrides.
func (s *Service) Reload(ctx context.Context) error {
	var stored []model.ContentEntry
	if s.store != nil {
		entries, err := s.store.ListContent(ctx)
		if err != nil {
			return eris.Wrap(err, "survey: load content overrides")
		}
		stored = entries
	}

	resolver := locale.New(s.cat, stored)
	selector := recommend.NewSelector(resolver, s.cfg.RecommendThreshold)

	s.mu.Lock()
	s.resolver = resolver
	s.selector = selector
	s.mu.Unlock()

	zap.L().Info("survey: resolver snapshot rebuilt",
		zap.Int("content_overrides", len(stored)),
	)
	return nil
}

func (s *Service) snapshot() (*locale.Resolver, *recommend.Selector) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver, s.selector
}

// Resolver returns the current resolver snapshot for rendering layers.
func (s *Service) Resolver() *locale.Resolver {
	r, _ := s.snapshot()
	return r
}

// Questions returns the localized question set for a tracker key and
// respondent profile. An empty or unknown key yields the default set.
func (s *Service) Questions(ctx context.Context, trackerKey, lang string, profile model.Profile) ([]locale.LocalizedQuestion, error) {
	tracker, err := s.trackerByKey(ctx, trackerKey)
	if err != nil {
		return nil, err
	}
	resolver, _ := s.snapshot()
	qs := resolver.QuestionSet(tracker, profile)
	return resolver.Questions(qs, lang), nil
}

// QuestionSet resolves the effective (non-localized) question set for a
// tracker key and profile.
func (s *Service) QuestionSet(ctx context.Context, trackerKey string, profile model.Profile) (model.QuestionSet, error) {
	tracker, err := s.trackerByKey(ctx, trackerKey)
	if err != nil {
		return model.QuestionSet{}, err
	}
	resolver, _ := s.snapshot()
	return resolver.QuestionSet(tracker, profile), nil
}

// Score runs the full scoring pipeline over an already-resolved question
// set without touching storage.
func (s *Service) Score(qs model.QuestionSet, answers map[string]int, lang string) (*model.SurveyResult, error) {
	normalized, err := scoring.Normalize(qs, answers)
	if err != nil {
		return nil, err
	}

	pillarScores, overall := scoring.Aggregate(qs, normalized, s.cfg)
	risk := scoring.ClassifyRisk(qs, normalized, catalog.RiskQuestionIDs, s.cfg)

	lang = locale.NormalizeLang(lang)
	_, selector := s.snapshot()
	recs := selector.Select(pillarScores, lang)

	return &model.SurveyResult{
		OverallScore:    overall,
		PillarScores:    pillarScores,
		HealthLabel:     model.LabelForScore(overall),
		RiskTolerance:   risk,
		Recommendations: recs,
		Language:        lang,
	}, nil
}

// Submit validates, scores, and persists one submission.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*model.Submission, error) {
	tracker, err := s.trackerByKey(ctx, req.TrackerKey)
	if err != nil {
		return nil, err
	}

	resolver, _ := s.snapshot()
	qs := resolver.QuestionSet(tracker, req.Profile)

	result, err := s.Score(qs, req.Answers, req.Language)
	if err != nil {
		return nil, err
	}

	sub := &model.Submission{
		TrackerKey: req.TrackerKey,
		Language:   result.Language,
		Answers:    req.Answers,
		Profile:    req.Profile,
		Result:     result,
		Status:     model.SubmissionScored,
	}
	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}

	zap.L().Info("survey: submission scored",
		zap.String("id", sub.ID),
		zap.String("tracker", req.TrackerKey),
		zap.Float64("overall", result.OverallScore),
		zap.String("health", string(result.HealthLabel)),
	)
	return sub, nil
}

// Result loads a stored submission by id.
func (s *Service) Result(ctx context.Context, id string) (*model.Submission, error) {
	return s.store.GetSubmission(ctx, id)
}

// Rescore recomputes a stored submission against the current question
// configuration and scoring weights, persisting the new result.
func (s *Service) Rescore(ctx context.Context, id string) (*model.SurveyResult, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	tracker, err := s.trackerByKey(ctx, sub.TrackerKey)
	if err != nil {
		return nil, err
	}

	resolver, _ := s.snapshot()
	qs := resolver.QuestionSet(tracker, sub.Profile)

	result, err := s.Score(qs, sub.Answers, sub.Language)
	if err != nil {
		return nil, eris.Wrapf(err, "survey: rescore %s", id)
	}
	if err := s.store.UpdateSubmissionResult(ctx, id, result); err != nil {
		return nil, err
	}
	return result, nil
}

// InvalidateTracker drops the cached tracker snapshot after a
// configuration change.
func (s *Service) InvalidateTracker(ctx context.Context, urlKey string) {
	if s.cache == nil || urlKey == "" {
		return
	}
	if err := s.cache.Delete(ctx, trackerCacheKey(urlKey)); err != nil {
		zap.L().Warn("survey: tracker cache invalidation failed",
			zap.String("url_key", urlKey),
			zap.Error(err),
		)
	}
}

func trackerCacheKey(urlKey string) string {
	return "tracker:" + urlKey
}

// trackerByKey resolves a tracker through the cache. Unknown or inactive
// trackers resolve to nil, which selects the default question set.
func (s *Service) trackerByKey(ctx context.Context, urlKey string) (*model.Tracker, error) {
	if urlKey == "" {
		return nil, nil
	}

	if s.cache != nil {
		var cached model.Tracker
		if hit, err := s.cache.Get(ctx, trackerCacheKey(urlKey), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	tracker, err := s.store.GetTracker(ctx, urlKey)
	if err != nil {
		return nil, err
	}
	if tracker == nil {
		zap.L().Debug("survey: unknown tracker key, using default question set",
			zap.String("url_key", urlKey),
		)
		return nil, nil
	}
	if !tracker.Active {
		zap.L().Warn("survey: inactive tracker, using default question set",
			zap.String("url_key", urlKey),
		)
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, trackerCacheKey(urlKey), tracker); err != nil {
			zap.L().Warn("survey: tracker cache set failed", zap.Error(err))
		}
	}
	return tracker, nil
}

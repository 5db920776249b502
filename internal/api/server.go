// Package api exposes the assessment service over HTTP: question delivery,
// submission intake, result retrieval, and the tracker/content admin
// surface.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/finwell/finhealth/internal/config"
	"github.com/finwell/finhealth/internal/model"
	"github.com/finwell/finhealth/internal/report"
	"github.com/finwell/finhealth/internal/scoring"
	"github.com/finwell/finhealth/internal/store"
	"github.com/finwell/finhealth/internal/survey"
)

// Server holds the handler dependencies.
type Server struct {
	svc     *survey.Service
	store   store.Store
	limiter *rate.Limiter
}

// NewServer builds a Server with a submit rate limiter from config.
func NewServer(svc *survey.Service, st store.Store, cfg config.ServerConfig) *Server {
	rps := cfg.SubmitRPS
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.SubmitBurst
	if burst <= 0 {
		burst = 10
	}
	return &Server{
		svc:     svc,
		store:   st,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Router assembles the chi routing tree.
func (s *Server) Router(cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", s.handleQuestions)

		r.Post("/submissions", s.handleSubmit)
		r.Get("/submissions", s.handleListSubmissions)
		r.Get("/submissions/{id}", s.handleGetSubmission)
		r.Get("/submissions/{id}/report", s.handleReport)

		r.Post("/trackers", s.handleCreateTracker)
		r.Get("/trackers", s.handleListTrackers)
		r.Get("/trackers/{key}", s.handleGetTracker)
		r.Put("/trackers/{key}", s.handleUpdateTracker)
		r.Get("/trackers/{key}/versions", s.handleTrackerVersions)
		r.Post("/trackers/{key}/rollback", s.handleRollbackTracker)

		r.Post("/content", s.handleUpsertContent)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleQuestions returns the localized question set. Query params other
// than tracker and lang are treated as respondent profile fields so
// conditional questions resolve before the survey is rendered.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	trackerKey := q.Get("tracker")
	lang := q.Get("lang")

	profile := model.Profile{}
	for key, vals := range q {
		if key == "tracker" || key == "lang" || len(vals) == 0 {
			continue
		}
		profile[key] = vals[0]
	}

	questions, err := s.svc.Questions(r.Context(), trackerKey, lang, profile)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeErrorMsg(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req survey.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Answers) == 0 {
		writeErrorMsg(w, http.StatusBadRequest, "answers are required")
		return
	}

	sub, err := s.svc.Submit(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := s.svc.Result(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	subs, err := s.store.ListSubmissions(r.Context(), store.SubmissionFilter{
		TrackerKey: q.Get("tracker"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sub, err := s.svc.Result(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if sub.Result == nil {
		writeErrorMsg(w, http.StatusConflict, "submission has no result")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report.Render(s.svc.Resolver(), sub.Result))) //nolint:errcheck
}

type trackerRequest struct {
	CompanyName string                            `json:"company_name"`
	URLKey      string                            `json:"url_key"`
	Include     []string                          `json:"include,omitempty"`
	Exclude     []string                          `json:"exclude,omitempty"`
	Overrides   map[string]model.QuestionOverride `json:"overrides,omitempty"`
	Active      *bool                             `json:"active,omitempty"`
}

func (s *Server) handleCreateTracker(w http.ResponseWriter, r *http.Request) {
	var req trackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CompanyName == "" || req.URLKey == "" {
		writeErrorMsg(w, http.StatusBadRequest, "company_name and url_key are required")
		return
	}

	created, err := s.store.CreateTracker(r.Context(), &model.Tracker{
		CompanyName: req.CompanyName,
		URLKey:      req.URLKey,
		Include:     req.Include,
		Exclude:     req.Exclude,
		Overrides:   req.Overrides,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetTracker(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	tracker, err := s.store.GetTracker(r.Context(), key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tracker == nil {
		writeErrorMsg(w, http.StatusNotFound, "tracker not found")
		return
	}
	writeJSON(w, http.StatusOK, tracker)
}

func (s *Server) handleListTrackers(w http.ResponseWriter, r *http.Request) {
	trackers, err := s.store.ListTrackers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trackers": trackers})
}

func (s *Server) handleUpdateTracker(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req trackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	current, err := s.store.GetTracker(r.Context(), key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if current == nil {
		writeErrorMsg(w, http.StatusNotFound, "tracker not found")
		return
	}

	next := *current
	next.Include = req.Include
	next.Exclude = req.Exclude
	next.Overrides = req.Overrides
	if req.CompanyName != "" {
		next.CompanyName = req.CompanyName
	}
	if req.Active != nil {
		next.Active = *req.Active
	}

	updated, err := s.store.UpdateTracker(r.Context(), &next)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.svc.InvalidateTracker(r.Context(), key)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleTrackerVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.store.ListTrackerVersions(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"versions": versions})
}

func (s *Server) handleRollbackTracker(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req struct {
		Version int `json:"version"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Version < 1 {
		writeErrorMsg(w, http.StatusBadRequest, "version must be >= 1")
		return
	}

	rolled, err := s.store.RollbackTracker(r.Context(), key, req.Version)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.svc.InvalidateTracker(r.Context(), key)
	writeJSON(w, http.StatusOK, rolled)
}

func (s *Server) handleUpsertContent(w http.ResponseWriter, r *http.Request) {
	var entry model.ContentEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if entry.Type == "" || entry.ContentID == "" || entry.Language == "" {
		writeErrorMsg(w, http.StatusBadRequest, "type, content_id, and language are required")
		return
	}

	if err := s.store.UpsertContent(r.Context(), entry); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Reload(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// writeError maps service errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *scoring.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "validation failed",
			"missing": verr.Missing,
			"invalid": verr.Invalid,
		})
	case errors.Is(err, store.ErrNotFound):
		writeErrorMsg(w, http.StatusNotFound, "not found")
	default:
		zap.L().Error("api: request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeErrorMsg(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger emits one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("api: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
		)
	})
}

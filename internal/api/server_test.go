package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finwell/finhealth/internal/cache"
	"github.com/finwell/finhealth/internal/catalog"
	"github.com/finwell/finhealth/internal/config"
	"github.com/finwell/finhealth/internal/model"
	"github.com/finwell/finhealth/internal/scoring"
	"github.com/finwell/finhealth/internal/store"
	"github.com/finwell/finhealth/internal/survey"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		AllowedOrigins: []string{"*"},
		SubmitRPS:      1000,
		SubmitBurst:    1000,
	}
}

func newTestHandler(t *testing.T, cfg config.ServerConfig) http.Handler {
	t.Helper()
	ctx := context.Background()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(ctx))

	svc, err := survey.New(ctx, st, cache.NewMemory(time.Minute), catalog.Builtin(), scoring.DefaultConfig())
	require.NoError(t, err)

	return NewServer(svc, st, cfg).Router(cfg)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func fullAnswers(v int) map[string]int {
	answers := make(map[string]int)
	for _, q := range catalog.Builtin().Questions {
		answers[q.ID] = v
	}
	return answers
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, testServerConfig())
	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetQuestionsDefault(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodGet, "/api/questions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Questions []model.Question `json:"questions"`
	}](t, rec)
	assert.Len(t, body.Questions, 15)
}

func TestGetQuestionsProfileParam(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodGet, "/api/questions?children=yes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Questions []model.Question `json:"questions"`
	}](t, rec)
	assert.Len(t, body.Questions, 16)
}

func TestGetQuestionsArabic(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodGet, "/api/questions?lang=ar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ألتزم بميزانية شهرية")
}

func TestSubmitAndFetchResult(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodPost, "/api/submissions", survey.SubmitRequest{
		Language: "en",
		Answers:  fullAnswers(5),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	sub := decode[model.Submission](t, rec)
	require.NotEmpty(t, sub.ID)
	require.NotNil(t, sub.Result)
	assert.Equal(t, 100.0, sub.Result.OverallScore)

	rec = doJSON(t, h, http.MethodGet, "/api/submissions/"+sub.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	fetched := decode[model.Submission](t, rec)
	assert.Equal(t, sub.ID, fetched.ID)
	assert.Equal(t, model.HealthExcellent, fetched.Result.HealthLabel)
}

func TestSubmitValidationFailure(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	answers := fullAnswers(4)
	delete(answers, "q_savings_rate")

	rec := doJSON(t, h, http.MethodPost, "/api/submissions", survey.SubmitRequest{
		Language: "en",
		Answers:  answers,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[struct {
		Error   string   `json:"error"`
		Missing []string `json:"missing"`
	}](t, rec)
	assert.Equal(t, "validation failed", body.Error)
	assert.Contains(t, body.Missing, "q_savings_rate")
}

func TestSubmitEmptyBody(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodPost, "/api/submissions", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitRateLimited(t *testing.T) {
	cfg := testServerConfig()
	cfg.SubmitRPS = 0.01
	cfg.SubmitBurst = 1
	h := newTestHandler(t, cfg)

	req := survey.SubmitRequest{Language: "en", Answers: fullAnswers(3)}

	rec := doJSON(t, h, http.MethodPost, "/api/submissions", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/submissions", req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGetSubmissionNotFound(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodGet, "/api/submissions/unknown-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportEndpoint(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodPost, "/api/submissions", survey.SubmitRequest{
		Language: "en",
		Answers:  fullAnswers(2),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	sub := decode[model.Submission](t, rec)

	rec = doJSON(t, h, http.MethodGet, "/api/submissions/"+sub.ID+"/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "Your Financial Health Report")
	assert.Contains(t, rec.Body.String(), "Overall Score")
}

func TestTrackerLifecycle(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodPost, "/api/trackers", trackerRequest{
		CompanyName: "Acme Corp",
		URLKey:      "acme",
		Exclude:     []string{"q_credit_score"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.Tracker](t, rec)
	assert.Equal(t, 1, created.Version)

	rec = doJSON(t, h, http.MethodGet, "/api/trackers/acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/trackers/acme", trackerRequest{
		Exclude: []string{"q_credit_score", "q_portfolio_diversification"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[model.Tracker](t, rec)
	assert.Equal(t, 2, updated.Version)

	rec = doJSON(t, h, http.MethodGet, "/api/trackers/acme/versions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	versions := decode[struct {
		Versions []store.TrackerVersion `json:"versions"`
	}](t, rec)
	assert.Len(t, versions.Versions, 2)

	rec = doJSON(t, h, http.MethodPost, "/api/trackers/acme/rollback", map[string]int{"version": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rolled := decode[model.Tracker](t, rec)
	assert.Equal(t, 3, rolled.Version)
	assert.Equal(t, []string{"q_credit_score"}, rolled.Exclude)
}

func TestTrackerNotFound(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodGet, "/api/trackers/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/trackers/ghost", trackerRequest{})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/trackers/ghost/rollback", map[string]int{"version": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTrackerRequiresFields(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodPost, "/api/trackers", trackerRequest{URLKey: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContentUpsertRefreshesQuestions(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodPost, "/api/content", model.ContentEntry{
		Type:      model.ContentQuestion,
		ContentID: "q_financial_goals",
		Language:  model.LangArabic,
		Text:      "نص محدث للسؤال",
		Active:    true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/questions?lang=ar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "نص محدث للسؤال")
}

func TestContentUpsertRequiresKey(t *testing.T) {
	h := newTestHandler(t, testServerConfig())

	rec := doJSON(t, h, http.MethodPost, "/api/content", model.ContentEntry{
		Type: model.ContentQuestion, Text: "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

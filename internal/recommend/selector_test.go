package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finwell/finhealth/internal/catalog"
	"github.com/finwell/finhealth/internal/locale"
	"github.com/finwell/finhealth/internal/model"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func builtinSelector(t *testing.T) *Selector {
	t.Helper()
	return NewSelector(locale.New(catalog.Builtin(), nil), 70)
}

func healthyScores() map[model.Pillar]float64 {
	scores := make(map[model.Pillar]float64)
	for _, p := range model.AllPillars() {
		scores[p] = 85
	}
	return scores
}

func TestSelectAllHealthyIsEmpty(t *testing.T) {
	s := builtinSelector(t)
	recs := s.Select(healthyScores(), model.LangEnglish)
	assert.Empty(t, recs)
}

func TestSelectScoreAtThresholdIsHealthy(t *testing.T) {
	s := builtinSelector(t)
	scores := healthyScores()
	scores[model.PillarSavings] = 70
	assert.Empty(t, s.Select(scores, model.LangEnglish))
}

func TestSelectWeakPillarGetsAllItsTemplates(t *testing.T) {
	s := builtinSelector(t)
	scores := healthyScores()
	scores[model.PillarBudgeting] = 50

	recs := s.Select(scores, model.LangEnglish)
	require.Len(t, recs, 2)
	assert.Equal(t, "tpl_budget_monthly", recs[0].TemplateID)
	assert.Equal(t, "tpl_budget_503020", recs[1].TemplateID)
	for _, r := range recs {
		assert.Equal(t, model.PillarBudgeting, r.Pillar)
		assert.Equal(t, 50.0, r.PillarScore)
		assert.Equal(t, model.LangEnglish, r.Language)
		assert.False(t, r.FallbackUsed)
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.Description)
		assert.NotEmpty(t, r.ActionSteps)
	}
}

func TestSelectOrderingPriorityThenScore(t *testing.T) {
	s := builtinSelector(t)
	scores := healthyScores()
	scores[model.PillarBudgeting] = 60
	scores[model.PillarSavings] = 40

	recs := s.Select(scores, model.LangEnglish)
	require.Len(t, recs, 4)

	var ids []string
	for _, r := range recs {
		ids = append(ids, r.TemplateID)
	}
	// Priority 1 templates first; the weaker pillar wins ties.
	assert.Equal(t, []string{
		"tpl_savings_emergency",
		"tpl_budget_monthly",
		"tpl_savings_automate",
		"tpl_budget_503020",
	}, ids)
}

func TestSelectArabicUsesSeededContent(t *testing.T) {
	s := builtinSelector(t)
	scores := healthyScores()
	scores[model.PillarDebtManagement] = 30

	recs := s.Select(scores, "ar")
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, model.LangArabic, r.Language)
		assert.False(t, r.FallbackUsed)
	}

	// Seeded Arabic title must differ from the base English one.
	base := catalog.Builtin().TemplatesByPillar()[model.PillarDebtManagement][0]
	assert.NotEqual(t, base.Title, recs[0].Title)
}

func TestSelectArabicFallsBackWhenUntranslated(t *testing.T) {
	cat := &catalog.Catalog{
		Questions: []model.Question{{
			ID: "q1", Number: 1, Text: "q", Pillar: model.PillarSavings,
			Options: []model.Option{{Value: 1, Label: "a"}, {Value: 5, Label: "b"}},
		}},
		Templates: []model.Template{{
			ID: "tpl_only_english", Pillar: model.PillarSavings, Priority: 1,
			Title: "Save more", Description: "Put money aside.",
			ActionSteps: []string{"Open a savings account."},
		}},
	}
	require.NoError(t, cat.Validate())

	s := NewSelector(locale.New(cat, nil), 70)
	scores := map[model.Pillar]float64{model.PillarSavings: 10}

	recs := s.Select(scores, "ar")
	require.Len(t, recs, 1)
	assert.True(t, recs[0].FallbackUsed)
	assert.Equal(t, "Save more", recs[0].Title)
	assert.Equal(t, model.LangArabic, recs[0].Language)
}

func TestSelectPillarWithoutTemplatesSkipped(t *testing.T) {
	cat := &catalog.Catalog{
		Questions: []model.Question{{
			ID: "q1", Number: 1, Text: "q", Pillar: model.PillarBudgeting,
			Options: []model.Option{{Value: 1, Label: "a"}, {Value: 5, Label: "b"}},
		}},
		Templates: []model.Template{{
			ID: "tpl_budget", Pillar: model.PillarBudgeting, Priority: 1,
			Title: "t", Description: "d",
		}},
	}
	require.NoError(t, cat.Validate())

	s := NewSelector(locale.New(cat, nil), 70)
	scores := map[model.Pillar]float64{
		model.PillarBudgeting:           20,
		model.PillarInvestmentKnowledge: 20,
	}

	recs := s.Select(scores, model.LangEnglish)
	require.Len(t, recs, 1)
	assert.Equal(t, "tpl_budget", recs[0].TemplateID)
}

func TestSelectStoredContentOverridesTemplateText(t *testing.T) {
	stored := []model.ContentEntry{{
		Type:      model.ContentRecommendation,
		ContentID: "tpl_budget_monthly",
		Language:  model.LangEnglish,
		Title:     "Track every dirham",
		Text:      "Updated guidance.",
		Active:    true,
	}}
	s := NewSelector(locale.New(catalog.Builtin(), stored), 70)

	scores := healthyScores()
	scores[model.PillarBudgeting] = 10

	recs := s.Select(scores, model.LangEnglish)
	require.NotEmpty(t, recs)
	assert.Equal(t, "Track every dirham", recs[0].Title)
	assert.Equal(t, "Updated guidance.", recs[0].Description)
	assert.False(t, recs[0].FallbackUsed)
	// Steps fall through to the template when the entry carries none.
	assert.NotEmpty(t, recs[0].ActionSteps)
}

package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwell/finhealth/internal/catalog"
	"github.com/finwell/finhealth/internal/locale"
	"github.com/finwell/finhealth/internal/model"
)

func sampleResult(lang string) *model.SurveyResult {
	return &model.SurveyResult{
		OverallScore: 62.5,
		PillarScores: map[model.Pillar]float64{
			model.PillarBudgeting:           75,
			model.PillarSavings:             25,
			model.PillarDebtManagement:      60,
			model.PillarFinancialPlanning:   70,
			model.PillarInvestmentKnowledge: 80,
		},
		HealthLabel:   model.HealthFair,
		RiskTolerance: model.RiskModerate,
		Recommendations: []model.Recommendation{
			{
				TemplateID:  "tpl_savings_emergency",
				Pillar:      model.PillarSavings,
				Priority:    1,
				Title:       "Build an emergency fund",
				Description: "Start small and keep going.",
				ActionSteps: []string{"Open a dedicated account", "Automate a monthly transfer"},
				Language:    lang,
			},
		},
		Language: lang,
	}
}

func TestRenderEnglish(t *testing.T) {
	r := locale.New(catalog.Builtin(), nil)
	out := Render(r, sampleResult(model.LangEnglish))

	assert.Contains(t, out, "Your Financial Health Report")
	assert.Contains(t, out, "Overall Score: 62.5 / 100 (Fair)")
	assert.Contains(t, out, "Risk Tolerance: Moderate")
	assert.Contains(t, out, "Savings: 25.0")
	assert.Contains(t, out, "1. Build an emergency fund (Savings)")
	assert.Contains(t, out, "- Automate a monthly transfer")
}

func TestRenderArabicLabels(t *testing.T) {
	r := locale.New(catalog.Builtin(), nil)
	out := Render(r, sampleResult(model.LangArabic))

	assert.Contains(t, out, "تقرير صحتك المالية")
	assert.Contains(t, out, "مقبول")
	assert.Contains(t, out, "متوسطة")
	assert.Contains(t, out, "الادخار")
	assert.NotContains(t, out, "ui_report_title")
}

func TestRenderSkipsRecommendationSectionWhenHealthy(t *testing.T) {
	r := locale.New(catalog.Builtin(), nil)
	res := sampleResult(model.LangEnglish)
	res.Recommendations = nil

	out := Render(r, res)
	assert.NotContains(t, out, "Recommendations")
}

func TestRenderPillarOrderIsCanonical(t *testing.T) {
	r := locale.New(catalog.Builtin(), nil)
	out := Render(r, sampleResult(model.LangEnglish))

	iBudget := strings.Index(out, "Budgeting: 75.0")
	iInvest := strings.Index(out, "Investment Knowledge: 80.0")
	require.GreaterOrEqual(t, iBudget, 0)
	require.GreaterOrEqual(t, iInvest, 0)
	assert.Less(t, iBudget, iInvest)
}

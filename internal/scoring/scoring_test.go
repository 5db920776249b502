package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwell/finhealth/internal/config"
	"github.com/finwell/finhealth/internal/model"
)

func likert() []model.Option {
	return []model.Option{
		{Value: 1, Label: "Strongly Disagree"},
		{Value: 2, Label: "Disagree"},
		{Value: 3, Label: "Neutral"},
		{Value: 4, Label: "Agree"},
		{Value: 5, Label: "Strongly Agree"},
	}
}

// fifteenQuestionSet builds three questions per pillar, all weight 1.
func fifteenQuestionSet() model.QuestionSet {
	var qs []model.Question
	n := 1
	for _, p := range model.AllPillars() {
		for i := 0; i < 3; i++ {
			qs = append(qs, model.Question{
				ID:       string(p) + "_" + string(rune('a'+i)),
				Number:   n,
				Pillar:   p,
				Weight:   1,
				Options:  likert(),
				Required: true,
			})
			n++
		}
	}
	return model.QuestionSet{Questions: qs}
}

func answerAll(qs model.QuestionSet, v int) map[string]int {
	raw := make(map[string]int, len(qs.Questions))
	for _, q := range qs.Questions {
		raw[q.ID] = v
	}
	return raw
}

// equalWeights gives every pillar weight 0.2.
func equalWeights() config.ScoringConfig {
	return config.ScoringConfig{
		BudgetingWeight:           0.2,
		SavingsWeight:             0.2,
		DebtManagementWeight:      0.2,
		FinancialPlanningWeight:   0.2,
		InvestmentKnowledgeWeight: 0.2,
		RecommendThreshold:        70,
		RiskLowBelow:              40,
		RiskHighAbove:             70,
	}
}

func TestNormalizedValue(t *testing.T) {
	tests := []struct {
		value int
		want  float64
	}{
		{1, 0}, {2, 25}, {3, 50}, {4, 75}, {5, 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizedValue(tt.value), 0.0001)
	}
}

func TestNormalizeValid(t *testing.T) {
	qs := fifteenQuestionSet()
	raw := answerAll(qs, 3)
	// Answers outside the set are dropped, not rejected.
	raw["stray_question"] = 5

	answers, err := Normalize(qs, raw)
	require.NoError(t, err)
	assert.Len(t, answers, 15)
	_, ok := answers["stray_question"]
	assert.False(t, ok)
}

func TestNormalizeMissingAnswer(t *testing.T) {
	qs := fifteenQuestionSet()
	raw := answerAll(qs, 3)
	delete(raw, "budgeting_a")

	_, err := Normalize(qs, raw)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"budgeting_a"}, verr.Missing)
	assert.Empty(t, verr.Invalid)
	assert.Contains(t, verr.Error(), "budgeting_a")
}

func TestNormalizeInvalidValue(t *testing.T) {
	qs := fifteenQuestionSet()
	raw := answerAll(qs, 3)
	raw["savings_b"] = 9

	_, err := Normalize(qs, raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"savings_b"}, verr.Invalid)
}

func TestAggregateExtremes(t *testing.T) {
	qs := fifteenQuestionSet()
	cfg := equalWeights()

	answers, err := Normalize(qs, answerAll(qs, 1))
	require.NoError(t, err)
	scores, overall := Aggregate(qs, answers, cfg)
	assert.Equal(t, 0.0, overall)
	for p, s := range scores {
		assert.Equal(t, 0.0, s, string(p))
	}

	answers, err = Normalize(qs, answerAll(qs, 5))
	require.NoError(t, err)
	scores, overall = Aggregate(qs, answers, cfg)
	assert.Equal(t, 100.0, overall)
	for p, s := range scores {
		assert.Equal(t, 100.0, s, string(p))
	}
}

func TestAggregateAllNeutral(t *testing.T) {
	// 15 questions, 3 per pillar, all answered 3, equal 0.2 weights.
	qs := fifteenQuestionSet()
	answers, err := Normalize(qs, answerAll(qs, 3))
	require.NoError(t, err)

	scores, overall := Aggregate(qs, answers, equalWeights())
	assert.InDelta(t, 50.0, overall, 0.0001)
	for p, s := range scores {
		assert.InDelta(t, 50.0, s, 0.0001, string(p))
	}
}

func TestAggregateWeightedMeanWithinPillar(t *testing.T) {
	qs := model.QuestionSet{Questions: []model.Question{
		{ID: "a", Pillar: model.PillarSavings, Weight: 2, Options: likert()},
		{ID: "b", Pillar: model.PillarSavings, Weight: 1, Options: likert()},
	}}
	answers := model.AnswerSet{"a": 5, "b": 1}

	scores, _ := Aggregate(qs, answers, equalWeights())
	// (100*2 + 0*1) / 3 = 66.67
	assert.InDelta(t, 66.67, scores[model.PillarSavings], 0.01)
}

func TestAggregateSingleQuestionPillar(t *testing.T) {
	qs := model.QuestionSet{Questions: []model.Question{
		{ID: "only", Pillar: model.PillarBudgeting, Weight: 1, Options: likert()},
	}}
	answers := model.AnswerSet{"only": 4}

	scores, _ := Aggregate(qs, answers, equalWeights())
	assert.InDelta(t, 75.0, scores[model.PillarBudgeting], 0.0001)
}

func TestAggregateMissingPillarRenormalizes(t *testing.T) {
	qs := fifteenQuestionSet()
	// Drop every investment_knowledge question, as a company exclusion would.
	var kept []model.Question
	for _, q := range qs.Questions {
		if q.Pillar != model.PillarInvestmentKnowledge {
			kept = append(kept, q)
		}
	}
	reduced := model.QuestionSet{Questions: kept}

	answers, err := Normalize(reduced, answerAll(reduced, 5))
	require.NoError(t, err)

	scores, overall := Aggregate(reduced, answers, equalWeights())
	assert.Equal(t, 0.0, scores[model.PillarInvestmentKnowledge])
	// Remaining pillars all 100; renormalized weights keep the overall at 100.
	assert.InDelta(t, 100.0, overall, 0.0001)
}

func TestAggregateBounds(t *testing.T) {
	qs := fifteenQuestionSet()
	cfg := DefaultConfig()

	raw := answerAll(qs, 2)
	raw["savings_a"] = 5
	raw["debt_management_c"] = 1

	answers, err := Normalize(qs, raw)
	require.NoError(t, err)

	scores, overall := Aggregate(qs, answers, cfg)
	assert.GreaterOrEqual(t, overall, 0.0)
	assert.LessOrEqual(t, overall, 100.0)
	for p, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0, string(p))
		assert.LessOrEqual(t, s, 100.0, string(p))
	}
}

func TestClassifyRisk(t *testing.T) {
	riskIDs := []string{"savings_a", "debt_management_a", "investment_knowledge_a"}
	qs := fifteenQuestionSet()
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		answers model.AnswerSet
		want    model.RiskTolerance
	}{
		{"all max", model.AnswerSet{"savings_a": 5, "debt_management_a": 5, "investment_knowledge_a": 5}, model.RiskHigh},
		{"all min", model.AnswerSet{"savings_a": 1, "debt_management_a": 1, "investment_knowledge_a": 1}, model.RiskLow},
		{"neutral", model.AnswerSet{"savings_a": 3, "debt_management_a": 3, "investment_knowledge_a": 3}, model.RiskModerate},
		{"boundary low inclusive", model.AnswerSet{"savings_a": 2, "debt_management_a": 3, "investment_knowledge_a": 3}, model.RiskModerate}, // avg 41.67
		{"below low cutoff", model.AnswerSet{"savings_a": 2, "debt_management_a": 2, "investment_knowledge_a": 2}, model.RiskLow},            // avg 25
		{"above high cutoff", model.AnswerSet{"savings_a": 5, "debt_management_a": 5, "investment_knowledge_a": 4}, model.RiskHigh},          // avg 91.67
		{"partial answers", model.AnswerSet{"savings_a": 5}, model.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRisk(qs, tt.answers, riskIDs, cfg))
		})
	}
}

func TestClassifyRiskNoDesignatedQuestions(t *testing.T) {
	// A company excluded every risk question from the resolved set.
	qs := model.QuestionSet{Questions: []model.Question{
		{ID: "budgeting_a", Pillar: model.PillarBudgeting, Options: likert()},
	}}
	got := ClassifyRisk(qs, model.AnswerSet{"budgeting_a": 5}, []string{"q_risk_comfort"}, DefaultConfig())
	assert.Equal(t, model.RiskModerate, got)
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(DefaultConfig()))

	bad := DefaultConfig()
	bad.SavingsWeight = 0.5
	assert.Error(t, ValidateConfig(bad))

	neg := DefaultConfig()
	neg.BudgetingWeight = -0.1
	assert.Error(t, ValidateConfig(neg))

	thr := DefaultConfig()
	thr.RecommendThreshold = 120
	assert.Error(t, ValidateConfig(thr))

	risk := DefaultConfig()
	risk.RiskLowBelow = 80
	risk.RiskHighAbove = 40
	assert.Error(t, ValidateConfig(risk))
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwell/finhealth/internal/model"
)

func TestBuiltinValidates(t *testing.T) {
	c := Builtin()
	require.NoError(t, c.Validate())
}

func TestBuiltinShape(t *testing.T) {
	c := Builtin()

	// Every pillar has at least three questions.
	byPillar := c.QuestionSet().ByPillar()
	for _, p := range model.AllPillars() {
		assert.GreaterOrEqual(t, len(byPillar[p]), 3, string(p))
	}

	// Every pillar has at least one recommendation template.
	tpls := c.TemplatesByPillar()
	for _, p := range model.AllPillars() {
		assert.NotEmpty(t, tpls[p], string(p))
	}

	// Exactly one conditional question, gated on children.
	var conditional []model.Question
	for _, q := range c.Questions {
		if q.IncludeIf != nil {
			conditional = append(conditional, q)
		}
	}
	require.Len(t, conditional, 1)
	assert.Equal(t, "q_children_planning", conditional[0].ID)
}

func TestRiskQuestionsExist(t *testing.T) {
	qs := Builtin().QuestionSet()
	for _, id := range RiskQuestionIDs {
		_, ok := qs.Question(id)
		assert.True(t, ok, id)
	}
}

func TestValidateRejectsBadCatalog(t *testing.T) {
	tests := []struct {
		name string
		c    Catalog
	}{
		{"duplicate question id", Catalog{Questions: []model.Question{
			{ID: "a", Pillar: model.PillarSavings, Options: agreeScale()},
			{ID: "a", Pillar: model.PillarSavings, Options: agreeScale()},
		}}},
		{"unknown pillar", Catalog{Questions: []model.Question{
			{ID: "a", Pillar: "wealth", Options: agreeScale()},
		}}},
		{"no options", Catalog{Questions: []model.Question{
			{ID: "a", Pillar: model.PillarSavings},
		}}},
		{"option out of range", Catalog{Questions: []model.Question{
			{ID: "a", Pillar: model.PillarSavings, Options: []model.Option{{Value: 7, Label: "x"}}},
		}}},
		{"template priority zero", Catalog{Templates: []model.Template{
			{ID: "t", Pillar: model.PillarSavings, Priority: 0},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.c.Validate())
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	raw := `
questions:
  - id: q_custom
    number: 1
    text: "I plan my spending."
    pillar: budgeting
    weight: 1
    required: true
    options:
      - {value: 1, label: "Never"}
      - {value: 5, label: "Always"}
templates:
  - id: tpl_custom
    pillar: budgeting
    priority: 1
    title: "Plan it"
    description: "Make a plan."
    action_steps: ["Write it down"]
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, c.Questions, 1)
	assert.Equal(t, model.PillarBudgeting, c.Questions[0].Pillar)
	assert.Len(t, c.Templates, 1)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile("/nonexistent/catalog.yaml")
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions: {not: a list}"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

// Package catalog provides the built-in reference data for the assessment:
// the base question catalog, recommendation templates, and seed translations.
// The built-in data can be replaced wholesale from a YAML file.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/finwell/finhealth/internal/model"
)

// Catalog bundles the read-only reference data consulted during scoring.
type Catalog struct {
	Questions []model.Question     `yaml:"questions"`
	Templates []model.Template     `yaml:"templates"`
	Content   []model.ContentEntry `yaml:"content"`
}

// Builtin returns the embedded default catalog.
func Builtin() *Catalog {
	return &Catalog{
		Questions: builtinQuestions(),
		Templates: builtinTemplates(),
		Content:   builtinContent(),
	}
}

// LoadFile reads a catalog from a YAML file. The file replaces the built-in
// catalog entirely; partial overrides go through the content store instead.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse %s", path)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// QuestionSet returns the base (global default) question set.
func (c *Catalog) QuestionSet() model.QuestionSet {
	qs := make([]model.Question, len(c.Questions))
	copy(qs, c.Questions)
	return model.QuestionSet{Questions: qs}
}

// TemplatesByPillar indexes the recommendation templates by pillar.
func (c *Catalog) TemplatesByPillar() map[model.Pillar][]model.Template {
	byPillar := make(map[model.Pillar][]model.Template)
	for _, t := range c.Templates {
		byPillar[t.Pillar] = append(byPillar[t.Pillar], t)
	}
	return byPillar
}

// Validate checks the catalog for internal consistency: unique question ids,
// known pillars, and option values on the 1-5 scale.
func (c *Catalog) Validate() error {
	var errs []string

	seen := make(map[string]bool, len(c.Questions))
	for _, q := range c.Questions {
		if q.ID == "" {
			errs = append(errs, "question with empty id")
			continue
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question id %s", q.ID))
		}
		seen[q.ID] = true

		if !q.Pillar.Valid() {
			errs = append(errs, fmt.Sprintf("question %s: unknown pillar %q", q.ID, q.Pillar))
		}
		if len(q.Options) == 0 {
			errs = append(errs, fmt.Sprintf("question %s: no options", q.ID))
		}
		for _, o := range q.Options {
			if o.Value < 1 || o.Value > 5 {
				errs = append(errs, fmt.Sprintf("question %s: option value %d out of 1-5 range", q.ID, o.Value))
			}
		}
		if q.Weight < 0 {
			errs = append(errs, fmt.Sprintf("question %s: negative weight", q.ID))
		}
	}

	seenTpl := make(map[string]bool, len(c.Templates))
	for _, t := range c.Templates {
		if t.ID == "" {
			errs = append(errs, "template with empty id")
			continue
		}
		if seenTpl[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate template id %s", t.ID))
		}
		seenTpl[t.ID] = true

		if !t.Pillar.Valid() {
			errs = append(errs, fmt.Sprintf("template %s: unknown pillar %q", t.ID, t.Pillar))
		}
		if t.Priority < 1 {
			errs = append(errs, fmt.Sprintf("template %s: priority must be >= 1", t.ID))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("catalog: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

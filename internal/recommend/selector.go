// Package recommend selects and ranks localized recommendation templates
// for pillars that score below the improvement threshold.
package recommend

import (
	"sort"

	"go.uber.org/zap"

	"github.com/finwell/finhealth/internal/locale"
	"github.com/finwell/finhealth/internal/model"
)

// Selector picks recommendations from the resolver's template catalog.
type Selector struct {
	resolver  *locale.Resolver
	threshold float64
}

// NewSelector creates a Selector. Pillars scoring below threshold select
// their templates.
func NewSelector(resolver *locale.Resolver, threshold float64) *Selector {
	return &Selector{resolver: resolver, threshold: threshold}
}

// Select returns the ordered recommendation list for the given pillar
// scores: primary key template priority ascending, secondary key pillar
// score ascending so the weakest pillars surface first among equals.
// Every pillar at or above the threshold contributes nothing; a pillar with
// no registered templates is skipped rather than failing the pipeline.
func (s *Selector) Select(scores map[model.Pillar]float64, lang string) []model.Recommendation {
	lang = locale.NormalizeLang(lang)

	var recs []model.Recommendation
	for _, p := range model.AllPillars() {
		score, ok := scores[p]
		if !ok || score >= s.threshold {
			continue
		}

		templates := s.resolver.Templates(p)
		if len(templates) == 0 {
			// Reference-data gap: degrade, never block the score.
			zap.L().Warn("recommend: no templates registered for pillar",
				zap.String("pillar", string(p)),
			)
			continue
		}

		for _, tpl := range templates {
			recs = append(recs, s.localize(tpl, score, lang))
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority < recs[j].Priority
		}
		if recs[i].PillarScore != recs[j].PillarScore {
			return recs[i].PillarScore < recs[j].PillarScore
		}
		return recs[i].TemplateID < recs[j].TemplateID
	})

	return recs
}

// localize resolves a template's display text for the requested language,
// falling back per field to the default-language template content.
func (s *Selector) localize(tpl model.Template, score float64, lang string) model.Recommendation {
	rec := model.Recommendation{
		TemplateID:  tpl.ID,
		Pillar:      tpl.Pillar,
		Priority:    tpl.Priority,
		Title:       tpl.Title,
		Description: tpl.Description,
		ActionSteps: tpl.ActionSteps,
		Language:    lang,
		PillarScore: score,
	}

	entry, found, fellBack := s.resolver.Entry(model.ContentRecommendation, tpl.ID, lang)
	if !found {
		rec.FallbackUsed = lang != model.LangEnglish
		return rec
	}

	if entry.Title != "" {
		rec.Title = entry.Title
	}
	if entry.Text != "" {
		rec.Description = entry.Text
	}
	if len(entry.ActionSteps) > 0 {
		rec.ActionSteps = entry.ActionSteps
	}
	rec.FallbackUsed = fellBack
	return rec
}

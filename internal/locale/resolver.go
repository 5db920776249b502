// Package locale resolves display text and question sets for a requested
// language and optional company context. A Resolver is an immutable snapshot
// built from the catalog, stored content entries, and a tracker
// configuration; it is rebuilt when administrators change reference data and
// never mutated in place.
package locale

import (
	"golang.org/x/text/language"

	"github.com/finwell/finhealth/internal/catalog"
	"github.com/finwell/finhealth/internal/model"
)

var supportedTags = []language.Tag{
	language.English, // index 0 is the default and fallback target
	language.Arabic,
}

var matcher = language.NewMatcher(supportedTags)

// NormalizeLang maps an arbitrary BCP 47 tag onto a supported language code.
// Unparseable or unsupported tags fall back to English.
func NormalizeLang(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return model.LangEnglish
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return model.LangEnglish
	}
	base, _ := supportedTags[idx].Base()
	return base.String()
}

type contentKey struct {
	typ  model.ContentType
	id   string
	lang string
}

// Resolver is a read-only snapshot of localized reference data.
type Resolver struct {
	base      model.QuestionSet
	templates map[model.Pillar][]model.Template
	content   map[contentKey]model.ContentEntry
}

// New builds a Resolver from the catalog plus stored content entries.
// Stored entries take precedence over the catalog's seed translations.
func New(cat *catalog.Catalog, stored []model.ContentEntry) *Resolver {
	content := make(map[contentKey]model.ContentEntry, len(cat.Content)+len(stored))
	for _, lists := range [][]model.ContentEntry{cat.Content, stored} {
		for _, e := range lists {
			if !e.Active {
				continue
			}
			content[contentKey{e.Type, e.ContentID, NormalizeLang(e.Language)}] = e
		}
	}
	return &Resolver{
		base:      cat.QuestionSet(),
		templates: cat.TemplatesByPillar(),
		content:   content,
	}
}

// Templates returns the recommendation templates for a pillar.
func (r *Resolver) Templates(p model.Pillar) []model.Template {
	return r.templates[p]
}

// Entry looks up a localized content entry for (type, id, lang), falling
// back to the default language. The second return reports whether an entry
// was found at all; the third reports whether the default-language fallback
// was used.
func (r *Resolver) Entry(typ model.ContentType, id, lang string) (model.ContentEntry, bool, bool) {
	lang = NormalizeLang(lang)
	if e, ok := r.content[contentKey{typ, id, lang}]; ok {
		return e, true, false
	}
	if lang != model.LangEnglish {
		if e, ok := r.content[contentKey{typ, id, model.LangEnglish}]; ok {
			return e, true, true
		}
	}
	return model.ContentEntry{}, false, false
}

// Resolve returns display text for a content id in the requested language.
// Resolution never fails: requested language -> default language -> base
// catalog definition -> the raw content id. The bool reports whether any
// fallback step was taken.
func (r *Resolver) Resolve(typ model.ContentType, id, lang string) (string, bool) {
	lang = NormalizeLang(lang)

	if e, ok, fellBack := r.Entry(typ, id, lang); ok {
		return e.Text, fellBack
	}

	// Base catalog text is authored in the default language.
	if typ == model.ContentQuestion {
		if q, ok := r.base.Question(id); ok {
			return q.Text, lang != model.LangEnglish
		}
	}

	return id, true
}

// QuestionSet resolves the effective question set for an optional tracker
// and respondent profile: tracker include/exclude selection, per-question
// overrides, then conditional-inclusion rules.
func (r *Resolver) QuestionSet(tracker *model.Tracker, profile model.Profile) model.QuestionSet {
	var out []model.Question
	for _, q := range r.base.Questions {
		if tracker != nil {
			if !tracker.Includes(q.ID) || tracker.Excludes(q.ID) {
				continue
			}
			if ov, ok := tracker.Overrides[q.ID]; ok {
				q = applyOverride(q, ov)
			}
		}
		if !EvalCondition(q.IncludeIf, profile) {
			continue
		}
		out = append(out, q)
	}
	return model.QuestionSet{Questions: out}
}

func applyOverride(q model.Question, ov model.QuestionOverride) model.Question {
	if ov.Text != "" {
		q.Text = ov.Text
	}
	if len(ov.Options) > 0 {
		q.Options = ov.Options
	}
	if ov.Weight > 0 {
		q.Weight = ov.Weight
	}
	if ov.IncludeIf != nil {
		q.IncludeIf = ov.IncludeIf
	}
	return q
}

// LocalizedQuestion is a question with display text resolved for one
// language, ready for the survey frontend.
type LocalizedQuestion struct {
	model.Question
	Language     string `json:"language"`
	FallbackUsed bool   `json:"fallback_used,omitempty"`
}

// Questions localizes a resolved question set: question text and option
// labels come from content entries when present, base definitions otherwise.
func (r *Resolver) Questions(qs model.QuestionSet, lang string) []LocalizedQuestion {
	lang = NormalizeLang(lang)
	out := make([]LocalizedQuestion, 0, len(qs.Questions))
	for _, q := range qs.Questions {
		lq := LocalizedQuestion{Question: q, Language: lang}
		if e, ok, fellBack := r.Entry(model.ContentQuestion, q.ID, lang); ok {
			if e.Text != "" {
				lq.Text = e.Text
			}
			if len(e.Options) > 0 {
				lq.Options = e.Options
			}
			lq.FallbackUsed = fellBack
		} else {
			lq.FallbackUsed = lang != model.LangEnglish
		}
		out = append(out, lq)
	}
	return out
}

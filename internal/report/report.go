// Package report renders a scored submission as localized plain text for
// terminal output and email bodies.
package report

import (
	"fmt"
	"strings"

	"github.com/finwell/finhealth/internal/locale"
	"github.com/finwell/finhealth/internal/model"
)

// Render formats a survey result in the result's language. Labels resolve
// through the content resolver so stored translations apply here too.
func Render(r *locale.Resolver, result *model.SurveyResult) string {
	lang := result.Language
	ui := func(id string) string {
		text, _ := r.Resolve(model.ContentUI, id, lang)
		return text
	}

	var b strings.Builder

	title := ui("ui_report_title")
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))) + "\n\n")

	healthLabel := ui("label_" + string(result.HealthLabel))
	fmt.Fprintf(&b, "%s: %.1f / 100 (%s)\n", ui("ui_overall_score"), result.OverallScore, healthLabel)
	fmt.Fprintf(&b, "%s: %s\n\n", ui("ui_risk_tolerance"), ui("risk_"+string(result.RiskTolerance)))

	for _, p := range model.AllPillars() {
		score, ok := result.PillarScores[p]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %.1f\n", ui("pillar_"+string(p)), score)
	}

	if len(result.Recommendations) > 0 {
		heading := ui("ui_recommendations")
		b.WriteString("\n" + heading + "\n")
		b.WriteString(strings.Repeat("-", len([]rune(heading))) + "\n")

		for i, rec := range result.Recommendations {
			fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, rec.Title, ui("pillar_"+string(rec.Pillar)))
			if rec.Description != "" {
				fmt.Fprintf(&b, "   %s\n", rec.Description)
			}
			for _, step := range rec.ActionSteps {
				fmt.Fprintf(&b, "   - %s\n", step)
			}
		}
	}

	return b.String()
}

package scoring

import (
	"math"

	"github.com/finwell/finhealth/internal/config"
	"github.com/finwell/finhealth/internal/model"
)

// NormalizedValue maps a 1-5 Likert value onto the 0-100 scale:
// 1 -> 0, 5 -> 100, linear in between.
func NormalizedValue(v int) float64 {
	return float64(v-1) / 4 * 100
}

// Aggregate computes the five pillar scores and the overall score from a
// validated answer set. A pillar with no questions in the resolved set
// scores 0 and is excluded from the overall weighting; the weights of the
// present pillars are rescaled to sum to 1.
func Aggregate(qs model.QuestionSet, answers model.AnswerSet, cfg config.ScoringConfig) (map[model.Pillar]float64, float64) {
	byPillar := qs.ByPillar()
	weights := PillarWeights(cfg)

	scores := make(map[model.Pillar]float64, len(weights))
	var overall, presentWeight float64

	for _, p := range model.AllPillars() {
		questions := byPillar[p]
		if len(questions) == 0 {
			scores[p] = 0
			continue
		}

		var weightedSum, weightSum float64
		for _, q := range questions {
			w := q.Weight
			if w <= 0 {
				w = 1
			}
			weightedSum += NormalizedValue(answers[q.ID]) * w
			weightSum += w
		}

		score := round2(weightedSum / weightSum)
		scores[p] = score
		overall += score * weights[p]
		presentWeight += weights[p]
	}

	// Rescale so that present pillar weights sum to 1.
	if presentWeight > 0 {
		overall /= presentWeight
	}
	return scores, round2(overall)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package scoring

import (
	"github.com/finwell/finhealth/internal/config"
	"github.com/finwell/finhealth/internal/model"
)

// ClassifyRisk derives the risk tolerance label from the designated risk
// question subset. Thresholds apply to the average normalized value:
// below RiskLowBelow -> low, above RiskHighAbove -> high, otherwise
// moderate. When none of the designated questions survive the resolved set
// (a company excluded them), the label defaults to moderate.
func ClassifyRisk(qs model.QuestionSet, answers model.AnswerSet, riskIDs []string, cfg config.ScoringConfig) model.RiskTolerance {
	var sum float64
	var n int
	for _, id := range riskIDs {
		if _, ok := qs.Question(id); !ok {
			continue
		}
		v, ok := answers[id]
		if !ok {
			continue
		}
		sum += NormalizedValue(v)
		n++
	}

	if n == 0 {
		return model.RiskModerate
	}

	avg := sum / float64(n)
	switch {
	case avg < cfg.RiskLowBelow:
		return model.RiskLow
	case avg > cfg.RiskHighAbove:
		return model.RiskHigh
	default:
		return model.RiskModerate
	}
}

// Package scoring implements the deterministic financial-health scoring core:
// answer validation, pillar aggregation, and risk tolerance classification.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/finwell/finhealth/internal/config"
	"github.com/finwell/finhealth/internal/model"
)

// DefaultConfig returns a config.ScoringConfig with the documented defaults.
// Weights sum to 1.0.
func DefaultConfig() config.ScoringConfig {
	return config.ScoringConfig{
		BudgetingWeight:           0.25,
		SavingsWeight:             0.20,
		DebtManagementWeight:      0.20,
		FinancialPlanningWeight:   0.20,
		InvestmentKnowledgeWeight: 0.15,

		RecommendThreshold: 70,
		RiskLowBelow:       40,
		RiskHighAbove:      70,
	}
}

// PillarWeights maps the named config weights onto the pillar enum.
func PillarWeights(c config.ScoringConfig) map[model.Pillar]float64 {
	return map[model.Pillar]float64{
		model.PillarBudgeting:           c.BudgetingWeight,
		model.PillarSavings:             c.SavingsWeight,
		model.PillarDebtManagement:      c.DebtManagementWeight,
		model.PillarFinancialPlanning:   c.FinancialPlanningWeight,
		model.PillarInvestmentKnowledge: c.InvestmentKnowledgeWeight,
	}
}

// ValidateConfig checks that a ScoringConfig is internally consistent.
func ValidateConfig(c config.ScoringConfig) error {
	var errs []string

	weights := PillarWeights(c)
	var sum float64
	for p, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s weight must be >= 0", p))
		}
		sum += w
	}

	if sum <= 0 {
		errs = append(errs, "weight sum must be > 0")
	} else if math.Abs(sum-1.0) > 0.01 {
		errs = append(errs, fmt.Sprintf("weights should sum to 1.0, got %.3f", sum))
	}

	if c.RecommendThreshold < 0 || c.RecommendThreshold > 100 {
		errs = append(errs, "recommend_threshold must be between 0 and 100")
	}
	if c.RiskLowBelow < 0 || c.RiskLowBelow > 100 {
		errs = append(errs, "risk_low_below must be between 0 and 100")
	}
	if c.RiskHighAbove < 0 || c.RiskHighAbove > 100 {
		errs = append(errs, "risk_high_above must be between 0 and 100")
	}
	if c.RiskLowBelow > c.RiskHighAbove {
		errs = append(errs, "risk_low_below must be <= risk_high_above")
	}

	if len(errs) > 0 {
		return eris.Errorf("scoring: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

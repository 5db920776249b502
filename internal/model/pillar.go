package model

// Pillar is one of the five financial-health dimensions every question
// and recommendation template belongs to.
type Pillar string

const (
	PillarBudgeting           Pillar = "budgeting"
	PillarSavings             Pillar = "savings"
	PillarDebtManagement      Pillar = "debt_management"
	PillarFinancialPlanning   Pillar = "financial_planning"
	PillarInvestmentKnowledge Pillar = "investment_knowledge"
)

// AllPillars returns the pillars in canonical display order.
func AllPillars() []Pillar {
	return []Pillar{
		PillarBudgeting,
		PillarSavings,
		PillarDebtManagement,
		PillarFinancialPlanning,
		PillarInvestmentKnowledge,
	}
}

// Valid reports whether p is a known pillar.
func (p Pillar) Valid() bool {
	switch p {
	case PillarBudgeting, PillarSavings, PillarDebtManagement,
		PillarFinancialPlanning, PillarInvestmentKnowledge:
		return true
	}
	return false
}

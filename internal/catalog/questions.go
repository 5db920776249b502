package catalog

import "github.com/finwell/finhealth/internal/model"

// RiskQuestionIDs is the fixed subset of answers feeding the risk tolerance
// classifier. Emergency preparedness and debt load bound risk capacity;
// stated risk comfort captures appetite.
var RiskQuestionIDs = []string{
	"q_emergency_fund",
	"q_debt_ratio",
	"q_risk_comfort",
}

func agreeScale() []model.Option {
	return []model.Option{
		{Value: 5, Label: "Strongly Agree"},
		{Value: 4, Label: "Agree"},
		{Value: 3, Label: "Neutral"},
		{Value: 2, Label: "Disagree"},
		{Value: 1, Label: "Strongly Disagree"},
	}
}

func frequencyScale() []model.Option {
	return []model.Option{
		{Value: 5, Label: "Consistently every month"},
		{Value: 4, Label: "Frequently but not consistently"},
		{Value: 3, Label: "Occasionally"},
		{Value: 2, Label: "Rarely"},
		{Value: 1, Label: "Never"},
	}
}

func builtinQuestions() []model.Question {
	return []model.Question{
		// Budgeting.
		{
			ID: "q_budget_tracking", Number: 1,
			Text:   "I follow a monthly budget and track my expenses.",
			Pillar: model.PillarBudgeting, Weight: 2,
			Options: frequencyScale(), Required: true,
		},
		{
			ID: "q_spending_control", Number: 2,
			Text:   "I spend less than I earn every month.",
			Pillar: model.PillarBudgeting, Weight: 1,
			Options: frequencyScale(), Required: true,
		},
		{
			ID: "q_expense_review", Number: 3,
			Text:   "I review my recurring expenses and cut what I no longer need.",
			Pillar: model.PillarBudgeting, Weight: 1,
			Options: frequencyScale(), Required: true,
		},

		// Savings.
		{
			ID: "q_savings_rate", Number: 4,
			Text:   "I save a fixed portion of my income every month.",
			Pillar: model.PillarSavings, Weight: 1,
			Options: frequencyScale(), Required: true,
		},
		{
			ID: "q_emergency_fund", Number: 5,
			Text:   "I have an emergency fund covering at least three months of expenses.",
			Pillar: model.PillarSavings, Weight: 2,
			Options: agreeScale(), Required: true,
		},
		{
			ID: "q_savings_optimization", Number: 6,
			Text:   "My savings earn a competitive return (interest or profit rate).",
			Pillar: model.PillarSavings, Weight: 1,
			Options: agreeScale(), Required: true,
		},

		// Debt management.
		{
			ID: "q_payment_history", Number: 7,
			Text:   "I pay all my bills and loan installments on time.",
			Pillar: model.PillarDebtManagement, Weight: 1,
			Options: frequencyScale(), Required: true,
		},
		{
			ID: "q_debt_ratio", Number: 8,
			Text:   "My monthly debt payments are a small share of my income.",
			Pillar: model.PillarDebtManagement, Weight: 1,
			Options: agreeScale(), Required: true,
		},
		{
			ID: "q_credit_score", Number: 9,
			Text:   "I know my credit score and check my credit report regularly.",
			Pillar: model.PillarDebtManagement, Weight: 1,
			Options: agreeScale(), Required: true,
		},

		// Financial planning.
		{
			ID: "q_retirement_planning", Number: 10,
			Text:   "I contribute regularly towards retirement savings.",
			Pillar: model.PillarFinancialPlanning, Weight: 2,
			Options: agreeScale(), Required: true,
		},
		{
			ID: "q_insurance_coverage", Number: 11,
			Text:   "I have adequate insurance protecting my family and income.",
			Pillar: model.PillarFinancialPlanning, Weight: 1,
			Options: agreeScale(), Required: true,
		},
		{
			ID: "q_financial_goals", Number: 12,
			Text:   "I have written financial goals with target amounts and dates.",
			Pillar: model.PillarFinancialPlanning, Weight: 1,
			Options: agreeScale(), Required: true,
		},
		{
			ID: "q_children_planning", Number: 13,
			Text:   "I am saving for my children's education and future needs.",
			Pillar: model.PillarFinancialPlanning, Weight: 1,
			Options: agreeScale(), Required: true,
			IncludeIf: &model.Condition{
				Field: "children", Op: model.OpEq, Value: "yes",
			},
		},

		// Investment knowledge.
		{
			ID: "q_investment_basics", Number: 14,
			Text:   "I understand the main investment types and how they differ.",
			Pillar: model.PillarInvestmentKnowledge, Weight: 1,
			Options: agreeScale(), Required: true,
		},
		{
			ID: "q_risk_comfort", Number: 15,
			Text:   "I am comfortable accepting short-term losses for long-term gains.",
			Pillar: model.PillarInvestmentKnowledge, Weight: 1,
			Options: agreeScale(), Required: true,
		},
		{
			ID: "q_portfolio_diversification", Number: 16,
			Text:   "My investments are spread across different asset types.",
			Pillar: model.PillarInvestmentKnowledge, Weight: 1,
			Options: agreeScale(), Required: true,
		},
	}
}

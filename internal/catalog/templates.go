package catalog

import "github.com/finwell/finhealth/internal/model"

func builtinTemplates() []model.Template {
	return []model.Template{
		// Budgeting.
		{
			ID: "tpl_budget_monthly", Pillar: model.PillarBudgeting, Priority: 1,
			Title: "Create a Detailed Monthly Budget",
			Description: "Start tracking your income and expenses to gain better control over " +
				"your finances. A budget shows where your money goes and where to improve.",
			ActionSteps: []string{
				"List all sources of monthly income",
				"Track all expenses for one month",
				"Categorize expenses (housing, food, transportation)",
				"Set spending limits for each category",
				"Review and adjust monthly",
			},
		},
		{
			ID: "tpl_budget_503020", Pillar: model.PillarBudgeting, Priority: 2,
			Title: "Use the 50/30/20 Rule",
			Description: "Allocate 50% of income to needs, 30% to wants, and 20% to savings " +
				"and debt repayment to keep your spending balanced.",
			ActionSteps: []string{
				"Calculate your after-tax monthly income",
				"Allocate 50% to essential expenses",
				"Set aside 30% for discretionary spending",
				"Dedicate 20% to savings and debt payments",
			},
		},

		// Savings.
		{
			ID: "tpl_savings_emergency", Pillar: model.PillarSavings, Priority: 1,
			Title: "Build an Emergency Fund",
			Description: "Start with a small initial emergency fund, then work towards three " +
				"to six months of expenses to absorb unexpected financial shocks.",
			ActionSteps: []string{
				"Open a separate savings account for emergencies",
				"Start with a small fixed monthly amount",
				"Automate transfers to your emergency fund",
				"Build up to your first milestone",
				"Continue until you have 3-6 months of expenses",
			},
		},
		{
			ID: "tpl_savings_automate", Pillar: model.PillarSavings, Priority: 2,
			Title: "Automate Your Savings",
			Description: "Set up automatic transfers to savings accounts to make saving " +
				"effortless and consistent.",
			ActionSteps: []string{
				"Set up an automatic transfer on payday",
				"Start with 10% of income if possible",
				"Use separate accounts for different goals",
				"Review and increase amounts quarterly",
			},
		},

		// Debt management.
		{
			ID: "tpl_debt_strategy", Pillar: model.PillarDebtManagement, Priority: 1,
			Title: "Create a Debt Repayment Strategy",
			Description: "List all debts and follow a systematic repayment plan using the " +
				"snowball or avalanche method.",
			ActionSteps: []string{
				"List all debts with balances and interest rates",
				"Choose snowball (smallest first) or avalanche (highest interest first)",
				"Make minimum payments on all debts",
				"Put extra money toward the target debt",
				"Repeat until debt-free",
			},
		},
		{
			ID: "tpl_debt_credit_monitor", Pillar: model.PillarDebtManagement, Priority: 2,
			Title: "Monitor Your Credit Score",
			Description: "Regular credit monitoring helps you understand your creditworthiness " +
				"and catch errors early.",
			ActionSteps: []string{
				"Check your credit report annually",
				"Pay all bills on time",
				"Keep credit utilization below 30%",
			},
		},

		// Financial planning.
		{
			ID: "tpl_planning_smart_goals", Pillar: model.PillarFinancialPlanning, Priority: 1,
			Title: "Set SMART Financial Goals",
			Description: "Define specific, measurable, achievable, relevant and time-bound " +
				"financial goals for the next one, five and ten years.",
			ActionSteps: []string{
				"Write down your short-term goals (1 year)",
				"Define medium-term goals (2-5 years)",
				"Set long-term goals (5+ years)",
				"Attach target amounts to each goal",
				"Create an action plan for each goal",
			},
		},
		{
			ID: "tpl_planning_retirement_early", Pillar: model.PillarFinancialPlanning, Priority: 2,
			Title: "Start Retirement Planning Early",
			Description: "Starting retirement savings early gives compound interest decades " +
				"to work in your favor.",
			ActionSteps: []string{
				"Contribute to your company pension if available",
				"Open a personal retirement account",
				"Aim to save 10-15% of income for retirement",
				"Consider low-cost index funds",
			},
		},

		// Investment knowledge.
		{
			ID: "tpl_invest_basics", Pillar: model.PillarInvestmentKnowledge, Priority: 2,
			Title: "Learn Investment Basics",
			Description: "Build your investment knowledge before putting money at risk. " +
				"Understanding the basics leads to better decisions.",
			ActionSteps: []string{
				"Read about different investment types",
				"Understand the risk versus return relationship",
				"Learn about diversification",
				"Consider taking an investment course",
			},
		},
		{
			ID: "tpl_invest_index_funds", Pillar: model.PillarInvestmentKnowledge, Priority: 3,
			Title: "Start with Index Funds",
			Description: "Low-cost, diversified index funds track market performance and " +
				"offer good returns with moderate risk.",
			ActionSteps: []string{
				"Open a brokerage account",
				"Research local and international index funds",
				"Start with small monthly investments",
				"Review and rebalance quarterly",
			},
		},
	}
}

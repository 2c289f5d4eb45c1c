package model

import "time"

// CategoryAmount is one category's summed spending within an analysis.
type CategoryAmount struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
}

// ExpenseRecord identifies a single notable transaction within an analysis.
type ExpenseRecord struct {
	Date        time.Time `json:"date"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
}

// ExpenseAnalysis holds the aggregate statistics computed from one batch of
// categorized transactions. It is derived once per batch and immutable after
// its producing operation returns.
type ExpenseAnalysis struct {
	TotalExpense            float64          `json:"total_expense"`
	ExpenseCount            int              `json:"expense_count"`
	CategorySpending        []CategoryAmount `json:"category_wise_spending"`
	Top3Categories          []CategoryAmount `json:"top_3_categories"`
	AverageTransactionValue float64          `json:"average_transaction_value"`
	HighestSingleExpense    *ExpenseRecord   `json:"highest_single_expense"`
	AIInsights              []string         `json:"ai_insights"`
}

// CategoryPercentages returns each category's share of total spending as a
// percentage rounded to 1 decimal place, keyed by category. Returns nil when
// there is no spending to take a share of.
func (a *ExpenseAnalysis) CategoryPercentages() map[Category]float64 {
	if a.TotalExpense <= 0 {
		return nil
	}
	percentages := make(map[Category]float64, len(a.CategorySpending))
	for _, cs := range a.CategorySpending {
		percentages[cs.Category] = Round1(cs.Amount / a.TotalExpense * 100)
	}
	return percentages
}

// PercentOf returns an amount's share of the total expense as a percentage
// rounded to 1 decimal place. Returns 0 when the total is 0.
func (a *ExpenseAnalysis) PercentOf(amount float64) float64 {
	if a.TotalExpense <= 0 {
		return 0
	}
	return Round1(amount / a.TotalExpense * 100)
}

package cfo

import (
	"context"
	"fmt"
	"sort"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// AnalyzeExpenses computes aggregate expense statistics from one batch of
// categorized transactions. Transfers (Peer Transfer, Self Transfer) are
// internal money movement and never count as spending. An empty filtered set
// is not an error: it yields a zero-valued analysis with a fixed explanatory
// insight and no narrative call.
func (e *Engine) AnalyzeExpenses(ctx context.Context, transactions []model.Transaction) (model.ExpenseAnalysis, error) {
	if len(transactions) == 0 {
		return model.ExpenseAnalysis{}, fmt.Errorf("analyze expenses: %w", common.ErrNoTransactions)
	}

	expenses := filterExpenses(transactions)
	if len(expenses) == 0 {
		return model.ExpenseAnalysis{
			CategorySpending: []model.CategoryAmount{},
			Top3Categories:   []model.CategoryAmount{},
			AIInsights:       []string{noExpensesInsight},
		}, nil
	}

	var sum float64
	for _, txn := range expenses {
		sum += txn.Amount
	}
	total := model.Round2(sum)
	count := len(expenses)
	average := model.Round2(total / float64(count))

	spending := groupByCategory(expenses)

	top3 := spending
	if len(top3) > 3 {
		top3 = top3[:3]
	}

	highest := highestExpense(expenses)

	analysis := model.ExpenseAnalysis{
		TotalExpense:            total,
		ExpenseCount:            count,
		CategorySpending:        spending,
		Top3Categories:          top3,
		AverageTransactionValue: average,
		HighestSingleExpense:    highest,
	}

	insights, err := e.generator.Lines(ctx, insightsPrompt(analysis), 3)
	if err != nil {
		e.logger.Warn("insight generation failed, using fallback", "error", err)
		insights = []string{insightFallback}
	}
	analysis.AIInsights = insights

	return analysis, nil
}

// filterExpenses resolves transaction nature and keeps only real spending.
func filterExpenses(transactions []model.Transaction) []model.Transaction {
	expenses := make([]model.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if txn.ResolveNature() != model.NatureExpense {
			continue
		}
		if txn.Category.IsTransfer() {
			continue
		}
		expenses = append(expenses, txn)
	}
	return expenses
}

// groupByCategory sums spending per category, ordered descending by amount
// with ties broken by first-encountered category order.
func groupByCategory(expenses []model.Transaction) []model.CategoryAmount {
	totals := make(map[model.Category]float64)
	var order []model.Category

	for _, txn := range expenses {
		if _, seen := totals[txn.Category]; !seen {
			order = append(order, txn.Category)
		}
		totals[txn.Category] += txn.Amount
	}

	spending := make([]model.CategoryAmount, 0, len(order))
	for _, category := range order {
		spending = append(spending, model.CategoryAmount{
			Category: category,
			Amount:   model.Round2(totals[category]),
		})
	}

	// Stable sort keeps first-seen order for equal amounts.
	sort.SliceStable(spending, func(i, j int) bool {
		return spending[i].Amount > spending[j].Amount
	})

	return spending
}

// highestExpense finds the single largest expense, first occurrence winning
// ties.
func highestExpense(expenses []model.Transaction) *model.ExpenseRecord {
	best := 0
	for i := 1; i < len(expenses); i++ {
		if expenses[i].Amount > expenses[best].Amount {
			best = i
		}
	}

	txn := expenses[best]
	return &model.ExpenseRecord{
		Date:        txn.Date,
		Category:    txn.Category,
		Description: txn.Description,
		Amount:      txn.Amount,
	}
}

package cfo

import (
	"context"
	"fmt"

	"github.com/Veraticus/tally/internal/model"
)

// Alert rule thresholds. Comparisons are strict: a value exactly at the
// threshold does not trigger.
const (
	categoryOverspendPercent = 35.0
	uncategorizedPercent     = 25.0
	highAverageValue         = 150.0
	concentrationPercent     = 40.0
	frequentSpendingCount    = 40
	largeExpenseValue        = 500.0
)

// ComputeAlerts evaluates the fixed rule set against an expense analysis.
// Rules run in a fixed order and trigger independently; the returned set may
// be empty. Percentage rules are naturally inert when total expense is zero.
// Every returned alert carries exactly 2 recommendations, falling back to
// fixed placeholders when narrative generation fails for that alert.
func (e *Engine) ComputeAlerts(ctx context.Context, analysis model.ExpenseAnalysis) []model.Alert {
	var alerts []model.Alert

	nextAlert := func(alertType model.AlertType, severity model.Severity, message string) {
		alerts = append(alerts, model.Alert{
			ID:       fmt.Sprintf("A%d", len(alerts)+1),
			Type:     alertType,
			Severity: severity,
			Message:  message,
		})
	}

	// Rule 1: category overspending.
	for _, cs := range analysis.CategorySpending {
		p := analysis.PercentOf(cs.Amount)
		if p > categoryOverspendPercent {
			nextAlert(model.AlertCategoryOverspending, model.SeverityHigh,
				fmt.Sprintf("%s accounts for %.1f%% of total expenses", cs.Category, p))
		}
	}

	// Rule 2: uncategorized expense risk.
	for _, cs := range analysis.CategorySpending {
		if cs.Category != model.CategoryOthers {
			continue
		}
		if p := analysis.PercentOf(cs.Amount); p > uncategorizedPercent {
			nextAlert(model.AlertUncategorizedRisk, model.SeverityHigh,
				fmt.Sprintf("Uncategorized expenses form %.1f%% of total spending", p))
		}
		break
	}

	// Rule 3: high average transaction value.
	if analysis.AverageTransactionValue > highAverageValue {
		nextAlert(model.AlertHighTransactionValue, model.SeverityMedium,
			fmt.Sprintf("Average transaction value is ₹%.2f", analysis.AverageTransactionValue))
	}

	// Rule 4: expense concentration.
	if len(analysis.Top3Categories) > 0 {
		top := analysis.Top3Categories[0]
		if p := analysis.PercentOf(top.Amount); p > concentrationPercent {
			nextAlert(model.AlertConcentrationRisk, model.SeverityHigh,
				fmt.Sprintf("%s dominates spending at %.1f%%", top.Category, p))
		}
	}

	// Rule 5: frequent spending.
	if analysis.ExpenseCount > frequentSpendingCount {
		nextAlert(model.AlertFrequentSpending, model.SeverityMedium,
			fmt.Sprintf("%d expense transactions detected", analysis.ExpenseCount))
	}

	// Rule 6: large one-time expense.
	if highest := analysis.HighestSingleExpense; highest != nil && highest.Amount > largeExpenseValue {
		nextAlert(model.AlertLargeOneTimeExpense, model.SeverityMedium,
			fmt.Sprintf("Single expense of ₹%.2f detected in %s", highest.Amount, highest.Category))
	}

	// Enrich each alert independently; one failure never affects siblings.
	for i := range alerts {
		alerts[i].Recommendations = e.alertRecommendations(ctx, alerts[i], analysis)
	}

	return alerts
}

// alertRecommendations obtains exactly 2 recommendation sentences for one
// alert, substituting the fixed placeholders on any failure.
func (e *Engine) alertRecommendations(ctx context.Context, alert model.Alert, analysis model.ExpenseAnalysis) []string {
	recs, err := e.generator.Lines(ctx, alertRecommendationsPrompt(alert, analysis), 2)
	if err != nil || len(recs) < 2 {
		if err != nil {
			e.logger.Warn("alert recommendation generation failed, using fallback",
				"alert_id", alert.ID,
				"alert_type", alert.Type,
				"error", err)
		}
		return []string{alertFallbackFirst, alertFallbackSecond}
	}
	return recs
}

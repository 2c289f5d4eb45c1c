package cfo

import (
	"context"
	"fmt"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// Health score deductions.
const (
	highAlertPenalty         = 10
	heavyConcentrationShare  = 0.45
	heavyConcentrationCost   = 20
	mildConcentrationShare   = 0.35
	mildConcentrationCost    = 10
	notFeasiblePenalty       = 20
	partiallyFeasiblePenalty = 10
)

// ScoreHealth combines the latest analysis, alert set, and goal plan into a
// single 0-100 score with a verdict and narrative summary. The score starts
// at 100 and only decreases; the executive summary and action plan are
// generated independently, each with its own fallback.
func (e *Engine) ScoreHealth(ctx context.Context, analysis model.ExpenseAnalysis, alerts []model.Alert, plan model.GoalPlan) (model.FinancialHealth, error) {
	if len(analysis.Top3Categories) == 0 {
		return model.FinancialHealth{}, fmt.Errorf("score health: %w", common.ErrNoAnalysis)
	}
	if plan.Goal.TimePeriodMonths == 0 {
		return model.FinancialHealth{}, fmt.Errorf("score health: %w", common.ErrNoGoalPlan)
	}

	score := 100

	var topRisks []string
	for _, alert := range alerts {
		if alert.Severity == model.SeverityHigh {
			score -= highAlertPenalty
			topRisks = append(topRisks, alert.Message)
		}
	}

	if analysis.TotalExpense > 0 {
		topShare := analysis.Top3Categories[0].Amount / analysis.TotalExpense
		switch {
		case topShare > heavyConcentrationShare:
			score -= heavyConcentrationCost
		case topShare > mildConcentrationShare:
			score -= mildConcentrationCost
		}
	}

	switch plan.Feasibility {
	case model.NotFeasible:
		score -= notFeasiblePenalty
	case model.PartiallyFeasible:
		score -= partiallyFeasiblePenalty
	case model.Feasible:
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	verdict := model.VerdictForScore(score)
	contextBlock := healthContext(score, verdict, analysis, alerts, plan)

	summary, err := e.generator.Prose(ctx, executiveSummaryPrompt(contextBlock))
	if err != nil {
		e.logger.Warn("executive summary generation failed, using fallback", "error", err)
		summary = summaryFallback
	}

	actionPlan, err := e.generator.Lines(ctx, actionPlanPrompt(contextBlock), 5)
	if err != nil {
		e.logger.Warn("action plan generation failed, using fallback", "error", err)
		actionPlan = []string{actionPlanFallback}
	}

	return model.FinancialHealth{
		Score:            score,
		Verdict:          verdict,
		ExecutiveSummary: summary,
		TopRisks:         topRisks,
		ActionPlan:       actionPlan,
	}, nil
}

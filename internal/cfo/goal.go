package cfo

import (
	"context"
	"fmt"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// milestoneCount is the fixed number of checkpoints in every plan.
const milestoneCount = 4

// PlanGoal computes a savings plan for a target amount and time horizon.
// Monthly expense is taken from the supplied analysis and monthly income
// from the income transactions in the user's full history. Milestone months
// can exceed the goal horizon when it is shorter than 4 months; that
// schedule is reported as-is.
func (e *Engine) PlanGoal(ctx context.Context, goal model.Goal, analysis model.ExpenseAnalysis, history []model.Transaction) (model.GoalPlan, error) {
	if goal.Amount <= 0 {
		return model.GoalPlan{}, fmt.Errorf("plan goal: amount must be positive, got %.2f", goal.Amount)
	}
	if goal.TimePeriodMonths <= 0 {
		return model.GoalPlan{}, fmt.Errorf("plan goal: time period must be positive, got %d months", goal.TimePeriodMonths)
	}
	if len(history) == 0 {
		return model.GoalPlan{}, fmt.Errorf("plan goal: %w", common.ErrNoTransactions)
	}

	monthlyExpense := analysis.TotalExpense

	var monthlyIncome float64
	for _, txn := range history {
		if txn.ResolveNature() == model.NatureIncome {
			monthlyIncome += txn.Amount
		}
	}

	surplus := monthlyIncome - monthlyExpense
	required := model.Round2(goal.Amount / float64(goal.TimePeriodMonths))

	var feasibility model.Feasibility
	switch {
	case surplus >= required:
		feasibility = model.Feasible
	case surplus > 0:
		feasibility = model.PartiallyFeasible
	default:
		feasibility = model.NotFeasible
	}

	interval := goal.TimePeriodMonths / milestoneCount
	if interval < 1 {
		interval = 1
	}

	milestones := make([]model.Milestone, 0, milestoneCount)
	for i := 1; i <= milestoneCount; i++ {
		month := i * interval
		milestones = append(milestones, model.Milestone{
			Month:        month,
			TargetAmount: model.Round2(required * float64(month)),
		})
	}

	plan := model.GoalPlan{
		Goal:                    goal,
		RequiredMonthlySaving:   required,
		EstimatedMonthlySurplus: model.Round2(surplus),
		Feasibility:             feasibility,
		Milestones:              milestones,
	}

	recommendations, err := e.generator.Lines(ctx, goalAdvicePrompt(plan), 3)
	if err != nil {
		e.logger.Warn("goal advice generation failed, using fallback", "error", err)
		recommendations = []string{goalAdviceFallback}
	}
	plan.Recommendations = recommendations

	return plan, nil
}

package cfo

import (
	"context"
	"testing"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goalHistory(income, expense float64) []model.Transaction {
	return []model.Transaction{
		{Description: "SALARY CREDIT", Type: model.TypeCredit, Amount: income},
		{Description: "RENT PAYMENT", Type: model.TypeDebit, Amount: expense},
	}
}

func TestPlanGoal_Validation(t *testing.T) {
	engine := New(NewMockGenerator(), nil)
	ctx := context.Background()
	analysis := model.ExpenseAnalysis{TotalExpense: 500}

	_, err := engine.PlanGoal(ctx, model.Goal{Amount: 0, TimePeriodMonths: 12}, analysis, goalHistory(2000, 500))
	assert.Error(t, err)

	_, err = engine.PlanGoal(ctx, model.Goal{Amount: 12000, TimePeriodMonths: 0}, analysis, goalHistory(2000, 500))
	assert.Error(t, err)

	_, err = engine.PlanGoal(ctx, model.Goal{Amount: 12000, TimePeriodMonths: 12}, analysis, nil)
	assert.ErrorIs(t, err, common.ErrNoTransactions)
}

func TestPlanGoal_MilestoneSchedule(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	goal := model.Goal{Purpose: "Emergency Fund", Amount: 12000, TimePeriodMonths: 12}
	analysis := model.ExpenseAnalysis{TotalExpense: 800}

	plan, err := engine.PlanGoal(context.Background(), goal, analysis, goalHistory(2000, 800))
	require.NoError(t, err)

	assert.InDelta(t, 1000, plan.RequiredMonthlySaving, 0.001)
	require.Len(t, plan.Milestones, 4)
	for i, wantMonth := range []int{3, 6, 9, 12} {
		assert.Equal(t, wantMonth, plan.Milestones[i].Month)
		assert.InDelta(t, float64(wantMonth)*1000, plan.Milestones[i].TargetAmount, 0.001)
	}
	assert.Len(t, plan.Recommendations, 3)
}

func TestPlanGoal_Feasibility(t *testing.T) {
	engine := New(NewMockGenerator(), nil)
	goal := model.Goal{Purpose: "Trip", Amount: 12000, TimePeriodMonths: 12} // requires 1000/month

	tests := []struct {
		name    string
		income  float64
		expense float64
		want    model.Feasibility
	}{
		{name: "surplus covers requirement", income: 2000, expense: 800, want: model.Feasible},
		{name: "positive but short surplus", income: 2000, expense: 1500, want: model.PartiallyFeasible},
		{name: "negative surplus", income: 2000, expense: 2200, want: model.NotFeasible},
		{name: "surplus exactly at requirement", income: 2000, expense: 1000, want: model.Feasible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := model.ExpenseAnalysis{TotalExpense: tt.expense}
			plan, err := engine.PlanGoal(context.Background(), goal, analysis, goalHistory(tt.income, tt.expense))
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.Feasibility)
			assert.InDelta(t, tt.income-tt.expense, plan.EstimatedMonthlySurplus, 0.001)
		})
	}
}

func TestPlanGoal_ShortHorizonOverrunsSchedule(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	// A 2-month horizon still yields 4 checkpoints at monthly intervals;
	// months 3 and 4 overrun the horizon and are reported as-is.
	goal := model.Goal{Purpose: "Gadget", Amount: 2000, TimePeriodMonths: 2}
	analysis := model.ExpenseAnalysis{TotalExpense: 500}

	plan, err := engine.PlanGoal(context.Background(), goal, analysis, goalHistory(3000, 500))
	require.NoError(t, err)

	require.Len(t, plan.Milestones, 4)
	for i, wantMonth := range []int{1, 2, 3, 4} {
		assert.Equal(t, wantMonth, plan.Milestones[i].Month)
		assert.InDelta(t, float64(wantMonth)*1000, plan.Milestones[i].TargetAmount, 0.001)
	}
}

func TestPlanGoal_AdviceFallback(t *testing.T) {
	generator := NewMockGenerator()
	generator.LinesErr = assert.AnError
	engine := New(generator, nil)

	goal := model.Goal{Purpose: "Trip", Amount: 6000, TimePeriodMonths: 6}
	analysis := model.ExpenseAnalysis{TotalExpense: 400}

	plan, err := engine.PlanGoal(context.Background(), goal, analysis, goalHistory(2000, 400))
	require.NoError(t, err)

	// Numeric plan survives a generation failure; only advice degrades.
	assert.Equal(t, []string{goalAdviceFallback}, plan.Recommendations)
	assert.InDelta(t, 1000, plan.RequiredMonthlySaving, 0.001)
	assert.Equal(t, model.Feasible, plan.Feasibility)
}

package cfo

import (
	"context"
	"testing"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthAnalysis(total, topAmount float64) model.ExpenseAnalysis {
	return model.ExpenseAnalysis{
		TotalExpense: total,
		CategorySpending: []model.CategoryAmount{
			{Category: model.CategoryRent, Amount: topAmount},
			{Category: model.CategoryGroceries, Amount: total - topAmount},
		},
		Top3Categories: []model.CategoryAmount{
			{Category: model.CategoryRent, Amount: topAmount},
			{Category: model.CategoryGroceries, Amount: total - topAmount},
		},
	}
}

func healthPlan(feasibility model.Feasibility) model.GoalPlan {
	return model.GoalPlan{
		Goal:        model.Goal{Purpose: "Emergency Fund", Amount: 12000, TimePeriodMonths: 12},
		Feasibility: feasibility,
	}
}

func highAlert(msg string) model.Alert {
	return model.Alert{Type: model.AlertCategoryOverspending, Severity: model.SeverityHigh, Message: msg}
}

func TestScoreHealth_MissingInputs(t *testing.T) {
	engine := New(NewMockGenerator(), nil)
	ctx := context.Background()

	_, err := engine.ScoreHealth(ctx, model.ExpenseAnalysis{}, nil, healthPlan(model.Feasible))
	assert.ErrorIs(t, err, common.ErrNoAnalysis)

	_, err = engine.ScoreHealth(ctx, healthAnalysis(1000, 300), nil, model.GoalPlan{})
	assert.ErrorIs(t, err, common.ErrNoGoalPlan)
}

func TestScoreHealth_PerfectScore(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	// Top category at 30% of spend, no alerts, feasible goal: no deductions.
	health, err := engine.ScoreHealth(context.Background(), healthAnalysis(1000, 300), nil, healthPlan(model.Feasible))
	require.NoError(t, err)

	assert.Equal(t, 100, health.Score)
	assert.Equal(t, model.VerdictExcellent, health.Verdict)
	assert.Empty(t, health.TopRisks)
	assert.NotEmpty(t, health.ExecutiveSummary)
	assert.Len(t, health.ActionPlan, 5)
}

func TestScoreHealth_Deductions(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	tests := []struct {
		name        string
		topAmount   float64
		highAlerts  int
		feasibility model.Feasibility
		wantScore   int
		wantVerdict model.Verdict
	}{
		{
			name:        "mild concentration only",
			topAmount:   400, // 40% share, between 0.35 and 0.45
			feasibility: model.Feasible,
			wantScore:   90,
			wantVerdict: model.VerdictExcellent,
		},
		{
			name:        "heavy concentration and partial feasibility",
			topAmount:   500, // 50% share
			feasibility: model.PartiallyFeasible,
			wantScore:   70,
			wantVerdict: model.VerdictStable,
		},
		{
			name:        "three high alerts with heavy concentration and infeasible goal",
			topAmount:   500,
			highAlerts:  3,
			feasibility: model.NotFeasible,
			wantScore:   30,
			wantVerdict: model.VerdictCritical,
		},
		{
			name:        "share exactly at mild boundary",
			topAmount:   350, // exactly 0.35, no deduction
			feasibility: model.Feasible,
			wantScore:   100,
			wantVerdict: model.VerdictExcellent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var alerts []model.Alert
			for i := 0; i < tt.highAlerts; i++ {
				alerts = append(alerts, highAlert("Rent accounts for 50.0% of total expenses"))
			}

			health, err := engine.ScoreHealth(context.Background(), healthAnalysis(1000, tt.topAmount), alerts, healthPlan(tt.feasibility))
			require.NoError(t, err)

			assert.Equal(t, tt.wantScore, health.Score)
			assert.Equal(t, tt.wantVerdict, health.Verdict)
			assert.Len(t, health.TopRisks, tt.highAlerts)
		})
	}
}

func TestScoreHealth_ClampsAtZero(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	// 8 high alerts (-80), heavy concentration (-20), infeasible goal (-20)
	// would be -20 unclamped.
	var alerts []model.Alert
	for i := 0; i < 8; i++ {
		alerts = append(alerts, highAlert("overspending"))
	}

	health, err := engine.ScoreHealth(context.Background(), healthAnalysis(1000, 600), alerts, healthPlan(model.NotFeasible))
	require.NoError(t, err)

	assert.Equal(t, 0, health.Score)
	assert.Equal(t, model.VerdictCritical, health.Verdict)
}

func TestScoreHealth_IndependentFallbacks(t *testing.T) {
	t.Run("summary fails, action plan survives", func(t *testing.T) {
		generator := NewMockGenerator()
		generator.ProseErr = assert.AnError
		engine := New(generator, nil)

		health, err := engine.ScoreHealth(context.Background(), healthAnalysis(1000, 300), nil, healthPlan(model.Feasible))
		require.NoError(t, err)

		assert.Equal(t, summaryFallback, health.ExecutiveSummary)
		assert.Len(t, health.ActionPlan, 5)
		assert.Equal(t, 100, health.Score)
	})

	t.Run("action plan fails, summary survives", func(t *testing.T) {
		generator := NewMockGenerator()
		generator.LinesErr = assert.AnError
		engine := New(generator, nil)

		health, err := engine.ScoreHealth(context.Background(), healthAnalysis(1000, 300), nil, healthPlan(model.Feasible))
		require.NoError(t, err)

		assert.NotEqual(t, summaryFallback, health.ExecutiveSummary)
		assert.Equal(t, []string{actionPlanFallback}, health.ActionPlan)
	})
}

package cfo

import (
	"context"
	"testing"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milestonePlan() model.GoalPlan {
	return model.GoalPlan{
		Goal:                  model.Goal{Purpose: "Emergency Fund", Amount: 12000, TimePeriodMonths: 12},
		RequiredMonthlySaving: 1000,
		Feasibility:           model.Feasible,
		Milestones: []model.Milestone{
			{Month: 3, TargetAmount: 3000},
			{Month: 6, TargetAmount: 6000},
			{Month: 9, TargetAmount: 9000},
			{Month: 12, TargetAmount: 12000},
		},
		Recommendations: []string{"Automate transfers on payday.", "Trim discretionary spend.", "Review subscriptions."},
	}
}

func TestAdjustMilestone_NoPlan(t *testing.T) {
	engine := New(NewMockGenerator(), nil)

	_, err := engine.AdjustMilestone(context.Background(), 1000, 1000, model.GoalPlan{}, model.ExpenseAnalysis{})
	assert.ErrorIs(t, err, common.ErrNoGoalPlan)
}

func TestAdjustMilestone_OnTrackSkipsGeneration(t *testing.T) {
	generator := NewMockGenerator()
	engine := New(generator, nil)
	plan := milestonePlan()

	// 3% drift is inside the 5% band.
	adjusted, err := engine.AdjustMilestone(context.Background(), 1030, 1000, plan, model.ExpenseAnalysis{})
	require.NoError(t, err)

	assert.Equal(t, model.StatusOnTrack, adjusted.MilestoneStatus)
	assert.Equal(t, plan.Recommendations, adjusted.Recommendations)
	assert.Zero(t, generator.LinesCallCount())
}

func TestAdjustMilestone_DriftStatus(t *testing.T) {
	tests := []struct {
		name     string
		saved    float64
		expected float64
		want     model.MilestoneStatus
	}{
		{name: "ahead", saved: 1300, expected: 1000, want: model.StatusAhead},
		{name: "behind", saved: 700, expected: 1000, want: model.StatusBehind},
		{name: "drift exactly at band edge is not on track", saved: 1050, expected: 1000, want: model.StatusAhead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := NewMockGenerator()
			engine := New(generator, nil)
			plan := milestonePlan()

			adjusted, err := engine.AdjustMilestone(context.Background(), tt.saved, tt.expected, plan, model.ExpenseAnalysis{})
			require.NoError(t, err)

			assert.Equal(t, tt.want, adjusted.MilestoneStatus)
			assert.Equal(t, 1, generator.LinesCallCount())
			assert.Len(t, adjusted.Recommendations, 3)
			assert.NotEqual(t, plan.Recommendations, adjusted.Recommendations)
		})
	}
}

func TestAdjustMilestone_GenerationFailureKeepsRecommendations(t *testing.T) {
	generator := NewMockGenerator()
	generator.LinesErr = assert.AnError
	engine := New(generator, nil)
	plan := milestonePlan()

	adjusted, err := engine.AdjustMilestone(context.Background(), 400, 1000, plan, model.ExpenseAnalysis{})
	require.NoError(t, err)

	// Status is still reported; the advice simply is not refreshed.
	assert.Equal(t, model.StatusBehind, adjusted.MilestoneStatus)
	assert.Equal(t, plan.Recommendations, adjusted.Recommendations)
}

func TestAdjustMilestone_InputPlanNotMutated(t *testing.T) {
	engine := New(NewMockGenerator(), nil)
	plan := milestonePlan()
	original := append([]string(nil), plan.Recommendations...)

	adjusted, err := engine.AdjustMilestone(context.Background(), 2000, 1000, plan, model.ExpenseAnalysis{})
	require.NoError(t, err)

	assert.Equal(t, model.StatusAhead, adjusted.MilestoneStatus)
	assert.Equal(t, original, plan.Recommendations)

	// Mutating the adjusted copy must not leak back.
	adjusted.Recommendations[0] = "changed"
	assert.Equal(t, original, plan.Recommendations)
}

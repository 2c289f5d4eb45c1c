package cfo

import (
	"context"
	"fmt"
	"math"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// driftTolerance is the fraction of the expected amount within which savings
// progress still counts as on track.
const driftTolerance = 0.05

// AdjustMilestone compares actual savings against the expected milestone
// amount and reissues the goal plan with a drift status. Progress within 5%
// of expected is on track: the recommendations are kept and no narrative
// call is made. Larger drift requests 3 replacement recommendations; if that
// fails, the current recommendations are kept and the computed status is
// still reported. The input plan is never mutated.
func (e *Engine) AdjustMilestone(ctx context.Context, savedAmount, expectedAmount float64, plan model.GoalPlan, analysis model.ExpenseAnalysis) (model.AdjustedGoalPlan, error) {
	if plan.Goal.TimePeriodMonths == 0 {
		return model.AdjustedGoalPlan{}, fmt.Errorf("adjust milestone: %w", common.ErrNoGoalPlan)
	}

	adjusted := model.AdjustedGoalPlan{GoalPlan: plan}
	adjusted.Recommendations = append([]string(nil), plan.Recommendations...)

	delta := savedAmount - expectedAmount
	if math.Abs(delta) < expectedAmount*driftTolerance {
		adjusted.MilestoneStatus = model.StatusOnTrack
		return adjusted, nil
	}

	if delta > 0 {
		adjusted.MilestoneStatus = model.StatusAhead
	} else {
		adjusted.MilestoneStatus = model.StatusBehind
	}

	prompt := milestonePrompt(savedAmount, expectedAmount, adjusted.MilestoneStatus, plan.Recommendations, analysis)
	recommendations, err := e.generator.Lines(ctx, prompt, 3)
	if err != nil {
		e.logger.Warn("milestone recommendation generation failed, keeping current recommendations",
			"status", adjusted.MilestoneStatus,
			"error", err)
		return adjusted, nil
	}

	adjusted.Recommendations = recommendations
	return adjusted, nil
}

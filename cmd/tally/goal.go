package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/session"
)

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Plan and track savings goals",
	}
	cmd.AddCommand(goalSetCmd())
	cmd.AddCommand(goalProgressCmd())
	return cmd
}

func goalSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a savings goal and compute its feasibility plan",
		Long: `Set a savings goal. The plan derives the required monthly saving,
checks feasibility against your income and spending, and lays out four
cumulative milestones.

Example:
  tally goal set --purpose "Emergency Fund" --amount 120000 --months 12`,
		RunE: runGoalSet,
	}
	cmd.Flags().String("purpose", "", "what the goal is for")
	cmd.Flags().Float64("amount", 0, "target amount to save")
	cmd.Flags().Int("months", 0, "time period in months")
	_ = cmd.MarkFlagRequired("purpose")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("months")
	return cmd
}

func runGoalSet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID := config.UserID()

	purpose, _ := cmd.Flags().GetString("purpose")
	amount, _ := cmd.Flags().GetFloat64("amount")
	months, _ := cmd.Flags().GetInt("months")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sess, err := session.Load(ctx, store, userID)
	if err != nil {
		return err
	}
	analysis, err := sess.RequireAnalysis()
	if err != nil {
		return err
	}

	history, err := store.GetAllTransactions(ctx, userID)
	if err != nil {
		return err
	}

	engine, err := createEngine()
	if err != nil {
		return err
	}

	goal := model.Goal{Purpose: purpose, Amount: amount, TimePeriodMonths: months}
	plan, err := engine.PlanGoal(ctx, goal, *analysis, history)
	if err != nil {
		return err
	}

	if _, err := store.SaveGoalPlan(ctx, userID, plan); err != nil {
		return err
	}

	fmt.Println(renderPlan(plan, ""))
	return nil
}

func goalProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Record actual savings and adjust the goal plan",
		Long: `Compare your actual savings against the expected milestone amount.
Progress within 5% of expected is on track; larger drift re-plans the
advice and supersedes the stored goal plan.

Example:
  tally goal progress --saved 28000 --expected 30000`,
		RunE: runGoalProgress,
	}
	cmd.Flags().Float64("saved", 0, "amount actually saved so far")
	cmd.Flags().Float64("expected", 0, "expected milestone amount")
	_ = cmd.MarkFlagRequired("saved")
	_ = cmd.MarkFlagRequired("expected")
	return cmd
}

func runGoalProgress(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID := config.UserID()

	saved, _ := cmd.Flags().GetFloat64("saved")
	expected, _ := cmd.Flags().GetFloat64("expected")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sess, err := session.Load(ctx, store, userID)
	if err != nil {
		return err
	}
	plan, err := sess.RequirePlan()
	if err != nil {
		return err
	}
	analysis, err := sess.RequireAnalysis()
	if err != nil {
		return err
	}

	engine, err := createEngine()
	if err != nil {
		return err
	}

	adjusted, err := engine.AdjustMilestone(ctx, saved, expected, *plan, *analysis)
	if err != nil {
		return err
	}

	if _, err := store.ReplaceGoalPlan(ctx, userID, sess.PlanID, adjusted); err != nil {
		return err
	}

	fmt.Println(renderPlan(adjusted.GoalPlan, string(adjusted.MilestoneStatus)))
	return nil
}

func renderPlan(plan model.GoalPlan, status string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Goal: %s — ₹%.2f over %d months\n", plan.Goal.Purpose, plan.Goal.Amount, plan.Goal.TimePeriodMonths)
	fmt.Fprintf(&b, "Required monthly saving: ₹%.2f\n", plan.RequiredMonthlySaving)
	fmt.Fprintf(&b, "Estimated monthly surplus: ₹%.2f\n", plan.EstimatedMonthlySurplus)
	fmt.Fprintf(&b, "Feasibility: %s\n", renderFeasibility(plan.Feasibility))
	if status != "" {
		fmt.Fprintf(&b, "Milestone status: %s\n", status)
	}

	b.WriteString("\n" + cli.TableHeaderStyle.Render("Milestones") + "\n")
	for _, m := range plan.Milestones {
		fmt.Fprintf(&b, "  Month %2d: ₹%.2f\n", m.Month, m.TargetAmount)
	}

	if len(plan.Recommendations) > 0 {
		b.WriteString("\n" + cli.TableHeaderStyle.Render("Recommendations") + "\n")
		for _, rec := range plan.Recommendations {
			fmt.Fprintf(&b, "  • %s\n", rec)
		}
	}

	return cli.RenderBox(cli.GoalIcon+" Savings Plan", strings.TrimRight(b.String(), "\n"))
}

func renderFeasibility(f model.Feasibility) string {
	switch f {
	case model.Feasible:
		return cli.SuccessStyle.Render(string(f))
	case model.PartiallyFeasible:
		return cli.WarningStyle.Render(string(f))
	default:
		return cli.ErrorStyle.Render(string(f))
	}
}

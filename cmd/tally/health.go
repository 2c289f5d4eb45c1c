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

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Score your overall financial health",
		Long: `Combine the latest expense analysis, spending alerts, and goal plan
into a 0-100 financial health score with an executive summary and a
concrete action plan.

Requires a prior 'tally analyze' and 'tally goal set'.`,
		RunE: runHealth,
	}
}

func runHealth(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID := config.UserID()

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
	plan, err := sess.RequirePlan()
	if err != nil {
		return err
	}

	engine, err := createEngine()
	if err != nil {
		return err
	}

	health, err := engine.ScoreHealth(ctx, *analysis, sess.Alerts, *plan)
	if err != nil {
		return err
	}

	fmt.Println(renderHealth(health))
	return nil
}

func renderHealth(health model.FinancialHealth) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Score: %s   Verdict: %s\n", renderScore(health.Score), renderVerdict(health.Verdict))
	fmt.Fprintf(&b, "\n%s\n", health.ExecutiveSummary)

	if len(health.TopRisks) > 0 {
		b.WriteString("\n" + cli.TableHeaderStyle.Render("Top risks") + "\n")
		for _, risk := range health.TopRisks {
			fmt.Fprintf(&b, "  %s %s\n", cli.WarningIcon, risk)
		}
	}

	if len(health.ActionPlan) > 0 {
		b.WriteString("\n" + cli.TableHeaderStyle.Render("Action plan") + "\n")
		for i, step := range health.ActionPlan {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}

	return cli.RenderBox(cli.HealthIcon+" Financial Health", strings.TrimRight(b.String(), "\n"))
}

func renderScore(score int) string {
	text := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 80:
		return cli.SuccessStyle.Render(text)
	case score >= 40:
		return cli.WarningStyle.Render(text)
	default:
		return cli.ErrorStyle.Render(text)
	}
}

func renderVerdict(verdict model.Verdict) string {
	switch verdict {
	case model.VerdictExcellent, model.VerdictStable:
		return cli.SuccessStyle.Render(string(verdict))
	case model.VerdictNeedsAttention:
		return cli.WarningStyle.Render(string(verdict))
	default:
		return cli.ErrorStyle.Render(string(verdict))
	}
}

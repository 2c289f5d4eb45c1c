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

func alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Evaluate spending alerts for the latest analysis",
		Long: `Run the spending rule set against the most recent expense analysis:
category overspending, uncategorized expense risk, high transaction values,
concentration risk, frequent spending, and large one-time expenses.`,
		RunE: runAlerts,
	}
}

func runAlerts(cmd *cobra.Command, _ []string) error {
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

	engine, err := createEngine()
	if err != nil {
		return err
	}

	alerts := engine.ComputeAlerts(ctx, *analysis)

	if err := store.SaveAlerts(ctx, userID, sess.UploadID, alerts); err != nil {
		return err
	}

	if len(alerts) == 0 {
		fmt.Println(cli.FormatSuccess("No spending alerts. Your habits look steady."))
		return nil
	}

	fmt.Println(renderAlerts(alerts))
	return nil
}

func renderAlerts(alerts []model.Alert) string {
	var b strings.Builder
	for i, alert := range alerts {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", alert.ID, cli.StyleSeverity(string(alert.Severity)), alert.Type)
		fmt.Fprintf(&b, "   %s\n", alert.Message)
		for _, rec := range alert.Recommendations {
			fmt.Fprintf(&b, "   → %s\n", rec)
		}
	}
	return cli.RenderBox(fmt.Sprintf("%s %d Spending Alerts", cli.AlertIcon, len(alerts)), strings.TrimRight(b.String(), "\n"))
}

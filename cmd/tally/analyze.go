package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/model"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute the expense breakdown for an upload",
		Long: `Analyze the expense transactions of a statement upload: totals,
category-wise spending, top categories, and AI-generated insights.

Defaults to the most recently ingested upload.`,
		RunE: runAnalyze,
	}
	cmd.Flags().String("upload", "", "upload ID to analyze (default: most recent)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID := config.UserID()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	uploadID, _ := cmd.Flags().GetString("upload")
	var transactions []model.Transaction
	if uploadID != "" {
		transactions, err = store.GetTransactionsByUpload(ctx, uploadID)
	} else {
		transactions, err = store.GetAllTransactions(ctx, userID)
		if err == nil && len(transactions) > 0 {
			// Most recent upload only
			uploadID = transactions[len(transactions)-1].UploadID
			var latest []model.Transaction
			for _, txn := range transactions {
				if txn.UploadID == uploadID {
					latest = append(latest, txn)
				}
			}
			transactions = latest
		}
	}
	if err != nil {
		return err
	}

	engine, err := createEngine()
	if err != nil {
		return err
	}

	analysis, err := engine.AnalyzeExpenses(ctx, transactions)
	if err != nil {
		return err
	}

	if err := store.SaveAnalysis(ctx, userID, uploadID, analysis); err != nil {
		return err
	}

	fmt.Println(renderAnalysis(analysis))
	return nil
}

func renderAnalysis(analysis model.ExpenseAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total expense: ₹%.2f across %d transactions\n", analysis.TotalExpense, analysis.ExpenseCount)
	fmt.Fprintf(&b, "Average transaction: ₹%.2f\n", analysis.AverageTransactionValue)
	if highest := analysis.HighestSingleExpense; highest != nil {
		fmt.Fprintf(&b, "Highest single expense: ₹%.2f (%s, %s)\n", highest.Amount, highest.Description, highest.Category)
	}

	if len(analysis.CategorySpending) > 0 {
		b.WriteString("\n" + cli.TableHeaderStyle.Render("Spending by category") + "\n")
		percentages := analysis.CategoryPercentages()
		for _, cs := range analysis.CategorySpending {
			fmt.Fprintf(&b, "  %-20s ₹%12.2f  %5.1f%%\n", cs.Category, cs.Amount, percentages[cs.Category])
		}
	}

	if len(analysis.AIInsights) > 0 {
		b.WriteString("\n" + cli.TableHeaderStyle.Render("Insights") + "\n")
		for _, insight := range analysis.AIInsights {
			fmt.Fprintf(&b, "  • %s\n", insight)
		}
	}

	return cli.RenderBox(cli.ChartIcon+" Expense Analysis", strings.TrimRight(b.String(), "\n"))
}

package cfo

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/model"
)

// insightsPrompt asks for exactly 3 one-sentence insights over the expense
// summary and category percentage breakdown.
func insightsPrompt(analysis model.ExpenseAnalysis) string {
	var sb strings.Builder

	sb.WriteString("You are acting as a personal CFO for a young professional.\n\n")
	sb.WriteString("Generate EXACTLY 3 high-impact financial insights.\n")
	sb.WriteString("Each insight must:\n")
	sb.WriteString("- Be specific and data-driven\n")
	sb.WriteString("- Suggest a concrete action\n")
	sb.WriteString("- Explain why it matters financially\n")
	sb.WriteString("- Be ONE sentence only\n")
	sb.WriteString("- No generic advice\n")
	sb.WriteString("- No numbering or headings\n\n")
	sb.WriteString("Expense Summary:\n")
	fmt.Fprintf(&sb, "- Total Expense: %.2f\n", analysis.TotalExpense)
	fmt.Fprintf(&sb, "- Expense Count: %d\n", analysis.ExpenseCount)
	fmt.Fprintf(&sb, "- Average Transaction Value: %.2f\n", analysis.AverageTransactionValue)
	fmt.Fprintf(&sb, "- Top Categories: %s\n\n", formatCategoryAmounts(analysis.Top3Categories))
	sb.WriteString("Category Percentage Breakdown:\n")
	for _, cs := range analysis.CategorySpending {
		fmt.Fprintf(&sb, "- %s: %.1f%%\n", cs.Category, analysis.PercentOf(cs.Amount))
	}
	sb.WriteString("\nReturn ONLY the 3 insights, one per line. Don't use $, use Rupees symbol instead.\n")

	return sb.String()
}

// alertRecommendationsPrompt asks for exactly 2 actionable recommendations
// for one alert, with the user's expense context.
func alertRecommendationsPrompt(alert model.Alert, analysis model.ExpenseAnalysis) string {
	var sb strings.Builder

	sb.WriteString("You are acting as a personal CFO.\n\n")
	sb.WriteString("Generate EXACTLY 2 actionable recommendations\n")
	sb.WriteString("for the following financial alert.\n\n")
	sb.WriteString("Alert:\n")
	fmt.Fprintf(&sb, "Type: %s\n", alert.Type)
	fmt.Fprintf(&sb, "Message: %s\n", alert.Message)
	fmt.Fprintf(&sb, "Severity: %s\n\n", alert.Severity)
	sb.WriteString("User Expense Context:\n")
	fmt.Fprintf(&sb, "- Total Expense: %.2f\n", analysis.TotalExpense)
	fmt.Fprintf(&sb, "- Top Categories: %s\n", formatCategoryAmounts(analysis.Top3Categories))
	fmt.Fprintf(&sb, "- Average Transaction Value: %.2f\n\n", analysis.AverageTransactionValue)
	sb.WriteString("Rules:\n")
	sb.WriteString("- One sentence per recommendation\n")
	sb.WriteString("- Concrete financial action\n")
	sb.WriteString("- No generic advice\n")
	sb.WriteString("- No numbering or headings\n\n")
	sb.WriteString("Return only the 2 recommendations, one per line.\n")

	return sb.String()
}

// goalAdvicePrompt asks for exactly 3 recommendations for a computed goal
// plan.
func goalAdvicePrompt(plan model.GoalPlan) string {
	var sb strings.Builder

	sb.WriteString("You are acting as a personal CFO.\n\n")
	sb.WriteString("Based on the financial goal and current situation below,\n")
	sb.WriteString("generate EXACTLY 3 actionable recommendations.\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- One sentence per recommendation\n")
	sb.WriteString("- Concrete financial action\n")
	sb.WriteString("- No generic advice\n")
	sb.WriteString("- No numbering or headings\n\n")
	sb.WriteString("Goal Summary:\n")
	fmt.Fprintf(&sb, "- Purpose: %s\n", plan.Goal.Purpose)
	fmt.Fprintf(&sb, "- Amount: %.2f\n", plan.Goal.Amount)
	fmt.Fprintf(&sb, "- Time Period: %d months\n", plan.Goal.TimePeriodMonths)
	fmt.Fprintf(&sb, "- Required Monthly Saving: %.2f\n", plan.RequiredMonthlySaving)
	fmt.Fprintf(&sb, "- Monthly Surplus: %.2f\n", plan.EstimatedMonthlySurplus)
	fmt.Fprintf(&sb, "- Feasibility: %s\n\n", plan.Feasibility)
	sb.WriteString("Return only the 3 recommendations, one per line.\n")

	return sb.String()
}

// healthContext renders the shared fact block for the health summary and
// action plan prompts.
func healthContext(score int, verdict model.Verdict, analysis model.ExpenseAnalysis, alerts []model.Alert, plan model.GoalPlan) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Health Score: %d\n", score)
	fmt.Fprintf(&sb, "Verdict: %s\n", verdict)
	fmt.Fprintf(&sb, "Total Expense: %.2f across %d transactions\n", analysis.TotalExpense, analysis.ExpenseCount)
	fmt.Fprintf(&sb, "Top Categories: %s\n", formatCategoryAmounts(analysis.Top3Categories))
	if len(alerts) == 0 {
		sb.WriteString("Alerts: none\n")
	} else {
		sb.WriteString("Alerts:\n")
		for _, alert := range alerts {
			fmt.Fprintf(&sb, "- [%s] %s\n", alert.Severity, alert.Message)
		}
	}
	fmt.Fprintf(&sb, "Goal: %s, %.2f over %d months, feasibility %s, required monthly saving %.2f\n",
		plan.Goal.Purpose, plan.Goal.Amount, plan.Goal.TimePeriodMonths, plan.Feasibility, plan.RequiredMonthlySaving)

	return sb.String()
}

// executiveSummaryPrompt asks for a 4-5 sentence executive summary.
func executiveSummaryPrompt(contextBlock string) string {
	var sb strings.Builder

	sb.WriteString("You are an Autonomous CFO addressing a young professional.\n\n")
	sb.WriteString("Write a concise executive financial summary (4-5 sentences).\n")
	sb.WriteString("Tone: confident, supportive, professional.\n")
	sb.WriteString("No bullet points, no numbers, no technical jargon.\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(contextBlock)

	return sb.String()
}

// actionPlanPrompt asks for exactly 5 next-month actions.
func actionPlanPrompt(contextBlock string) string {
	var sb strings.Builder

	sb.WriteString("You are an Autonomous CFO.\n\n")
	sb.WriteString("Based on the financial context below, generate EXACTLY 5\n")
	sb.WriteString("clear and actionable next-month actions.\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- One sentence per action\n")
	sb.WriteString("- Concrete and practical\n")
	sb.WriteString("- No generic advice\n")
	sb.WriteString("- No numbering or headings\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(contextBlock)
	sb.WriteString("\nReturn only the 5 actions, one per line.\n")

	return sb.String()
}

// milestonePrompt asks for 3 updated recommendations after savings drift.
func milestonePrompt(savedAmount, expectedAmount float64, status model.MilestoneStatus, currentRecommendations []string, analysis model.ExpenseAnalysis) string {
	var sb strings.Builder

	sb.WriteString("You are an Autonomous CFO.\n\n")
	fmt.Fprintf(&sb, "The user had a saving target of ₹%.2f but actually saved ₹%.2f.\n", expectedAmount, savedAmount)
	fmt.Fprintf(&sb, "They are currently %s of plan.\n\n", strings.ToLower(string(status)))
	sb.WriteString("Current Recommendations:\n")
	for _, rec := range currentRecommendations {
		fmt.Fprintf(&sb, "- %s\n", rec)
	}
	sb.WriteString("\nExpense Summary:\n")
	fmt.Fprintf(&sb, "- Total Expense: %.2f\n", analysis.TotalExpense)
	fmt.Fprintf(&sb, "- Top Categories: %s\n\n", formatCategoryAmounts(analysis.Top3Categories))
	sb.WriteString("Generate EXACTLY 3 updated recommendations.\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- One sentence each\n")
	sb.WriteString("- Concrete and practical\n")
	sb.WriteString("- No generic advice\n")
	sb.WriteString("- No numbering or headings\n\n")
	sb.WriteString("Return only the 3 lines.\n")

	return sb.String()
}

// formatCategoryAmounts renders category/amount pairs compactly for prompts.
func formatCategoryAmounts(amounts []model.CategoryAmount) string {
	if len(amounts) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(amounts))
	for _, ca := range amounts {
		parts = append(parts, fmt.Sprintf("%s (%.2f)", ca.Category, ca.Amount))
	}
	return strings.Join(parts, ", ")
}

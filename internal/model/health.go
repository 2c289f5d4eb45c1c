package model

// Verdict is the qualitative reading of a financial health score.
type Verdict string

// Verdict constants, mapped from score bands (inclusive lower bounds).
const (
	VerdictExcellent      Verdict = "Excellent"
	VerdictStable         Verdict = "Stable"
	VerdictNeedsAttention Verdict = "Needs Attention"
	VerdictCritical       Verdict = "Critical"
)

// VerdictForScore maps a 0-100 health score to its verdict band.
func VerdictForScore(score int) Verdict {
	switch {
	case score >= 80:
		return VerdictExcellent
	case score >= 60:
		return VerdictStable
	case score >= 40:
		return VerdictNeedsAttention
	default:
		return VerdictCritical
	}
}

// FinancialHealth is the composite health report derived from the latest
// analysis, alert set, and goal plan. It is computed fresh each invocation.
type FinancialHealth struct {
	Score            int      `json:"financial_health_score"`
	Verdict          Verdict  `json:"financial_verdict"`
	ExecutiveSummary string   `json:"executive_summary"`
	TopRisks         []string `json:"top_risks"`
	ActionPlan       []string `json:"next_month_action_plan"`
}

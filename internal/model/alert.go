package model

// AlertType is the fixed enumeration of rule-generated alert kinds.
type AlertType string

// Alert type constants, one per rule the alert engine evaluates.
const (
	AlertCategoryOverspending AlertType = "Category Overspending"
	AlertUncategorizedRisk    AlertType = "Uncategorized Expense Risk"
	AlertHighTransactionValue AlertType = "High Transaction Value"
	AlertConcentrationRisk    AlertType = "Expense Concentration Risk"
	AlertFrequentSpending     AlertType = "Frequent Spending"
	AlertLargeOneTimeExpense  AlertType = "Large One-time Expense"
)

// Severity ranks how urgently an alert needs attention.
type Severity string

// Severity constants.
const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
)

// Alert is one rule-triggered finding over an expense analysis. IDs are
// sequential within a batch ("A1", "A2", ...); alerts carry no identity
// beyond the batch that produced them.
type Alert struct {
	ID              string    `json:"alert_id"`
	Type            AlertType `json:"type"`
	Severity        Severity  `json:"severity"`
	Message         string    `json:"message"`
	Recommendations []string  `json:"recommendations"`
}

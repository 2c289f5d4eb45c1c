// Package model defines the core domain records used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"math"
	"time"
)

// TransactionType is the bank-reported debit/credit marker on a statement row.
// It is optional; not every statement format carries it.
type TransactionType string

// Transaction type constants.
const (
	TypeDebit  TransactionType = "Debit"
	TypeCredit TransactionType = "Credit"
)

// Nature is the derived income/expense classification of a transaction.
type Nature string

// Nature constants.
const (
	NatureIncome  Nature = "Income"
	NatureExpense Nature = "Expense"
)

// Transaction represents a single statement row after ingestion.
// Records are immutable once ingested; Nature is derived once and cached.
type Transaction struct {
	Date        time.Time
	ID          string
	UploadID    string
	Description string
	AccountID   string
	Hash        string
	Type        TransactionType
	Category    Category
	Nature      Nature
	Amount      float64
}

// ResolveNature derives and caches the income/expense nature of the
// transaction. A bank-reported type wins when present (Debit spends,
// Credit earns, anything unrecognized is treated as an expense);
// otherwise the sign of the amount decides.
func (t *Transaction) ResolveNature() Nature {
	if t.Nature != "" {
		return t.Nature
	}

	switch {
	case t.Type == TypeDebit:
		t.Nature = NatureExpense
	case t.Type == TypeCredit:
		t.Nature = NatureIncome
	case t.Type != "":
		t.Nature = NatureExpense
	case t.Amount > 0:
		t.Nature = NatureIncome
	default:
		t.Nature = NatureExpense
	}

	return t.Nature
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Round2 rounds a currency amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds a percentage to 1 decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

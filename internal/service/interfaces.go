// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/tally/internal/model"
)

// Storage defines the contract for our persistence layer. Writes are
// fire-and-forget from the computation pipeline's perspective: no operation
// depends on reading back what it just persisted.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, userID string, transactions []model.Transaction) error
	GetTransactionsByUpload(ctx context.Context, uploadID string) ([]model.Transaction, error)
	GetAllTransactions(ctx context.Context, userID string) ([]model.Transaction, error)

	// Analysis operations
	SaveAnalysis(ctx context.Context, userID, uploadID string, analysis model.ExpenseAnalysis) error
	GetLatestAnalysis(ctx context.Context, userID string) (*model.ExpenseAnalysis, string, error)

	// Alert operations
	SaveAlerts(ctx context.Context, userID, uploadID string, alerts []model.Alert) error
	GetAlertsByUpload(ctx context.Context, uploadID string) ([]model.Alert, error)

	// Goal operations
	SaveGoalPlan(ctx context.Context, userID string, plan model.GoalPlan) (int64, error)
	GetGoalPlan(ctx context.Context, userID string, goalID int64) (*model.GoalPlan, error)
	GetLatestGoalPlan(ctx context.Context, userID string) (*model.GoalPlan, int64, error)
	ReplaceGoalPlan(ctx context.Context, userID string, goalID int64, plan model.AdjustedGoalPlan) (int64, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// TransactionSource produces transaction rows from an external statement
// format or provider.
type TransactionSource interface {
	Parse(ctx context.Context, path string) ([]model.Transaction, error)
}

// Classifier maps a transaction description to exactly one label from the
// fixed category taxonomy.
type Classifier interface {
	ClassifyTransaction(ctx context.Context, description string) model.Category
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
)

// Common application errors.
var (
	// Missing-input errors. These are fatal to the requested operation and
	// surface to the caller; they are never absorbed.
	ErrNoTransactions = errors.New("no transactions available")
	ErrNoAnalysis     = errors.New("no expense analysis available")
	ErrNoGoalPlan     = errors.New("no goal plan available")

	// Ingestion errors.
	ErrNoStatement   = errors.New("no statement rows extracted")
	ErrInvalidAmount = errors.New("invalid transaction amount")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

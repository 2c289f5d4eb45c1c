// Package cfo implements the deterministic expense-analytics and
// goal-feasibility pipeline: expense statistics, rule-based alerts, savings
// goal planning, a composite financial health score, and milestone drift
// adjustment. Every operation is a pure function of its declared inputs plus
// an injected narrative generator; nothing here reaches into ambient state.
package cfo

import (
	"context"
	"log/slog"
)

// TextGenerator is the narrative capability the pipeline consumes. Any
// failure from it is absorbed at the call site with a documented fallback;
// it never aborts an operation.
type TextGenerator interface {
	// Lines returns up to n trimmed non-empty sentences for the prompt.
	Lines(ctx context.Context, prompt string, n int) ([]string, error)
	// Prose returns a short free-text passage for the prompt.
	Prose(ctx context.Context, prompt string) (string, error)
}

// Fallback text used when the narrative generator fails or returns
// unusable output. Each call site substitutes exactly the sentences it
// asked for; sibling fields are never affected.
const (
	noExpensesInsight   = "No expense transactions found"
	insightFallback     = "AI insights temporarily unavailable"
	goalAdviceFallback  = "Goal advice temporarily unavailable"
	summaryFallback     = "Executive summary temporarily unavailable."
	actionPlanFallback  = "Action plan temporarily unavailable"
	alertFallbackFirst  = "Review this spending pattern"
	alertFallbackSecond = "Set a corrective budget limit"
)

// Engine computes analytics over categorized transactions.
type Engine struct {
	generator TextGenerator
	logger    *slog.Logger
}

// New creates an analytics engine with the given narrative generator.
func New(generator TextGenerator, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		generator: generator,
		logger:    logger,
	}
}

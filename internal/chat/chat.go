// Package chat answers free-form questions about a user's transactions.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/tally/internal/model"
)

const (
	// maxContextRows caps how many transaction rows are included in the
	// question context.
	maxContextRows = 200

	noDataAnswer   = "No transaction data is available yet. Please upload a statement first."
	fallbackAnswer = "Unable to answer the question at the moment."
)

// ProseGenerator produces a free-text passage for a prompt.
type ProseGenerator interface {
	Prose(ctx context.Context, prompt string) (string, error)
}

// Agent answers questions grounded only in the user's transaction rows.
type Agent struct {
	generator ProseGenerator
	logger    *slog.Logger
}

// NewAgent creates a new chat agent.
func NewAgent(generator ProseGenerator, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{generator: generator, logger: logger}
}

// Answer responds to a question about the given transactions. With no
// transactions it returns a fixed data-missing message; a generation failure
// returns a fixed fallback instead of an error.
func (a *Agent) Answer(ctx context.Context, question string, transactions []model.Transaction) string {
	if len(transactions) == 0 {
		return noDataAnswer
	}

	answer, err := a.generator.Prose(ctx, buildPrompt(question, transactions))
	if err != nil {
		a.logger.Warn("chat answer generation failed, using fallback", "error", err)
		return fallbackAnswer
	}
	return strings.TrimSpace(answer)
}

func buildPrompt(question string, transactions []model.Transaction) string {
	var b strings.Builder
	b.WriteString("You are a personal finance assistant.\n\n")
	b.WriteString("Answer the user's question using ONLY the data provided below.\n")
	b.WriteString("The data contains real transaction rows.\n\n")
	b.WriteString("User Question:\n")
	b.WriteString(question)
	b.WriteString("\n\nTransactions & Summary:\n")
	fmt.Fprintf(&b, "Total transactions: %d\n", len(transactions))

	rows := transactions
	if len(rows) > maxContextRows {
		rows = rows[:maxContextRows]
	}
	for _, txn := range rows {
		fmt.Fprintf(&b, "%s | %s | %.2f | %s\n",
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Amount,
			txn.Category)
	}

	b.WriteString("\nRules:\n")
	b.WriteString("- Use only the provided data\n")
	b.WriteString("- Do not invent numbers\n")
	b.WriteString("- If the answer cannot be derived, say so clearly\n")
	return b.String()
}

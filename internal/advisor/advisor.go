// Package advisor adapts an LLM client into the narrative-generation
// capability the computation pipeline consumes: short lists of one-sentence
// recommendations and brief prose summaries built from structured facts.
//
// Advisor calls are allowed to fail; callers substitute documented fallback
// text rather than propagating the error.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/tally/internal/llm"
)

// Advisor generates narrative text through an LLM provider.
type Advisor struct {
	client llm.Client
	logger *slog.Logger
}

// New creates an Advisor over the given LLM client.
func New(client llm.Client, logger *slog.Logger) *Advisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Advisor{
		client: client,
		logger: logger,
	}
}

// Lines requests free text and returns up to n non-empty trimmed lines.
// Returns an error when the provider fails or produces no usable lines.
func (a *Advisor) Lines(ctx context.Context, prompt string, n int) ([]string, error) {
	resp, err := a.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("text generation failed: %w", err)
	}

	lines := splitLines(resp.Text)
	if len(lines) == 0 {
		return nil, fmt.Errorf("no usable lines in response")
	}

	if len(lines) > n {
		lines = lines[:n]
	}

	return lines, nil
}

// Prose requests free text and returns it trimmed.
func (a *Advisor) Prose(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("empty response")
	}

	return text, nil
}

// splitLines breaks generated text into trimmed non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

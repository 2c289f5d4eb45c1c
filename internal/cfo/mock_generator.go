package cfo

import (
	"context"
	"fmt"
	"sync"
)

// MockGenerator is a test implementation of the TextGenerator interface.
// It produces deterministic sentences and records every prompt so tests can
// assert on call counts and failure isolation.
type MockGenerator struct {
	// Err fails every call when set.
	Err error
	// LinesErr fails only Lines calls when set.
	LinesErr error
	// ProseErr fails only Prose calls when set.
	ProseErr error
	// FailLinesCalls fails specific Lines calls by 1-based index.
	FailLinesCalls map[int]bool
	// LinesReply overrides the generated lines when non-nil.
	LinesReply []string
	// ProseReply overrides the generated prose when non-empty.
	ProseReply string

	linesPrompts []string
	prosePrompts []string
	mu           sync.Mutex
}

// NewMockGenerator creates a new mock text generator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Lines returns n deterministic sentences unless scripted to fail.
func (m *MockGenerator) Lines(_ context.Context, prompt string, n int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.linesPrompts = append(m.linesPrompts, prompt)
	call := len(m.linesPrompts)

	if m.Err != nil {
		return nil, m.Err
	}
	if m.LinesErr != nil {
		return nil, m.LinesErr
	}
	if m.FailLinesCalls[call] {
		return nil, fmt.Errorf("scripted failure on call %d", call)
	}

	if m.LinesReply != nil {
		reply := m.LinesReply
		if len(reply) > n {
			reply = reply[:n]
		}
		return append([]string(nil), reply...), nil
	}

	lines := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		lines = append(lines, fmt.Sprintf("Generated sentence %d for call %d.", i, call))
	}
	return lines, nil
}

// Prose returns a deterministic passage unless scripted to fail.
func (m *MockGenerator) Prose(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prosePrompts = append(m.prosePrompts, prompt)

	if m.Err != nil {
		return "", m.Err
	}
	if m.ProseErr != nil {
		return "", m.ProseErr
	}

	if m.ProseReply != "" {
		return m.ProseReply, nil
	}
	return fmt.Sprintf("Generated summary for call %d.", len(m.prosePrompts)), nil
}

// LinesCallCount returns how many Lines requests were made.
func (m *MockGenerator) LinesCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.linesPrompts)
}

// ProseCallCount returns how many Prose requests were made.
func (m *MockGenerator) ProseCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prosePrompts)
}

// LinesPrompt returns the prompt of the i-th (1-based) Lines request.
func (m *MockGenerator) LinesPrompt(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 1 || i > len(m.linesPrompts) {
		return ""
	}
	return m.linesPrompts[i-1]
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// SaveAnalysis persists an expense analysis for one statement upload. The
// full analysis is stored as a JSON payload; later uploads supersede earlier
// ones by recency, not by replacement.
func (s *SQLiteStorage) SaveAnalysis(ctx context.Context, userID, uploadID string, analysis model.ExpenseAnalysis) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(uploadID, "uploadID"); err != nil {
		return err
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO expense_analyses (user_id, upload_id, payload)
		VALUES (?, ?, ?)
	`, userID, uploadID, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// GetLatestAnalysis returns the most recent expense analysis for a user and
// the upload it was computed from. Returns common.ErrNoAnalysis when the user
// has no analysis yet.
func (s *SQLiteStorage) GetLatestAnalysis(ctx context.Context, userID string) (*model.ExpenseAnalysis, string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, "", err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, "", err
	}

	var uploadID, payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT upload_id, payload
		FROM expense_analyses
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, userID).Scan(&uploadID, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("latest analysis for %s: %w", userID, common.ErrNoAnalysis)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to query latest analysis: %w", err)
	}

	var analysis model.ExpenseAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal analysis: %w", err)
	}

	return &analysis, uploadID, nil
}

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

// SaveGoalPlan persists a new goal plan and returns its assigned ID.
func (s *SQLiteStorage) SaveGoalPlan(ctx context.Context, userID string, plan model.GoalPlan) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}
	if err := validateGoalPlan(&plan); err != nil {
		return 0, err
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal goal plan: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO goal_plans (user_id, payload)
		VALUES (?, ?)
	`, userID, string(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to insert goal plan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get goal plan ID: %w", err)
	}
	return id, nil
}

// GetGoalPlan retrieves a specific goal plan by ID.
func (s *SQLiteStorage) GetGoalPlan(ctx context.Context, userID string, goalID int64) (*model.GoalPlan, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM goal_plans
		WHERE user_id = ? AND id = ?
	`, userID, goalID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("goal plan %d for %s: %w", goalID, userID, common.ErrNoGoalPlan)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query goal plan: %w", err)
	}

	var plan model.GoalPlan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal goal plan: %w", err)
	}
	return &plan, nil
}

// GetLatestGoalPlan returns the user's most recent goal plan and its ID.
// Returns common.ErrNoGoalPlan when the user has never set a goal.
func (s *SQLiteStorage) GetLatestGoalPlan(ctx context.Context, userID string) (*model.GoalPlan, int64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, 0, err
	}

	var id int64
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, payload FROM goal_plans
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, userID).Scan(&id, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("latest goal plan for %s: %w", userID, common.ErrNoGoalPlan)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query latest goal plan: %w", err)
	}

	var plan model.GoalPlan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal goal plan: %w", err)
	}
	return &plan, id, nil
}

// ReplaceGoalPlan supersedes an existing goal plan with its milestone-adjusted
// successor. The old row is deleted and a new one inserted atomically; the
// new ID is returned. Returns common.ErrNoGoalPlan if the old plan does not
// exist for this user.
func (s *SQLiteStorage) ReplaceGoalPlan(ctx context.Context, userID string, goalID int64, plan model.AdjustedGoalPlan) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}
	if err := validateGoalPlan(&plan.GoalPlan); err != nil {
		return 0, err
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal adjusted goal plan: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		DELETE FROM goal_plans WHERE user_id = ? AND id = ?
	`, userID, goalID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete goal plan %d: %w", goalID, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if deleted == 0 {
		return 0, fmt.Errorf("goal plan %d for %s: %w", goalID, userID, common.ErrNoGoalPlan)
	}

	result, err = tx.ExecContext(ctx, `
		INSERT INTO goal_plans (user_id, payload, milestone_status)
		VALUES (?, ?, ?)
	`, userID, string(payload), string(plan.MilestoneStatus))
	if err != nil {
		return 0, fmt.Errorf("failed to insert adjusted goal plan: %w", err)
	}

	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get adjusted goal plan ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit goal plan replacement: %w", err)
	}
	return newID, nil
}

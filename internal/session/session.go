// Package session assembles a user's working state from storage: the most
// recent upload, its analysis and alerts, and the active goal plan.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

// Session is one user's explicit working state. It is loaded from storage at
// the start of a command and passed by pointer through the orchestration;
// nothing in it is shared or global.
type Session struct {
	UserID   string
	UploadID string
	Analysis *model.ExpenseAnalysis
	Alerts   []model.Alert
	Plan     *model.GoalPlan
	PlanID   int64
}

// Load assembles the session for a user. Missing pieces are left nil rather
// than failing the load: commands decide which inputs they require.
func Load(ctx context.Context, storage service.Storage, userID string) (*Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("load session: user ID is required")
	}

	sess := &Session{UserID: userID}

	analysis, uploadID, err := storage.GetLatestAnalysis(ctx, userID)
	switch {
	case err == nil:
		sess.Analysis = analysis
		sess.UploadID = uploadID
	case errors.Is(err, common.ErrNoAnalysis):
	default:
		return nil, fmt.Errorf("load session: %w", err)
	}

	if sess.UploadID != "" {
		alerts, err := storage.GetAlertsByUpload(ctx, sess.UploadID)
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		sess.Alerts = alerts
	}

	plan, planID, err := storage.GetLatestGoalPlan(ctx, userID)
	switch {
	case err == nil:
		sess.Plan = plan
		sess.PlanID = planID
	case errors.Is(err, common.ErrNoGoalPlan):
	default:
		return nil, fmt.Errorf("load session: %w", err)
	}

	slog.Debug("Session loaded",
		"user_id", userID,
		"upload_id", sess.UploadID,
		"has_analysis", sess.Analysis != nil,
		"alerts", len(sess.Alerts),
		"has_plan", sess.Plan != nil)

	return sess, nil
}

// RequireAnalysis returns the session's analysis or a missing-input error
// telling the user to ingest and analyze a statement first.
func (s *Session) RequireAnalysis() (*model.ExpenseAnalysis, error) {
	if s.Analysis == nil {
		return nil, fmt.Errorf("no expense analysis yet, run 'tally analyze' first: %w", common.ErrNoAnalysis)
	}
	return s.Analysis, nil
}

// RequirePlan returns the session's goal plan or a missing-input error
// telling the user to set a goal first.
func (s *Session) RequirePlan() (*model.GoalPlan, error) {
	if s.Plan == nil {
		return nil, fmt.Errorf("no goal set yet, run 'tally goal set' first: %w", common.ErrNoGoalPlan)
	}
	return s.Plan, nil
}

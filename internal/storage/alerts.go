package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/tally/internal/model"
)

// SaveAlerts persists the alert set produced for one statement upload. An
// empty set is valid and saves nothing.
func (s *SQLiteStorage) SaveAlerts(ctx context.Context, userID, uploadID string, alerts []model.Alert) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(uploadID, "uploadID"); err != nil {
		return err
	}
	if len(alerts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO alerts (user_id, upload_id, alert_id, alert_type, severity, message, recommendations)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, alert := range alerts {
		recsJSON, marshalErr := json.Marshal(alert.Recommendations)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal recommendations for %s: %w", alert.ID, marshalErr)
		}

		_, err = stmt.ExecContext(ctx,
			userID,
			uploadID,
			alert.ID,
			string(alert.Type),
			string(alert.Severity),
			alert.Message,
			string(recsJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to insert alert %s: %w", alert.ID, err)
		}
	}

	return tx.Commit()
}

// GetAlertsByUpload retrieves the alerts generated for one upload, in the
// order the rules produced them.
func (s *SQLiteStorage) GetAlertsByUpload(ctx context.Context, uploadID string) ([]model.Alert, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(uploadID, "uploadID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT alert_id, alert_type, severity, message, recommendations
		FROM alerts
		WHERE upload_id = ?
		ORDER BY id
	`, uploadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var alerts []model.Alert
	for rows.Next() {
		var alert model.Alert
		var alertType, severity, recsJSON string

		if err := rows.Scan(&alert.ID, &alertType, &severity, &alert.Message, &recsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}

		alert.Type = model.AlertType(alertType)
		alert.Severity = model.Severity(severity)
		if recsJSON != "" {
			if err := json.Unmarshal([]byte(recsJSON), &alert.Recommendations); err != nil {
				return nil, fmt.Errorf("failed to unmarshal recommendations for %s: %w", alert.ID, err)
			}
		}
		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}
	return alerts, nil
}

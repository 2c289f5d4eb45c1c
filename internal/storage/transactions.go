package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/tally/internal/model"
)

// SaveTransactions saves multiple transactions to the database. Rows whose
// hash already exists are silently skipped, making re-ingestion of the same
// statement a no-op.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, userID string, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, user_id, upload_id, hash, date, description,
			account_id, txn_type, category, nature, amount
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		_, err = stmt.ExecContext(ctx,
			txn.ID,
			userID,
			txn.UploadID,
			txn.Hash,
			txn.Date,
			txn.Description,
			txn.AccountID,
			string(txn.Type),
			string(txn.Category),
			string(txn.ResolveNature()),
			txn.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// GetTransactionsByUpload retrieves all transactions from one statement upload.
func (s *SQLiteStorage) GetTransactionsByUpload(ctx context.Context, uploadID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(uploadID, "uploadID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, upload_id, hash, date, description, account_id, txn_type, category, nature, amount
		FROM transactions
		WHERE upload_id = ?
		ORDER BY date, id
	`, uploadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// GetAllTransactions retrieves the user's full transaction history across
// all uploads, oldest first.
func (s *SQLiteStorage) GetAllTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, upload_id, hash, date, description, account_id, txn_type, category, nature, amount
		FROM transactions
		WHERE user_id = ?
		ORDER BY date, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var txnType, category, nature sql.NullString
		var accountID sql.NullString

		err := rows.Scan(
			&txn.ID,
			&txn.UploadID,
			&txn.Hash,
			&txn.Date,
			&txn.Description,
			&accountID,
			&txnType,
			&category,
			&nature,
			&txn.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		txn.AccountID = accountID.String
		txn.Type = model.TransactionType(txnType.String)
		txn.Category = model.Category(category.String)
		txn.Nature = model.Nature(nature.String)
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Thaonnor/finsight/internal/common"
	"github.com/Thaonnor/finsight/internal/model"
)

// CreateTransaction inserts txn and sets its ID.
func (r repo) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, `
		INSERT INTO transactions (
			account_id, amount_cents, transaction_type,
			description, transaction_date, category_id
		) VALUES (?, ?, ?, ?, ?, ?)`,
		txn.AccountID,
		txn.AmountCents,
		string(txn.Type),
		txn.Description,
		txn.FormattedDate(),
		txn.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %q for account %d: %w", txn.Description, txn.AccountID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get transaction ID: %w", err)
	}
	txn.ID = id

	return nil
}

// GetTransaction returns a single transaction by ID.
func (r repo) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := r.q.QueryRowContext(ctx, `
		SELECT id, account_id, amount_cents, transaction_type, description,
		       transaction_date, category_id, CAST(created_at AS TEXT)
		FROM transactions
		WHERE id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}
	return txn, err
}

// GetTransactionsByAccount returns the account's transactions, oldest first.
func (r repo) GetTransactionsByAccount(ctx context.Context, accountID int64) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(accountID, "accountID"); err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, account_id, amount_cents, transaction_type, description,
		       transaction_date, category_id, CAST(created_at AS TEXT)
		FROM transactions
		WHERE account_id = ?
		ORDER BY transaction_date, id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// UpdateTransaction overwrites every mutable field of an existing transaction.
func (r repo) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	if err := validateID(txn.ID, "id"); err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, `
		UPDATE transactions SET
			account_id = ?,
			amount_cents = ?,
			transaction_type = ?,
			description = ?,
			transaction_date = ?,
			category_id = ?
		WHERE id = ?`,
		txn.AccountID,
		txn.AmountCents,
		string(txn.Type),
		txn.Description,
		txn.FormattedDate(),
		txn.CategoryID,
		txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", txn.ID, err)
	}

	return requireAffected(result, "transaction", txn.ID)
}

// DeleteTransaction removes a transaction.
func (r repo) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}

	return requireAffected(result, "transaction", id)
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		txn       model.Transaction
		rawType   string
		rawDate   string
		createdAt sql.NullString
	)
	if err := row.Scan(
		&txn.ID, &txn.AccountID, &txn.AmountCents, &rawType, &txn.Description,
		&rawDate, &txn.CategoryID, &createdAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	var err error
	if txn.Type, err = model.ParseTransactionType(rawType); err != nil {
		return nil, fmt.Errorf("transaction %d: %w", txn.ID, err)
	}
	if txn.Date, err = parseDate(rawDate); err != nil {
		return nil, fmt.Errorf("transaction %d: %w", txn.ID, err)
	}
	txn.CreatedAt = parseTimestamp(createdAt)

	return &txn, nil
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation(model.DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid transaction date %q: %w", raw, err)
	}
	return d, nil
}

// timestampLayouts covers CURRENT_TIMESTAMP, datetime('now') and values
// written by the sqlite3 driver.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05Z07:00",
	time.RFC3339Nano,
}

// parseTimestamp returns the zero time for NULL or unrecognised values;
// created_at is informational and never worth failing a read over.
func parseTimestamp(raw sql.NullString) time.Time {
	if !raw.Valid {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw.String); err == nil {
			return ts
		}
	}
	return time.Time{}
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Thaonnor/finsight/internal/model"
	"github.com/Thaonnor/finsight/internal/service"
)

// CountRows returns the number of rows in each finsight table.
func (r repo) CountRows(ctx context.Context) (service.RowCounts, error) {
	var counts service.RowCounts
	if err := validateContext(ctx); err != nil {
		return counts, err
	}

	err := r.q.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM accounts),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM transactions)`,
	).Scan(&counts.Accounts, &counts.Categories, &counts.Transactions)
	if err != nil {
		return counts, fmt.Errorf("failed to count rows: %w", err)
	}

	return counts, nil
}

// GetAccountSummaries aggregates transactions per account, including accounts
// with no transactions.
func (r repo) GetAccountSummaries(ctx context.Context) ([]service.AccountSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT
			a.id,
			a.name,
			a.account_type,
			COUNT(t.id),
			COALESCE(SUM(CASE WHEN t.transaction_type = 'debit' THEN t.amount_cents END), 0),
			COALESCE(SUM(CASE WHEN t.transaction_type = 'credit' THEN t.amount_cents END), 0),
			MIN(t.transaction_date),
			MAX(t.transaction_date)
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		GROUP BY a.id, a.name, a.account_type
		ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query account summaries: %w", err)
	}
	defer rows.Close()

	var summaries []service.AccountSummary
	for rows.Next() {
		var (
			s           service.AccountSummary
			rawType     string
			first, last sql.NullString
		)
		if err := rows.Scan(&s.AccountID, &s.Name, &rawType, &s.Count,
			&s.DebitCents, &s.CreditCents, &first, &last); err != nil {
			return nil, fmt.Errorf("failed to scan account summary: %w", err)
		}
		s.Type = model.AccountType(rawType)
		if first.Valid {
			if s.FirstBooking, err = parseDate(first.String); err != nil {
				return nil, err
			}
		}
		if last.Valid {
			if s.LastBooking, err = parseDate(last.String); err != nil {
				return nil, err
			}
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account summaries: %w", err)
	}

	return summaries, nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Thaonnor/finsight/internal/common"
	"github.com/Thaonnor/finsight/internal/model"
)

// CreateAccount inserts a new account and returns it with its assigned ID.
func (r repo) CreateAccount(ctx context.Context, name string, accountType model.AccountType) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateAccount(name, accountType); err != nil {
		return nil, err
	}

	result, err := r.q.ExecContext(ctx,
		`INSERT INTO accounts (name, account_type) VALUES (?, ?)`,
		name, string(accountType))
	if err != nil {
		return nil, fmt.Errorf("failed to create account %q: %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get account ID: %w", err)
	}

	slog.Debug("created account", "name", name, "type", accountType, "id", id)
	return &model.Account{
		ID:   id,
		Name: name,
		Type: accountType,
	}, nil
}

// GetAccounts returns every account ordered by ID, archived ones included.
func (r repo) GetAccounts(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, name, account_type, archived, CAST(created_at AS TEXT)
		FROM accounts
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var (
			acc       model.Account
			rawType   string
			createdAt sql.NullString
		)
		if err := rows.Scan(&acc.ID, &acc.Name, &rawType, &acc.Archived, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		// The desktop app stores any type string; only writes are checked.
		acc.Type = model.AccountType(rawType)
		acc.CreatedAt = parseTimestamp(createdAt)
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// GetAccountIDs returns the IDs of all accounts in the store, ascending.
func (r repo) GetAccountIDs(ctx context.Context) ([]int64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, `SELECT id FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query account IDs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account IDs: %w", err)
	}

	return ids, nil
}

// ArchiveAccount hides an account without deleting its history.
func (r repo) ArchiveAccount(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, `UPDATE accounts SET archived = TRUE WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to archive account %d: %w", id, err)
	}

	return requireAffected(result, "account", id)
}

func requireAffected(result sql.Result, entity string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, common.ErrNotFound)
	}
	return nil
}

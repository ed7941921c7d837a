package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Thaonnor/finsight/internal/common"
	"github.com/Thaonnor/finsight/internal/model"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 5

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS accounts (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					account_type TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					parent_id INTEGER,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (parent_id) REFERENCES categories(id)
				)`,
				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					account_id INTEGER NOT NULL REFERENCES accounts(id),
					amount_cents INTEGER NOT NULL,
					transaction_type TEXT NOT NULL,
					description TEXT NOT NULL,
					transaction_date TEXT NOT NULL,
					category_id INTEGER NOT NULL REFERENCES categories(id),
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Add archived flag to accounts",
		Up: func(tx *sql.Tx) error {
			// Databases created by the desktop app may already carry the column.
			var exists int
			if err := tx.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('accounts') WHERE name = 'archived'`).Scan(&exists); err != nil {
				return fmt.Errorf("failed to inspect accounts table: %w", err)
			}
			if exists > 0 {
				return nil
			}
			_, err := tx.Exec(`ALTER TABLE accounts ADD COLUMN archived BOOLEAN NOT NULL DEFAULT FALSE`)
			if err != nil {
				return fmt.Errorf("failed to add archived column: %w", err)
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Seed system categories",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				INSERT INTO categories (name, parent_id)
				SELECT ?, NULL
				WHERE NOT EXISTS (SELECT 1 FROM categories WHERE name = ?)`,
				model.UncategorizedCategory, model.UncategorizedCategory)
			if err != nil {
				return fmt.Errorf("failed to seed %s category: %w", model.UncategorizedCategory, err)
			}
			return nil
		},
	},
	{
		Version:     4,
		Description: "Add foreign key indexes",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE INDEX IF NOT EXISTS idx_transactions_account_id ON transactions(account_id)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_category_id ON transactions(category_id)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(transaction_date)`,
				`CREATE INDEX IF NOT EXISTS idx_categories_parent_id ON categories(parent_id)`,
			)
		},
	},
	{
		Version:     5,
		Description: "Add checkpoint metadata table",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS checkpoint_metadata (
					id TEXT PRIMARY KEY,
					created_at DATETIME NOT NULL,
					description TEXT,
					file_size INTEGER,
					row_counts TEXT,
					schema_version INTEGER,
					is_auto BOOLEAN DEFAULT 0
				)`,
				`CREATE INDEX IF NOT EXISTS idx_checkpoint_metadata_created_at ON checkpoint_metadata(created_at)`,
			)
		},
	},
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("%w: expected version %d, got %d", common.ErrSchemaOutOfDate, ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

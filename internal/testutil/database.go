// Package testutil provides test utilities for finsight: migrated
// throwaway databases and category tree builders.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/Thaonnor/finsight/internal/model"
	"github.com/Thaonnor/finsight/internal/service"
	"github.com/Thaonnor/finsight/internal/storage"
	"github.com/Thaonnor/finsight/internal/testutil/categories"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage    *storage.SQLiteStorage
	t          *testing.T
	Categories categories.Categories
}

// SetupTestDB creates a migrated in-memory database. It contains only the
// Uncategorized system category.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithBuilder creates a test database and builds categories into it.
//
// Example:
//
//	db := testutil.SetupTestDBWithBuilder(t, func(b categories.Builder) categories.Builder {
//		return b.WithSeedCategories()
//	})
func SetupTestDBWithBuilder(t *testing.T, configure func(categories.Builder) categories.Builder) *TestDB {
	t.Helper()

	db := SetupTestDB(t)

	builder := categories.NewBuilder(t)
	if configure != nil {
		builder = configure(builder)
	}

	cats, err := builder.Build(context.Background(), db.Storage)
	if err != nil {
		t.Fatalf("failed to build categories: %v", err)
	}
	db.Categories = cats

	return db
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	Path           string
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options. An
// empty Path means an in-memory database.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	path := opts.Path
	if path == "" {
		path = ":memory:"
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustCount returns the current row counts or fails the test.
func (db *TestDB) MustCount() service.RowCounts {
	db.t.Helper()
	counts, err := db.Storage.CountRows(context.Background())
	if err != nil {
		db.t.Fatalf("failed to count rows: %v", err)
	}
	return counts
}

// MustCreateAccount inserts an account or fails the test.
func (db *TestDB) MustCreateAccount(name string, accountType model.AccountType) *model.Account {
	db.t.Helper()
	acc, err := db.Storage.CreateAccount(context.Background(), name, accountType)
	if err != nil {
		db.t.Fatalf("failed to create account %q: %v", name, err)
	}
	return acc
}

// WithTransaction executes fn within a database transaction that is always
// rolled back.
func (db *TestDB) WithTransaction(fn func(tx service.Transaction) error) error {
	ctx := context.Background()
	tx, err := db.Storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	return fn(tx)
}

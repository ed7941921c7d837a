package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Thaonnor/finsight/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStorage returns a migrated file-backed store in a temp dir.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "finsight.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func uncategorizedID(t *testing.T, store *SQLiteStorage) int64 {
	t.Helper()
	cat, err := store.GetCategoryByName(context.Background(), model.UncategorizedCategory)
	require.NoError(t, err)
	return cat.ID
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("creates missing parent directories", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "src-tauri", "nested", "finsight.db")
		store, err := NewSQLiteStorage(dbPath)
		require.NoError(t, err)
		defer store.Close()
		assert.Equal(t, dbPath, store.Path())
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewSQLiteStorage("  ")
		assert.ErrorIs(t, err, ErrEmptyString)
	})

	t.Run("in-memory database survives across statements", func(t *testing.T) {
		store, err := NewSQLiteStorage(":memory:")
		require.NoError(t, err)
		defer store.Close()

		ctx := context.Background()
		require.NoError(t, store.Migrate(ctx))
		_, err = store.CreateAccount(ctx, "Chase Checking", model.AccountTypeChecking)
		require.NoError(t, err)

		counts, err := store.CountRows(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, counts.Accounts)
	})
}

func TestSQLiteStorage_ForeignKeysEnforced(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	missing := int64(999)
	_, err := store.CreateCategory(ctx, "Orphan", &missing)
	assert.Error(t, err, "parent must reference an existing category")

	err = store.CreateTransaction(ctx, &model.Transaction{
		AccountID:   42,
		CategoryID:  uncategorizedID(t, store),
		AmountCents: 500,
		Type:        model.TransactionTypeDebit,
		Description: "Uber",
		Date:        time.Now(),
	})
	assert.Error(t, err, "account must exist")
}

func TestSQLiteStorage_BeginTx(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	t.Run("rollback discards writes", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)

		_, err = tx.CreateAccount(ctx, "Wells Fargo Savings", model.AccountTypeSavings)
		require.NoError(t, err)

		// Reads inside the transaction see the write.
		ids, err := tx.GetAccountIDs(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, 1)

		require.NoError(t, tx.Rollback())

		counts, err := store.CountRows(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, counts.Accounts)
	})

	t.Run("commit persists writes", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)

		_, err = tx.CreateAccount(ctx, "High Yield Savings", model.AccountTypeSavings)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())

		counts, err := store.CountRows(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, counts.Accounts)
	})

	t.Run("nil context", func(t *testing.T) {
		//nolint:staticcheck // exercising validation
		_, err := store.BeginTx(nil)
		assert.ErrorIs(t, err, ErrNilContext)
	})
}

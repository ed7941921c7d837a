package seed

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Thaonnor/finsight/internal/model"
	"github.com/Thaonnor/finsight/internal/service"
	"github.com/Thaonnor/finsight/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 15, 14, 30, 0, 0, time.Local)

func newTestSeeder(store service.Storage, seed uint64, opts ...Option) *Seeder {
	base := []Option{
		WithRand(rand.New(rand.NewPCG(seed, seed+1))),
		WithClock(func() time.Time { return fixedNow }),
	}
	return New(store, append(base, opts...)...)
}

func allTransactions(t *testing.T, store service.Storage) []model.Transaction {
	t.Helper()
	ctx := context.Background()

	ids, err := store.GetAccountIDs(ctx)
	require.NoError(t, err)

	var all []model.Transaction
	for _, id := range ids {
		txns, err := store.GetTransactionsByAccount(ctx, id)
		require.NoError(t, err)
		all = append(all, txns...)
	}
	return all
}

func TestSeeder_Run_InsertsFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	before := db.MustCount()

	summary, err := newTestSeeder(db.Storage, 1).Run(ctx)
	require.NoError(t, err)

	after := db.MustCount()
	assert.Equal(t, before.Categories+3, after.Categories)
	assert.Equal(t, before.Accounts+4, after.Accounts)
	assert.Equal(t, 3, summary.Categories)
	assert.Equal(t, 4, summary.Accounts)
	assert.Equal(t, after.Transactions, summary.Transactions)
	assert.NotEmpty(t, summary.RunID)

	accounts, err := db.Storage.GetAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 4)
	for i, spec := range Accounts {
		assert.Equal(t, spec.Name, accounts[i].Name)
		assert.Equal(t, spec.Type, accounts[i].Type)
		assert.False(t, accounts[i].Archived)
	}
}

func TestSeeder_Run_CategoryTree(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := newTestSeeder(db.Storage, 2).Run(ctx)
	require.NoError(t, err)

	food, err := db.Storage.GetCategoryByName(ctx, "Food")
	require.NoError(t, err)
	groceries, err := db.Storage.GetCategoryByName(ctx, "Groceries")
	require.NoError(t, err)
	transportation, err := db.Storage.GetCategoryByName(ctx, "Transportation")
	require.NoError(t, err)

	assert.True(t, food.IsRoot())
	assert.True(t, transportation.IsRoot())
	require.NotNil(t, groceries.ParentID)
	assert.Equal(t, food.ID, *groceries.ParentID)
}

func TestSeeder_Run_TransactionBounds(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42, 1234, 99999} {
		db := testutil.SetupTestDB(t)
		ctx := context.Background()

		summary, err := newTestSeeder(db.Storage, seed).Run(ctx)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, summary.Transactions, 4*MinTransactionsPerAccount)
		assert.LessOrEqual(t, summary.Transactions, 4*MaxTransactionsPerAccount)

		ids, err := db.Storage.GetAccountIDs(ctx)
		require.NoError(t, err)
		for _, id := range ids {
			n := summary.PerAccount[id]
			assert.GreaterOrEqual(t, n, MinTransactionsPerAccount, "account %d", id)
			assert.LessOrEqual(t, n, MaxTransactionsPerAccount, "account %d", id)

			txns, err := db.Storage.GetTransactionsByAccount(ctx, id)
			require.NoError(t, err)
			assert.Len(t, txns, n)
		}

		for _, txn := range allTransactions(t, db.Storage) {
			assert.GreaterOrEqual(t, txn.AmountCents, int64(MinAmountCents))
			assert.LessOrEqual(t, txn.AmountCents, int64(MaxAmountCents))
			assert.True(t, txn.Type.IsValid())
			assert.Contains(t, ids, txn.AccountID)
		}
	}
}

func TestSeeder_Run_DatesWithinWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)

	summary, err := newTestSeeder(db.Storage, 3).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-02-13", summary.Window.Start.Format(model.DateLayout))
	assert.Equal(t, "2025-03-15", summary.Window.End.Format(model.DateLayout))

	for _, txn := range allTransactions(t, db.Storage) {
		assert.True(t, summary.Window.Contains(txn.Date), "date %s outside window", txn.FormattedDate())
	}
}

func TestSeeder_Run_TemplateCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := newTestSeeder(db.Storage, 4).Run(ctx)
	require.NoError(t, err)

	byDescription := make(map[string]Template, len(Templates))
	for _, tmpl := range Templates {
		byDescription[tmpl.Description] = tmpl
	}

	categoryIDs := make(map[string]int64)
	for _, name := range []string{"Food", "Groceries", "Transportation", model.UncategorizedCategory} {
		cat, err := db.Storage.GetCategoryByName(ctx, name)
		require.NoError(t, err)
		categoryIDs[name] = cat.ID
	}

	for _, txn := range allTransactions(t, db.Storage) {
		tmpl, ok := byDescription[txn.Description]
		require.True(t, ok, "unexpected description %q", txn.Description)
		assert.Equal(t, tmpl.Type, txn.Type, txn.Description)
		assert.Equal(t, categoryIDs[tmpl.Category], txn.CategoryID, txn.Description)
	}
}

func TestSeeder_Run_NotIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := newTestSeeder(db.Storage, 5).Run(ctx)
	require.NoError(t, err)
	first := db.MustCount()

	_, err = newTestSeeder(db.Storage, 6).Run(ctx)
	require.NoError(t, err)
	second := db.MustCount()

	assert.Greater(t, second.Categories, first.Categories)
	assert.Greater(t, second.Accounts, first.Accounts)
	assert.Greater(t, second.Transactions, first.Transactions)
	assert.Equal(t, 8, second.Accounts)
}

func TestSeeder_Run_IncludesExistingAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	existing := db.MustCreateAccount("Old Brokerage", model.AccountTypeSavings)

	summary, err := newTestSeeder(db.Storage, 8).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, summary.PerAccount, 5)
	assert.GreaterOrEqual(t, summary.PerAccount[existing.ID], MinTransactionsPerAccount)
	assert.LessOrEqual(t, summary.PerAccount[existing.ID], MaxTransactionsPerAccount)
}

func TestSeeder_Run_Reproducible(t *testing.T) {
	first := testutil.SetupTestDB(t)
	second := testutil.SetupTestDB(t)

	_, err := newTestSeeder(first.Storage, 77).Run(context.Background())
	require.NoError(t, err)
	_, err = newTestSeeder(second.Storage, 77).Run(context.Background())
	require.NoError(t, err)

	a := allTransactions(t, first.Storage)
	b := allTransactions(t, second.Storage)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Description, b[i].Description)
		assert.Equal(t, a[i].AmountCents, b[i].AmountCents)
		assert.Equal(t, a[i].FormattedDate(), b[i].FormattedDate())
	}
}

func TestSeeder_Run_Progress(t *testing.T) {
	db := testutil.SetupTestDB(t)

	var calls, lastDone, lastTotal int
	progress := func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	}

	summary, err := newTestSeeder(db.Storage, 9, WithProgress(progress)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, summary.Transactions, calls)
	assert.Equal(t, summary.Transactions, lastDone)
	assert.Equal(t, summary.Transactions, lastTotal)
}

func TestSeeder_Run_FailureLeavesNoRows(t *testing.T) {
	t.Run("cancelled mid-run", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		before := db.MustCount()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		progress := func(done, _ int) {
			if done == 3 {
				cancel()
			}
		}

		_, err := newTestSeeder(db.Storage, 10, WithProgress(progress)).Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)

		assert.Equal(t, before, db.MustCount())
	})

	t.Run("cancelled before start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		before := db.MustCount()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestSeeder(db.Storage, 11).Run(ctx)
		require.Error(t, err)
		assert.Equal(t, before, db.MustCount())
	})

	t.Run("closed store", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		require.NoError(t, db.Storage.Close())

		_, err := newTestSeeder(db.Storage, 12).Run(context.Background())
		assert.Error(t, err)
	})
}

func TestSeeder_DefaultRand(t *testing.T) {
	db := testutil.SetupTestDB(t)

	summary, err := New(db.Storage).Run(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, summary.Transactions, 4*MinTransactionsPerAccount)
	assert.LessOrEqual(t, summary.Transactions, 4*MaxTransactionsPerAccount)
}

func TestWindow(t *testing.T) {
	tests := []struct {
		now       time.Time
		name      string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "mid month",
			now:       time.Date(2025, 3, 15, 23, 59, 0, 0, time.Local),
			wantStart: "2025-02-13",
			wantEnd:   "2025-03-15",
		},
		{
			name:      "crosses year boundary",
			now:       time.Date(2025, 1, 10, 0, 0, 1, 0, time.Local),
			wantStart: "2024-12-11",
			wantEnd:   "2025-01-10",
		},
		{
			name:      "leap year",
			now:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local),
			wantStart: "2024-01-31",
			wantEnd:   "2024-03-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Window(tt.now)
			assert.Equal(t, tt.wantStart, w.Start.Format(model.DateLayout))
			assert.Equal(t, tt.wantEnd, w.End.Format(model.DateLayout))
			assert.True(t, w.Contains(w.Start))
			assert.True(t, w.Contains(w.End))
		})
	}
}

func TestFixtures(t *testing.T) {
	assert.Len(t, Categories, 3)
	assert.Len(t, Accounts, 4)
	assert.Len(t, Templates, 8)

	known := map[string]bool{model.UncategorizedCategory: true}
	for _, c := range Categories {
		if c.Parent != "" {
			assert.True(t, known[c.Parent], "%s precedes its parent", c.Name)
		}
		known[c.Name] = true
	}
	for _, tmpl := range Templates {
		assert.True(t, known[tmpl.Category], "template %s", tmpl.Description)
		assert.True(t, tmpl.Type.IsValid())
	}
}

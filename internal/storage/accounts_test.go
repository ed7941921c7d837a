package storage

import (
	"context"
	"testing"

	"github.com/Thaonnor/finsight/internal/common"
	"github.com/Thaonnor/finsight/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStorage_CreateAccount(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		wantErr     error
		name        string
		accountName string
		accountType model.AccountType
	}{
		{name: "checking", accountName: "Chase Checking", accountType: model.AccountTypeChecking},
		{name: "savings", accountName: "High Yield Savings", accountType: model.AccountTypeSavings},
		{name: "duplicate names are allowed", accountName: "Chase Checking", accountType: model.AccountTypeChecking},
		{name: "empty name", accountName: " ", accountType: model.AccountTypeChecking, wantErr: ErrInvalidAccount},
		{name: "unknown type", accountName: "Brokerage", accountType: "investment", wantErr: ErrInvalidAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := store.CreateAccount(ctx, tt.accountName, tt.accountType)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, acc.ID)
			assert.Equal(t, tt.accountName, acc.Name)
			assert.Equal(t, tt.accountType, acc.Type)
		})
	}

	accounts, err := store.GetAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}

func TestSQLiteStorage_GetAccountIDs(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	ids, err := store.GetAccountIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	var want []int64
	for _, name := range []string{"Chase Checking", "Wells Fargo Savings", "Credit Union Checking"} {
		acc, err := store.CreateAccount(ctx, name, model.AccountTypeChecking)
		require.NoError(t, err)
		want = append(want, acc.ID)
	}

	ids, err = store.GetAccountIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, ids)
}

func TestSQLiteStorage_ArchiveAccount(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	acc, err := store.CreateAccount(ctx, "Wells Fargo Savings", model.AccountTypeSavings)
	require.NoError(t, err)

	require.NoError(t, store.ArchiveAccount(ctx, acc.ID))

	accounts, err := store.GetAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.True(t, accounts[0].Archived)
	assert.False(t, accounts[0].CreatedAt.IsZero())

	assert.ErrorIs(t, store.ArchiveAccount(ctx, 404), common.ErrNotFound)
	assert.ErrorIs(t, store.ArchiveAccount(ctx, 0), ErrInvalidID)
}

func TestSQLiteStorage_ReadsUnknownAccountTypes(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, `INSERT INTO accounts (name, account_type) VALUES ('Amex', 'credit')`)
	require.NoError(t, err)

	accounts, err := store.GetAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, model.AccountType("credit"), accounts[0].Type)
	assert.False(t, accounts[0].Type.IsValid())

	summaries, err := store.GetAccountSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Amex", summaries[0].Name)
	assert.Equal(t, model.AccountType("credit"), summaries[0].Type)

	_, err = store.CreateAccount(ctx, "Amex", "credit")
	assert.ErrorIs(t, err, ErrInvalidAccount, "writes still enforce known types")
}

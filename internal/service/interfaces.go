// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Thaonnor/finsight/internal/model"
)

// Repository defines the data operations that work both directly against
// storage and inside a database transaction.
type Repository interface {
	// Account operations
	CreateAccount(ctx context.Context, name string, accountType model.AccountType) (*model.Account, error)
	GetAccounts(ctx context.Context) ([]model.Account, error)
	GetAccountIDs(ctx context.Context) ([]int64, error)
	ArchiveAccount(ctx context.Context, id int64) error

	// Category operations
	CreateCategory(ctx context.Context, name string, parentID *int64) (*model.Category, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string, parentID *int64) error
	DeleteCategory(ctx context.Context, id int64) error

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransaction(ctx context.Context, id int64) (*model.Transaction, error)
	GetTransactionsByAccount(ctx context.Context, accountID int64) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error

	// Reporting
	CountRows(ctx context.Context) (RowCounts, error)
	GetAccountSummaries(ctx context.Context) ([]AccountSummary, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	Repository

	// Database management
	Migrate(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Repository
	Commit() error
	Rollback() error
}

// RowCounts holds the number of rows in each finsight table.
type RowCounts struct {
	Accounts     int
	Categories   int
	Transactions int
}

// AccountSummary aggregates the transactions booked against one account.
type AccountSummary struct {
	Name         string
	Type         model.AccountType
	AccountID    int64
	Count        int
	DebitCents   int64
	CreditCents  int64
	FirstBooking time.Time
	LastBooking  time.Time
}

// NetCents returns credits minus debits.
func (s AccountSummary) NetCents() int64 {
	return s.CreditCents - s.DebitCents
}

// DateRange represents a time period with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range, bounds inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

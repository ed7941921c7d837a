// Package seed populates a finsight database with development data.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Thaonnor/finsight/internal/common"
	"github.com/Thaonnor/finsight/internal/model"
	"github.com/Thaonnor/finsight/internal/service"
	"github.com/google/uuid"
)

// ErrUnknownCategory is returned when a fixture references a category that
// is neither created by the run nor present in the store.
var ErrUnknownCategory = errors.New("unknown category")

// Summary describes what a seeding run inserted.
type Summary struct {
	PerAccount   map[int64]int
	Window       service.DateRange
	RunID        string
	Categories   int
	Accounts     int
	Transactions int
}

// ProgressFunc is called after each transaction insert with the number
// inserted so far and the planned total.
type ProgressFunc func(done, total int)

// Option configures a Seeder.
type Option func(*Seeder)

// WithRand sets the random source used for sampling.
func WithRand(r *rand.Rand) Option {
	return func(s *Seeder) {
		s.rng = r
	}
}

// WithClock sets the clock that anchors the date window.
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) {
		s.now = now
	}
}

// WithProgress registers a callback for transaction inserts.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Seeder) {
		s.progress = fn
	}
}

// Seeder inserts the fixture categories, accounts and a random set of
// transactions in a single database transaction.
type Seeder struct {
	store    service.Storage
	rng      *rand.Rand
	now      func() time.Time
	progress ProgressFunc
}

// New creates a Seeder for the given store.
func New(store service.Storage, opts ...Option) *Seeder {
	s := &Seeder{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(s.now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return s
}

// Run performs one seeding run. Nothing is written unless every insert
// succeeds.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	if ctx == nil {
		return nil, fmt.Errorf("seed: context cannot be nil")
	}

	summary := &Summary{
		RunID:      uuid.NewString(),
		PerAccount: make(map[int64]int),
		Window:     Window(s.now()),
	}
	logger := slog.Default().With("run_id", summary.RunID)

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		// No-op once committed.
		_ = tx.Rollback()
	}()

	categoryIDs, err := s.insertCategories(ctx, tx)
	if err != nil {
		return nil, err
	}
	summary.Categories = len(Categories)

	for _, spec := range Accounts {
		if _, err := tx.CreateAccount(ctx, spec.Name, spec.Type); err != nil {
			return nil, fmt.Errorf("failed to insert account %q: %w", spec.Name, err)
		}
	}
	summary.Accounts = len(Accounts)

	accountIDs, err := tx.GetAccountIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read account ids: %w", err)
	}

	planned, err := s.plan(accountIDs, categoryIDs, summary.Window)
	if err != nil {
		return nil, err
	}

	for i := range planned {
		txn := &planned[i]
		if err := tx.CreateTransaction(ctx, txn); err != nil {
			return nil, fmt.Errorf("seed transaction %d of %d: %w", i+1, len(planned), err)
		}
		summary.PerAccount[txn.AccountID]++
		summary.Transactions++
		if s.progress != nil {
			s.progress(i+1, len(planned))
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logger.Info("Seeded test data",
		"categories", summary.Categories,
		"accounts", summary.Accounts,
		"transactions", summary.Transactions,
		"window_start", summary.Window.Start.Format(model.DateLayout),
		"window_end", summary.Window.End.Format(model.DateLayout))

	return summary, nil
}

// insertCategories creates the fixture categories and returns the ids of
// every category a template may reference.
func (s *Seeder) insertCategories(ctx context.Context, tx service.Transaction) (map[string]int64, error) {
	ids := make(map[string]int64, len(Categories)+1)

	for _, spec := range Categories {
		var parentID *int64
		if spec.Parent != "" {
			id, ok := ids[spec.Parent]
			if !ok {
				return nil, fmt.Errorf("%w: parent %q of %q", ErrUnknownCategory, spec.Parent, spec.Name)
			}
			parentID = &id
		}

		cat, err := tx.CreateCategory(ctx, spec.Name, parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert category %q: %w", spec.Name, err)
		}
		ids[spec.Name] = cat.ID
	}

	for _, tmpl := range Templates {
		if _, ok := ids[tmpl.Category]; ok {
			continue
		}
		cat, err := tx.GetCategoryByName(ctx, tmpl.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrUnknownCategory, tmpl.Category, err)
		}
		ids[tmpl.Category] = cat.ID
	}

	return ids, nil
}

// plan samples the transactions for every account.
func (s *Seeder) plan(accountIDs []int64, categoryIDs map[string]int64, window service.DateRange) ([]model.Transaction, error) {
	if len(accountIDs) == 0 {
		return nil, common.ErrNoAccounts
	}

	var planned []model.Transaction

	for _, accountID := range accountIDs {
		count := s.between(MinTransactionsPerAccount, MaxTransactionsPerAccount)
		for range count {
			tmpl := Templates[s.rng.IntN(len(Templates))]
			categoryID, ok := categoryIDs[tmpl.Category]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, tmpl.Category)
			}

			planned = append(planned, model.Transaction{
				AccountID:   accountID,
				AmountCents: int64(s.between(MinAmountCents, MaxAmountCents)),
				Type:        tmpl.Type,
				Description: tmpl.Description,
				Date:        window.Start.AddDate(0, 0, s.rng.IntN(WindowDays+1)),
				CategoryID:  categoryID,
			})
		}
	}

	return planned, nil
}

func (s *Seeder) between(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

// Window returns the calendar dates transactions are spread over: the
// WindowDays days before now, through today.
func Window(now time.Time) service.DateRange {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return service.DateRange{
		Start: end.AddDate(0, 0, -WindowDays),
		End:   end,
	}
}

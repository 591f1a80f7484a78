package stores

import (
	"context"
	"fmt"

	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/data/db"
)

// Ledger implements ledger.Ledger using SQLite.
type Ledger struct {
	db   *db.DB
	view *AccountStore
}

var _ ledger.Ledger = (*Ledger)(nil)

// NewLedger creates a SQLite-backed ledger.
func NewLedger(database *db.DB) *Ledger {
	return &Ledger{
		db:   database,
		view: NewAccountStore(database.Queries(), ""),
	}
}

// Account returns the committed account at addr.
func (l *Ledger) Account(ctx context.Context, addr ledger.Address) (ledger.Account, error) {
	return l.view.Account(ctx, addr)
}

// Accounts returns committed accounts matching the filter.
func (l *Ledger) Accounts(ctx context.Context, filter ledger.AccountFilter) ([]ledger.Account, error) {
	return l.view.Accounts(ctx, filter)
}

// Transfers returns committed journal entries matching the filter.
func (l *Ledger) Transfers(ctx context.Context, filter ledger.TransferFilter) ([]ledger.Transfer, error) {
	return l.view.Transfers(ctx, filter)
}

// Update runs fn inside one SQLite transaction. A database that stays busy
// past its timeout surfaces as ledger.ErrAccountLocked.
func (l *Ledger) Update(ctx context.Context, txID string, fn func(ledger.Store) error) error {
	err := l.db.WithTx(ctx, func(q *db.Queries) error {
		return fn(NewAccountStore(q, txID))
	})
	if err != nil && IsBusyError(err) {
		return fmt.Errorf("%w: %w", ledger.ErrAccountLocked, err)
	}
	return err
}

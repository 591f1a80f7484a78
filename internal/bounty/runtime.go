package bounty

import (
	"context"
	"errors"
	"time"

	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/logging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TxFunc is the body of one transition. It runs with every declared record
// locked and inside a single storage transaction.
type TxFunc func(ctx context.Context, s ledger.Store) error

// Runtime executes transitions as atomic units: the declared records are
// locked, then the body runs in one ledger transaction. Any error rolls back
// every write and transfer the body made.
type Runtime struct {
	ledger      ledger.Ledger
	locks       *lockset
	lockTimeout time.Duration
}

// NewRuntime creates a runtime over l. A positive lockTimeout bounds how long
// a transition waits for its records.
func NewRuntime(l ledger.Ledger, lockTimeout time.Duration) *Runtime {
	return &Runtime{
		ledger:      l,
		locks:       newLockset(),
		lockTimeout: lockTimeout,
	}
}

// Execute runs fn as the transition op over the records in keys and returns
// the transaction ID it ran under.
func (r *Runtime) Execute(ctx context.Context, op string, keys []ledger.Address, fn TxFunc) (string, error) {
	txID := uuid.NewString()
	ctx = logging.WithTxID(ctx, txID)
	log := logging.Operation("runtime", op)

	release, err := r.locks.Acquire(ctx, keys, r.lockTimeout)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("records busy")
		return txID, err
	}
	defer release()

	start := time.Now()
	err = r.ledger.Update(ctx, txID, func(s ledger.Store) error {
		return fn(ctx, s)
	})

	var evt *zerolog.Event
	switch {
	case err == nil:
		evt = log.Debug()
	case errors.Is(err, ledger.ErrAccountLocked):
		evt = log.Error().Err(err)
	default:
		evt = log.Warn().Err(err)
	}
	evt.Ctx(ctx).
		Int("records", len(keys)).
		Dur("elapsed", time.Since(start)).
		Msg("transition")

	return txID, err
}

package bounty

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/colonyops/bounty/internal/core/ledger"
)

type lockEntry struct {
	sem  chan struct{}
	refs int
}

// lockset hands out exclusive locks on record addresses. Multiple records
// are always locked in ascending address order.
type lockset struct {
	mu      sync.Mutex
	entries map[ledger.Address]*lockEntry
}

func newLockset() *lockset {
	return &lockset{entries: make(map[ledger.Address]*lockEntry)}
}

// Acquire locks every distinct key in keys. It gives up when ctx ends or,
// for a positive timeout, once timeout has passed, returning
// ledger.ErrAccountLocked with nothing held. The returned func releases all
// locks.
func (ls *lockset) Acquire(ctx context.Context, keys []ledger.Address, timeout time.Duration) (func(), error) {
	ordered := sortedKeys(keys)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	held := make([]ledger.Address, 0, len(ordered))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			ls.unlock(held[i])
		}
	}

	for _, key := range ordered {
		if err := ls.lock(ctx, key); err != nil {
			release()
			return func() {}, fmt.Errorf("%w: %s: %w", ledger.ErrAccountLocked, key, err)
		}
		held = append(held, key)
	}

	return release, nil
}

func (ls *lockset) lock(ctx context.Context, key ledger.Address) error {
	ls.mu.Lock()
	e, ok := ls.entries[key]
	if !ok {
		e = &lockEntry{sem: make(chan struct{}, 1)}
		ls.entries[key] = e
	}
	e.refs++
	ls.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		ls.drop(key, e)
		return ctx.Err()
	}
}

func (ls *lockset) unlock(key ledger.Address) {
	ls.mu.Lock()
	e := ls.entries[key]
	ls.mu.Unlock()

	<-e.sem
	ls.drop(key, e)
}

func (ls *lockset) drop(key ledger.Address, e *lockEntry) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(ls.entries, key)
	}
}

// sortedKeys returns the distinct non-zero keys in ascending byte order.
func sortedKeys(keys []ledger.Address) []ledger.Address {
	out := make([]ledger.Address, 0, len(keys))
	for _, k := range keys {
		if !k.IsZero() {
			out = append(out, k)
		}
	}
	slices.SortFunc(out, func(a, b ledger.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return slices.Compact(out)
}

package stores

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/data/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewLedger(database)
}

// fundedWallet creates a wallet holding amount and returns its address.
func fundedWallet(t *testing.T, l *Ledger, amount uint64) ledger.Address {
	t.Helper()
	addr := ledger.NewAddress()
	err := l.Update(context.Background(), "setup", func(s ledger.Store) error {
		if err := s.CreateAccount(context.Background(), ledger.Account{Address: addr, Owner: ledger.OwnerSystem}); err != nil {
			return err
		}
		return s.Mint(context.Background(), addr, amount)
	})
	require.NoError(t, err)
	return addr
}

func TestLedger_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	addr := ledger.NewAddress()

	err := l.Update(ctx, "tx-1", func(s ledger.Store) error {
		return s.CreateAccount(ctx, ledger.Account{
			Address: addr,
			Owner:   ledger.OwnerTodoList,
			Data:    []byte{1, 2, 3},
			Label:   "chores",
		})
	})
	require.NoError(t, err)

	got, err := l.Account(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, addr, got.Address)
	assert.Equal(t, ledger.OwnerTodoList, got.Owner)
	assert.Equal(t, []byte{1, 2, 3}, got.Data)
	assert.Equal(t, "chores", got.Label)
	assert.Zero(t, got.Balance)
	assert.False(t, got.CreatedAt.IsZero())

	t.Run("duplicate address", func(t *testing.T) {
		err := l.Update(ctx, "tx-2", func(s ledger.Store) error {
			return s.CreateAccount(ctx, ledger.Account{Address: addr, Owner: ledger.OwnerSystem})
		})
		assert.ErrorIs(t, err, ledger.ErrAccountInUse)
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := l.Account(ctx, ledger.NewAddress())
		assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	})

	t.Run("filter by owner", func(t *testing.T) {
		fundedWallet(t, l, 1)

		lists, err := l.Accounts(ctx, ledger.AccountFilter{Owner: ledger.OwnerTodoList})
		require.NoError(t, err)
		require.Len(t, lists, 1)
		assert.Equal(t, addr, lists[0].Address)

		all, err := l.Accounts(ctx, ledger.AccountFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestLedger_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("moves and journals", func(t *testing.T) {
		l := newTestLedger(t)
		from := fundedWallet(t, l, 1000)
		to := fundedWallet(t, l, 0)

		err := l.Update(ctx, "tx-move", func(s ledger.Store) error {
			return s.Move(ctx, from, to, 400, ledger.TransferDeposit)
		})
		require.NoError(t, err)

		src, err := l.Account(ctx, from)
		require.NoError(t, err)
		dst, err := l.Account(ctx, to)
		require.NoError(t, err)
		assert.Equal(t, uint64(600), src.Balance)
		assert.Equal(t, uint64(400), dst.Balance)

		transfers, err := l.Transfers(ctx, ledger.TransferFilter{TxID: "tx-move"})
		require.NoError(t, err)
		require.Len(t, transfers, 1)
		assert.Equal(t, from, transfers[0].From)
		assert.Equal(t, to, transfers[0].To)
		assert.Equal(t, uint64(400), transfers[0].Amount)
		assert.Equal(t, ledger.TransferDeposit, transfers[0].Kind)
		assert.Contains(t, transfers[0].ID, "tr_")
	})

	t.Run("insufficient funds", func(t *testing.T) {
		l := newTestLedger(t)
		from := fundedWallet(t, l, 10)
		to := fundedWallet(t, l, 0)

		err := l.Update(ctx, "tx", func(s ledger.Store) error {
			return s.Move(ctx, from, to, 11, ledger.TransferDeposit)
		})
		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	})

	t.Run("overflow", func(t *testing.T) {
		l := newTestLedger(t)
		from := fundedWallet(t, l, 10)
		to := fundedWallet(t, l, math.MaxInt64)

		err := l.Update(ctx, "tx", func(s ledger.Store) error {
			return s.Move(ctx, from, to, 1, ledger.TransferDeposit)
		})
		assert.ErrorIs(t, err, ledger.ErrBalanceOverflow)
	})

	t.Run("zero amount is a no-op", func(t *testing.T) {
		l := newTestLedger(t)
		from := fundedWallet(t, l, 0)

		err := l.Update(ctx, "tx-zero", func(s ledger.Store) error {
			return s.Move(ctx, from, ledger.NewAddress(), 0, ledger.TransferDeposit)
		})
		require.NoError(t, err)

		transfers, err := l.Transfers(ctx, ledger.TransferFilter{TxID: "tx-zero"})
		require.NoError(t, err)
		assert.Empty(t, transfers)
	})
}

func TestLedger_UpdateRollsBack(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	from := fundedWallet(t, l, 1000)
	to := fundedWallet(t, l, 0)
	created := ledger.NewAddress()

	boom := errors.New("boom")
	err := l.Update(ctx, "tx-fail", func(s ledger.Store) error {
		if err := s.CreateAccount(ctx, ledger.Account{Address: created, Owner: ledger.OwnerSystem}); err != nil {
			return err
		}
		if err := s.Move(ctx, from, to, 500, ledger.TransferDeposit); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	src, err := l.Account(ctx, from)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), src.Balance)

	_, err = l.Account(ctx, created)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	transfers, err := l.Transfers(ctx, ledger.TransferFilter{TxID: "tx-fail"})
	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestLedger_CloseAccount(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	full := fundedWallet(t, l, 5)
	empty := fundedWallet(t, l, 0)

	err := l.Update(ctx, "tx", func(s ledger.Store) error {
		return s.CloseAccount(ctx, full)
	})
	assert.ErrorIs(t, err, ledger.ErrAccountNotEmpty)

	err = l.Update(ctx, "tx", func(s ledger.Store) error {
		return s.CloseAccount(ctx, empty)
	})
	require.NoError(t, err)

	_, err = l.Account(ctx, empty)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestLedger_WriteData(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	addr := fundedWallet(t, l, 0)

	err := l.Update(ctx, "tx", func(s ledger.Store) error {
		return s.WriteData(ctx, addr, []byte("hello"))
	})
	require.NoError(t, err)

	got, err := l.Account(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got.Data)

	err = l.Update(ctx, "tx", func(s ledger.Store) error {
		return s.WriteData(ctx, ledger.NewAddress(), []byte("x"))
	})
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestLedger_TransfersByAccount(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	a := fundedWallet(t, l, 100)
	b := fundedWallet(t, l, 100)
	c := fundedWallet(t, l, 100)

	require.NoError(t, l.Update(ctx, "tx-ab", func(s ledger.Store) error {
		return s.Move(ctx, a, b, 10, ledger.TransferDeposit)
	}))
	require.NoError(t, l.Update(ctx, "tx-bc", func(s ledger.Store) error {
		return s.Move(ctx, b, c, 5, ledger.TransferRefund)
	}))

	forB, err := l.Transfers(ctx, ledger.TransferFilter{Account: b})
	require.NoError(t, err)
	require.Len(t, forB, 3, "airdrop plus both moves")
	assert.Equal(t, "tx-bc", forB[0].TxID, "newest first")

	limited, err := l.Transfers(ctx, ledger.TransferFilter{Account: b, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	airdrops, err := l.Transfers(ctx, ledger.TransferFilter{TxID: "setup"})
	require.NoError(t, err)
	for _, tr := range airdrops {
		assert.Equal(t, ledger.TransferAirdrop, tr.Kind)
		assert.True(t, tr.From.IsZero())
	}
}

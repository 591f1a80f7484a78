package escrow

import (
	"context"
	"fmt"
	"testing"

	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/todolist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type move struct {
	from, to ledger.Address
	amount   uint64
	kind     ledger.TransferKind
}

// memMover is an in-memory Mover that records every move.
type memMover struct {
	balances map[ledger.Address]uint64
	moves    []move
}

func newMemMover() *memMover {
	return &memMover{balances: map[ledger.Address]uint64{}}
}

func (m *memMover) Account(_ context.Context, addr ledger.Address) (ledger.Account, error) {
	bal, ok := m.balances[addr]
	if !ok {
		return ledger.Account{}, ledger.ErrAccountNotFound
	}
	return ledger.Account{Address: addr, Balance: bal}, nil
}

func (m *memMover) Move(_ context.Context, from, to ledger.Address, amount uint64, kind ledger.TransferKind) error {
	if m.balances[from] < amount {
		return ledger.ErrInsufficientFunds
	}
	m.balances[from] -= amount
	m.balances[to] += amount
	m.moves = append(m.moves, move{from, to, amount, kind})
	return nil
}

func TestDepositAmount(t *testing.T) {
	tests := []struct {
		bounty, reserved uint64
		want             uint64
		wantErr          bool
	}{
		{bounty: 1000, reserved: 500, want: 500},
		{bounty: 500, reserved: 500, want: 0},
		{bounty: 499, reserved: 500, wantErr: true},
		{bounty: 0, reserved: 0, want: 0},
		{bounty: 0, reserved: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("bounty %d reserved %d", tt.bounty, tt.reserved), func(t *testing.T) {
			got, err := DepositAmount(tt.bounty, tt.reserved)
			if tt.wantErr {
				assert.ErrorIs(t, err, todolist.ErrBountyTooSmall)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscrow_Deposit(t *testing.T) {
	ctx := context.Background()

	t.Run("tops up to bounty", func(t *testing.T) {
		m := newMemMover()
		payer, item := ledger.NewAddress(), ledger.NewAddress()
		m.balances[payer] = 2000
		m.balances[item] = 500

		moved, err := New(m).Deposit(ctx, payer, item, 1000)
		require.NoError(t, err)
		assert.Equal(t, uint64(500), moved)
		assert.Equal(t, uint64(1000), m.balances[item])
		assert.Equal(t, uint64(1500), m.balances[payer])
		require.Len(t, m.moves, 1)
		assert.Equal(t, ledger.TransferDeposit, m.moves[0].kind)
	})

	t.Run("exact reserve moves nothing", func(t *testing.T) {
		m := newMemMover()
		payer, item := ledger.NewAddress(), ledger.NewAddress()
		m.balances[payer] = 0
		m.balances[item] = 500

		moved, err := New(m).Deposit(ctx, payer, item, 500)
		require.NoError(t, err)
		assert.Zero(t, moved)
		assert.Empty(t, m.moves)
	})

	t.Run("too small", func(t *testing.T) {
		m := newMemMover()
		payer, item := ledger.NewAddress(), ledger.NewAddress()
		m.balances[payer] = 2000
		m.balances[item] = 500

		_, err := New(m).Deposit(ctx, payer, item, 499)
		require.ErrorIs(t, err, todolist.ErrBountyTooSmall)
		assert.Empty(t, m.moves)
	})

	t.Run("payer short of funds", func(t *testing.T) {
		m := newMemMover()
		payer, item := ledger.NewAddress(), ledger.NewAddress()
		m.balances[payer] = 10
		m.balances[item] = 500

		_, err := New(m).Deposit(ctx, payer, item, 1000)
		require.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	})
}

func TestEscrow_RefundAndPayout(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(*Escrow, ledger.Address, ledger.Address) (uint64, error)
		kind ledger.TransferKind
	}{
		{"refund", func(e *Escrow, item, to ledger.Address) (uint64, error) { return e.Refund(ctx, item, to) }, ledger.TransferRefund},
		{"payout", func(e *Escrow, item, to ledger.Address) (uint64, error) { return e.Payout(ctx, item, to) }, ledger.TransferPayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMemMover()
			item, to := ledger.NewAddress(), ledger.NewAddress()
			m.balances[item] = 1000
			m.balances[to] = 7

			moved, err := tt.run(New(m), item, to)
			require.NoError(t, err)
			assert.Equal(t, uint64(1000), moved)
			assert.Zero(t, m.balances[item])
			assert.Equal(t, uint64(1007), m.balances[to])
			require.Len(t, m.moves, 1)
			assert.Equal(t, tt.kind, m.moves[0].kind)
		})
	}

	t.Run("missing item", func(t *testing.T) {
		_, err := New(newMemMover()).Refund(ctx, ledger.NewAddress(), ledger.NewAddress())
		assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	})
}

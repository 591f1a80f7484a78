// Package escrow computes and performs the value movements of an item's
// bounty: the deposit when it is added, the refund when it is cancelled and
// the payout when both parties confirm it.
package escrow

import (
	"context"
	"fmt"

	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/todolist"
)

// Mover is the single value-movement primitive escrow depends on.
// ledger.Store satisfies it.
type Mover interface {
	Account(ctx context.Context, addr ledger.Address) (ledger.Account, error)
	Move(ctx context.Context, from, to ledger.Address, amount uint64, kind ledger.TransferKind) error
}

// Escrow moves bounty value in and out of item accounts.
type Escrow struct {
	mover Mover
}

// New returns an Escrow that moves value through m.
func New(m Mover) *Escrow {
	return &Escrow{mover: m}
}

// DepositAmount returns the transfer needed to bring an item account already
// holding reserved up to bounty. Returns ErrBountyTooSmall when bounty does
// not cover reserved.
func DepositAmount(bounty, reserved uint64) (uint64, error) {
	if bounty < reserved {
		return 0, todolist.ErrBountyTooSmall
	}
	return bounty - reserved, nil
}

// Deposit tops up item from payer so its balance equals bounty and returns
// the amount moved. Nothing moves when the balance already equals bounty.
func (e *Escrow) Deposit(ctx context.Context, payer, item ledger.Address, bounty uint64) (uint64, error) {
	held, err := e.balance(ctx, item)
	if err != nil {
		return 0, err
	}

	amount, err := DepositAmount(bounty, held)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, nil
	}

	if err := e.mover.Move(ctx, payer, item, amount, ledger.TransferDeposit); err != nil {
		return 0, fmt.Errorf("deposit bounty: %w", err)
	}
	return amount, nil
}

// Refund returns the item's entire balance to its creator.
func (e *Escrow) Refund(ctx context.Context, item, creator ledger.Address) (uint64, error) {
	return e.release(ctx, item, creator, ledger.TransferRefund)
}

// Payout releases the item's entire balance to the list owner.
func (e *Escrow) Payout(ctx context.Context, item, owner ledger.Address) (uint64, error) {
	return e.release(ctx, item, owner, ledger.TransferPayout)
}

func (e *Escrow) release(ctx context.Context, item, to ledger.Address, kind ledger.TransferKind) (uint64, error) {
	held, err := e.balance(ctx, item)
	if err != nil {
		return 0, err
	}
	if held == 0 {
		return 0, nil
	}

	if err := e.mover.Move(ctx, item, to, held, kind); err != nil {
		return 0, fmt.Errorf("%s bounty: %w", kind, err)
	}
	return held, nil
}

func (e *Escrow) balance(ctx context.Context, addr ledger.Address) (uint64, error) {
	acct, err := e.mover.Account(ctx, addr)
	if err != nil {
		return 0, fmt.Errorf("read escrow balance: %w", err)
	}
	return acct.Balance, nil
}

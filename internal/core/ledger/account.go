package ledger

import (
	"context"
	"time"
)

// Owner names the program that controls an account's data.
type Owner string

const (
	// OwnerSystem owns plain wallets that hold value and no data.
	OwnerSystem Owner = "system"
	// OwnerTodoList owns list and item records.
	OwnerTodoList Owner = "todolist"
)

// Account is one record in the ledger.
type Account struct {
	Address   Address   `json:"address"`
	Owner     Owner     `json:"owner"`
	Balance   uint64    `json:"balance"`
	Data      []byte    `json:"-"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransferKind classifies a value movement in the journal.
type TransferKind string

const (
	TransferAirdrop  TransferKind = "airdrop"
	TransferAllocate TransferKind = "allocate"
	TransferDeposit  TransferKind = "deposit"
	TransferRefund   TransferKind = "refund"
	TransferPayout   TransferKind = "payout"
)

// Transfer is a journaled value movement. From is the zero address for airdrops.
type Transfer struct {
	ID        string       `json:"id"`
	TxID      string       `json:"tx_id"`
	From      Address      `json:"from"`
	To        Address      `json:"to"`
	Amount    uint64       `json:"amount"`
	Kind      TransferKind `json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}

// AccountFilter controls which accounts Accounts returns.
type AccountFilter struct {
	Owner Owner // empty means all owners
}

// TransferFilter controls which transfers Transfers returns.
type TransferFilter struct {
	Account Address // zero means all accounts; otherwise matches either side
	TxID    string  // empty means all transactions
	Limit   int     // 0 means no limit
}

// Reader exposes read access to the ledger.
type Reader interface {
	// Account returns the account at addr.
	// Returns ErrAccountNotFound if nothing lives there.
	Account(ctx context.Context, addr Address) (Account, error)

	// Accounts returns accounts matching the filter, oldest first.
	Accounts(ctx context.Context, filter AccountFilter) ([]Account, error)

	// Transfers returns journal entries matching the filter, newest first.
	Transfers(ctx context.Context, filter TransferFilter) ([]Transfer, error)
}

// Store is the read/write view of the ledger inside one transaction.
// Every balance change goes through Move or Mint and is journaled.
type Store interface {
	Reader

	// CreateAccount allocates an empty account. The balance of acct is ignored.
	// Returns ErrAccountInUse if the address is taken.
	CreateAccount(ctx context.Context, acct Account) error

	// WriteData replaces the data of an existing account.
	WriteData(ctx context.Context, addr Address, data []byte) error

	// Move transfers amount from one account to another.
	// Returns ErrInsufficientFunds or ErrBalanceOverflow without changing anything.
	Move(ctx context.Context, from, to Address, amount uint64, kind TransferKind) error

	// Mint credits amount to an account out of thin air.
	Mint(ctx context.Context, to Address, amount uint64) error

	// CloseAccount removes an account. Returns ErrAccountNotEmpty if it still
	// holds value.
	CloseAccount(ctx context.Context, addr Address) error
}

// Ledger runs transactions against durable storage.
type Ledger interface {
	Reader

	// Update runs fn in a single storage transaction tagged with txID.
	// Any error returned by fn rolls back every change fn made.
	Update(ctx context.Context, txID string, fn func(Store) error) error
}

package stores

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/data/db"
	"github.com/colonyops/bounty/pkg/randid"
)

// AccountStore implements ledger.Store over one set of queries, usually
// bound to a transaction.
type AccountStore struct {
	q    *db.Queries
	txID string
	now  func() time.Time
}

var _ ledger.Store = (*AccountStore)(nil)

// NewAccountStore creates a store that journals transfers under txID.
func NewAccountStore(q *db.Queries, txID string) *AccountStore {
	return &AccountStore{q: q, txID: txID, now: time.Now}
}

// Account returns the account at addr.
func (s *AccountStore) Account(ctx context.Context, addr ledger.Address) (ledger.Account, error) {
	row, err := s.q.GetAccount(ctx, addr[:])
	if err != nil {
		if IsNotFoundError(err) {
			return ledger.Account{}, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, addr)
		}
		return ledger.Account{}, fmt.Errorf("get account: %w", err)
	}
	return rowToAccount(row)
}

// Accounts returns accounts matching the filter, oldest first.
func (s *AccountStore) Accounts(ctx context.Context, filter ledger.AccountFilter) ([]ledger.Account, error) {
	var (
		rows []db.Account
		err  error
	)
	if filter.Owner != "" {
		rows, err = s.q.ListAccountsByOwner(ctx, string(filter.Owner))
	} else {
		rows, err = s.q.ListAccounts(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts := make([]ledger.Account, 0, len(rows))
	for _, row := range rows {
		acct, err := rowToAccount(row)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// Transfers returns journal entries matching the filter, newest first.
func (s *AccountStore) Transfers(ctx context.Context, filter ledger.TransferFilter) ([]ledger.Transfer, error) {
	limit := int64(filter.Limit)
	if limit <= 0 {
		limit = -1
	}

	var (
		rows []db.Transfer
		err  error
	)
	switch {
	case !filter.Account.IsZero():
		rows, err = s.q.ListTransfersByAccount(ctx, db.ListTransfersByAccountParams{
			Address: filter.Account[:],
			Limit:   limit,
		})
	case filter.TxID != "":
		rows, err = s.q.ListTransfersByTx(ctx, db.ListTransfersByTxParams{
			TxID:  filter.TxID,
			Limit: limit,
		})
	default:
		rows, err = s.q.ListTransfers(ctx, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}

	transfers := make([]ledger.Transfer, 0, len(rows))
	for _, row := range rows {
		tr, err := rowToTransfer(row)
		if err != nil {
			return nil, err
		}
		if filter.TxID != "" && tr.TxID != filter.TxID {
			continue
		}
		transfers = append(transfers, tr)
	}
	return transfers, nil
}

// CreateAccount allocates an empty account.
func (s *AccountStore) CreateAccount(ctx context.Context, acct ledger.Account) error {
	if acct.Address.IsZero() {
		return fmt.Errorf("create account: zero address")
	}

	data := acct.Data
	if data == nil {
		data = []byte{}
	}

	now := s.now().UnixNano()
	err := s.q.CreateAccount(ctx, db.CreateAccountParams{
		Address:   acct.Address[:],
		Owner:     string(acct.Owner),
		Data:      data,
		Label:     acct.Label,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", ledger.ErrAccountInUse, acct.Address)
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// WriteData replaces the data of an existing account.
func (s *AccountStore) WriteData(ctx context.Context, addr ledger.Address, data []byte) error {
	n, err := s.q.UpdateAccountData(ctx, db.UpdateAccountDataParams{
		Data:      data,
		UpdatedAt: s.now().UnixNano(),
		Address:   addr[:],
	})
	if err != nil {
		return fmt.Errorf("write account data: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, addr)
	}
	return nil
}

// Move transfers amount between two accounts and journals it.
// Moving zero is a no-op.
func (s *AccountStore) Move(ctx context.Context, from, to ledger.Address, amount uint64, kind ledger.TransferKind) error {
	if amount == 0 {
		return nil
	}

	src, err := s.Account(ctx, from)
	if err != nil {
		return err
	}
	if src.Balance < amount {
		return fmt.Errorf("%w: %s holds %d, needs %d", ledger.ErrInsufficientFunds, from, src.Balance, amount)
	}

	if from != to {
		dst, err := s.Account(ctx, to)
		if err != nil {
			return err
		}
		if err := checkCredit(dst.Balance, amount); err != nil {
			return err
		}

		if err := s.setBalance(ctx, from, src.Balance-amount); err != nil {
			return err
		}
		if err := s.setBalance(ctx, to, dst.Balance+amount); err != nil {
			return err
		}
	}

	return s.journal(ctx, from[:], to, amount, kind)
}

// Mint credits amount to an existing account.
func (s *AccountStore) Mint(ctx context.Context, to ledger.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}

	dst, err := s.Account(ctx, to)
	if err != nil {
		return err
	}
	if err := checkCredit(dst.Balance, amount); err != nil {
		return err
	}
	if err := s.setBalance(ctx, to, dst.Balance+amount); err != nil {
		return err
	}

	return s.journal(ctx, nil, to, amount, ledger.TransferAirdrop)
}

// CloseAccount removes an empty account.
func (s *AccountStore) CloseAccount(ctx context.Context, addr ledger.Address) error {
	acct, err := s.Account(ctx, addr)
	if err != nil {
		return err
	}
	if acct.Balance != 0 {
		return fmt.Errorf("%w: %s holds %d", ledger.ErrAccountNotEmpty, addr, acct.Balance)
	}

	if _, err := s.q.DeleteAccount(ctx, addr[:]); err != nil {
		return fmt.Errorf("close account: %w", err)
	}
	return nil
}

func (s *AccountStore) setBalance(ctx context.Context, addr ledger.Address, balance uint64) error {
	n, err := s.q.UpdateAccountBalance(ctx, db.UpdateAccountBalanceParams{
		Balance:   int64(balance),
		UpdatedAt: s.now().UnixNano(),
		Address:   addr[:],
	})
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, addr)
	}
	return nil
}

func (s *AccountStore) journal(ctx context.Context, from []byte, to ledger.Address, amount uint64, kind ledger.TransferKind) error {
	err := s.q.InsertTransfer(ctx, db.InsertTransferParams{
		ID:          randid.Prefixed("tr", 12),
		TxID:        s.txID,
		FromAddress: from,
		ToAddress:   to[:],
		Amount:      int64(amount),
		Kind:        string(kind),
		CreatedAt:   s.now().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("journal transfer: %w", err)
	}
	return nil
}

// checkCredit rejects balances that would not fit the INTEGER column.
func checkCredit(balance, amount uint64) error {
	if amount > math.MaxInt64 || balance > math.MaxInt64-amount {
		return fmt.Errorf("%w: %d + %d", ledger.ErrBalanceOverflow, balance, amount)
	}
	return nil
}

func toAddress(b []byte) (ledger.Address, error) {
	var a ledger.Address
	if len(b) != ledger.AddressLen {
		return a, fmt.Errorf("%w: address of %d bytes", ledger.ErrInvalidAccountData, len(b))
	}
	copy(a[:], b)
	return a, nil
}

func rowToAccount(row db.Account) (ledger.Account, error) {
	addr, err := toAddress(row.Address)
	if err != nil {
		return ledger.Account{}, err
	}

	return ledger.Account{
		Address:   addr,
		Owner:     ledger.Owner(row.Owner),
		Balance:   uint64(row.Balance),
		Data:      row.Data,
		Label:     row.Label,
		CreatedAt: time.Unix(0, row.CreatedAt),
		UpdatedAt: time.Unix(0, row.UpdatedAt),
	}, nil
}

func rowToTransfer(row db.Transfer) (ledger.Transfer, error) {
	to, err := toAddress(row.ToAddress)
	if err != nil {
		return ledger.Transfer{}, err
	}

	var from ledger.Address
	if len(row.FromAddress) > 0 {
		if from, err = toAddress(row.FromAddress); err != nil {
			return ledger.Transfer{}, err
		}
	}

	return ledger.Transfer{
		ID:        row.ID,
		TxID:      row.TxID,
		From:      from,
		To:        to,
		Amount:    uint64(row.Amount),
		Kind:      ledger.TransferKind(row.Kind),
		CreatedAt: time.Unix(0, row.CreatedAt),
	}, nil
}

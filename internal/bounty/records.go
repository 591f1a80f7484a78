package bounty

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/todolist"
)

// ListView is a list record with the account that holds it.
type ListView struct {
	Address ledger.Address `json:"address"`
	Balance uint64         `json:"balance"`
	*todolist.List
}

// ItemView is an item record with its escrowed bounty and derived state.
type ItemView struct {
	Address ledger.Address `json:"address"`
	Bounty  uint64         `json:"bounty"`
	State   todolist.State `json:"state"`
	*todolist.Item
}

func readList(ctx context.Context, r ledger.Reader, addr ledger.Address) (*todolist.List, ledger.Account, error) {
	acct, err := r.Account(ctx, addr)
	if err != nil {
		return nil, acct, fmt.Errorf("read list: %w", err)
	}
	if acct.Owner != ledger.OwnerTodoList {
		return nil, acct, fmt.Errorf("read list %s: %w: owned by %s", addr, ledger.ErrInvalidAccountData, acct.Owner)
	}
	list, err := todolist.DecodeList(acct.Data)
	if err != nil {
		return nil, acct, fmt.Errorf("read list %s: %w", addr, err)
	}
	return list, acct, nil
}

// readItem loads an item record. A missing account reads as ItemNotFound:
// resolved items are closed and leave nothing behind.
func readItem(ctx context.Context, r ledger.Reader, addr ledger.Address) (*todolist.Item, ledger.Account, error) {
	acct, err := r.Account(ctx, addr)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return nil, acct, fmt.Errorf("%w: %s", todolist.ErrItemNotFound, addr)
		}
		return nil, acct, fmt.Errorf("read item: %w", err)
	}
	if acct.Owner != ledger.OwnerTodoList {
		return nil, acct, fmt.Errorf("read item %s: %w: owned by %s", addr, ledger.ErrInvalidAccountData, acct.Owner)
	}
	item, err := todolist.DecodeItem(acct.Data)
	if err != nil {
		return nil, acct, fmt.Errorf("read item %s: %w", addr, err)
	}
	return item, acct, nil
}

func writeList(ctx context.Context, s ledger.Store, addr ledger.Address, list *todolist.List) error {
	data, err := todolist.EncodeList(list)
	if err != nil {
		return err
	}
	if err := s.WriteData(ctx, addr, data); err != nil {
		return fmt.Errorf("write list: %w", err)
	}
	return nil
}

func writeItem(ctx context.Context, s ledger.Store, addr ledger.Address, item *todolist.Item) error {
	data, err := todolist.EncodeItem(item)
	if err != nil {
		return err
	}
	if err := s.WriteData(ctx, addr, data); err != nil {
		return fmt.Errorf("write item: %w", err)
	}
	return nil
}

// checkListAccount enforces the account constraints every item transition
// puts on its list: the named owner matches the record, then the list lives
// at the address derived from that owner and name. An empty name checks
// against the recorded one.
func checkListAccount(addr ledger.Address, list *todolist.List, owner ledger.Address, name string) error {
	if err := todolist.CheckListOwner(list, owner); err != nil {
		return err
	}
	if name == "" {
		name = list.Name
	}
	if err := ledger.VerifyListAddress(addr, owner, name, list.Bump); err != nil {
		return fmt.Errorf("list %s: %w", addr, err)
	}
	return nil
}

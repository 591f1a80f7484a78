package bounty

import (
	"context"
	"fmt"

	"github.com/colonyops/bounty/internal/core/escrow"
	"github.com/colonyops/bounty/internal/core/eventbus"
	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/logging"
	"github.com/colonyops/bounty/internal/core/todolist"
	"github.com/colonyops/bounty/internal/core/validate"
	"github.com/rs/zerolog"
)

// ItemService runs the item transitions: add, cancel and finish.
type ItemService struct {
	rt      *Runtime
	ledger  ledger.Reader
	rent    ledger.Reserver
	bus     *eventbus.EventBus
	maxName int
	log     zerolog.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(rt *Runtime, reader ledger.Reader, rent ledger.Reserver, bus *eventbus.EventBus, maxName int) *ItemService {
	return &ItemService{
		rt:      rt,
		ledger:  reader,
		rent:    rent,
		bus:     bus,
		maxName: maxName,
		log:     logging.Component("items"),
	}
}

// ListRef names a list the way every item transition must: by address,
// by the owner the caller expects, and optionally by name.
type ListRef struct {
	List      ledger.Address `json:"list"`
	ListOwner ledger.Address `json:"list_owner"`
	ListName  string         `json:"list_name,omitempty"` // empty checks against the recorded name
}

// AddRequest describes an add transition.
type AddRequest struct {
	ListRef
	ItemName string         `json:"item_name"`
	Bounty   uint64         `json:"bounty"`
	Caller   ledger.Address `json:"caller"`
	Item     ledger.Address `json:"item,omitzero"` // zero allocates a fresh address
}

// AddResult reports an added item.
type AddResult struct {
	TxID      string   `json:"tx_id"`
	Reserved  uint64   `json:"reserved"`
	Deposited uint64   `json:"deposited"`
	Item      ItemView `json:"item"`
}

// Add creates an item on the list with bounty escrowed in the item's own
// account. The caller pays the item account's reserved minimum and the rest
// of the bounty, so its balance drops by exactly bounty.
func (s *ItemService) Add(ctx context.Context, req AddRequest) (AddResult, error) {
	if err := validate.NameField("item_name", req.ItemName, s.maxName); err != nil {
		return AddResult{}, fmt.Errorf("add item: %w", err)
	}

	itemAddr := req.Item
	if itemAddr.IsZero() {
		itemAddr = ledger.NewAddress()
	}

	item := todolist.NewItem(req.Caller, req.ItemName)
	reserved := s.rent.MinimumBalance(todolist.ItemSpace(req.ItemName))

	ctx = logging.WithList(ctx, req.List.String())
	ctx = logging.WithItem(ctx, itemAddr.String())
	ctx = logging.WithCaller(ctx, req.Caller.String())

	var deposited uint64
	keys := []ledger.Address{req.List, req.Caller, itemAddr}
	txID, err := s.rt.Execute(ctx, "add", keys, func(ctx context.Context, st ledger.Store) error {
		list, _, err := readList(ctx, st, req.List)
		if err != nil {
			return err
		}
		if err := checkListAccount(req.List, list, req.ListOwner, req.ListName); err != nil {
			return err
		}

		if err := st.CreateAccount(ctx, ledger.Account{
			Address: itemAddr,
			Owner:   ledger.OwnerTodoList,
			Label:   req.ItemName,
		}); err != nil {
			return err
		}
		if err := st.Move(ctx, req.Caller, itemAddr, reserved, ledger.TransferAllocate); err != nil {
			return fmt.Errorf("fund item account: %w", err)
		}

		if err := list.Append(itemAddr); err != nil {
			return err
		}
		if err := writeItem(ctx, st, itemAddr, item); err != nil {
			return err
		}

		deposited, err = escrow.New(st).Deposit(ctx, req.Caller, itemAddr, req.Bounty)
		if err != nil {
			return err
		}

		return writeList(ctx, st, req.List, list)
	})
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Uint64("bounty", req.Bounty).Msg("add rejected")
		return AddResult{}, fmt.Errorf("add item: %w", err)
	}

	s.bus.PublishItemAdded(eventbus.ItemAddedPayload{
		TxID:      txID,
		List:      req.List,
		Address:   itemAddr,
		Item:      item,
		Bounty:    req.Bounty,
		Deposited: deposited,
	})

	return AddResult{
		TxID:      txID,
		Reserved:  reserved,
		Deposited: deposited,
		Item: ItemView{
			Address: itemAddr,
			Bounty:  req.Bounty,
			State:   item.State(),
			Item:    item,
		},
	}, nil
}

// ItemRequest describes a cancel or finish transition.
type ItemRequest struct {
	ListRef
	Item    ledger.Address `json:"item"`
	Creator ledger.Address `json:"item_creator,omitzero"` // zero uses the recorded creator
	Caller  ledger.Address `json:"caller"`
}

// CancelResult reports a cancelled item.
type CancelResult struct {
	TxID     string         `json:"tx_id"`
	Refunded uint64         `json:"refunded"`
	Creator  ledger.Address `json:"creator"`
}

// Cancel removes an item from its list and refunds its whole balance to the
// item's creator, whoever of owner or creator asks for it.
func (s *ItemService) Cancel(ctx context.Context, req ItemRequest) (CancelResult, error) {
	ctx = itemContext(ctx, req)

	creator := s.creatorOf(ctx, req)

	var (
		item     *todolist.Item
		refunded uint64
	)
	keys := []ledger.Address{req.List, req.Item, creator, req.Caller}
	txID, err := s.rt.Execute(ctx, "cancel", keys, func(ctx context.Context, st ledger.Store) error {
		list, it, err := s.checkAccounts(ctx, st, req, creator)
		if err != nil {
			return err
		}
		item = it

		if err := todolist.AuthorizeCancel(req.Caller, list, req.Item, item); err != nil {
			return err
		}

		refunded, err = escrow.New(st).Refund(ctx, req.Item, item.Creator)
		if err != nil {
			return err
		}
		return s.detach(ctx, st, req, list)
	})
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("cancel rejected")
		return CancelResult{}, fmt.Errorf("cancel item: %w", err)
	}

	s.bus.PublishItemCancelled(eventbus.ItemCancelledPayload{
		TxID:     txID,
		List:     req.List,
		Address:  req.Item,
		Item:     item,
		Refunded: refunded,
	})

	return CancelResult{TxID: txID, Refunded: refunded, Creator: item.Creator}, nil
}

// FinishResult reports a confirmation and, when it was the second one, the payout.
type FinishResult struct {
	TxID  string         `json:"tx_id"`
	State todolist.State `json:"state"`
	Paid  uint64         `json:"paid"`
}

// Finish records the caller's confirmation on an item. The caller confirms
// as every role it holds. Once both owner and creator have confirmed, the
// whole balance goes to the list owner and the item is closed in the same
// transaction. Confirming twice as the same party changes nothing.
func (s *ItemService) Finish(ctx context.Context, req ItemRequest) (FinishResult, error) {
	ctx = itemContext(ctx, req)

	creator := s.creatorOf(ctx, req)

	var (
		item    *todolist.Item
		roles   todolist.Role
		changed bool
		paid    uint64
	)
	keys := []ledger.Address{req.List, req.ListOwner, req.Item, creator, req.Caller}
	txID, err := s.rt.Execute(ctx, "finish", keys, func(ctx context.Context, st ledger.Store) error {
		list, it, err := s.checkAccounts(ctx, st, req, creator)
		if err != nil {
			return err
		}
		item = it

		roles, err = todolist.AuthorizeFinish(req.Caller, list, req.Item, item)
		if err != nil {
			return err
		}

		before := *item
		if !item.Confirm(roles) {
			changed = before != *item
			if !changed {
				return nil
			}
			return writeItem(ctx, st, req.Item, item)
		}
		changed = true

		paid, err = escrow.New(st).Payout(ctx, req.Item, list.Owner)
		if err != nil {
			return err
		}
		return s.detach(ctx, st, req, list)
	})
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("finish rejected")
		return FinishResult{}, fmt.Errorf("finish item: %w", err)
	}

	state := item.State()
	switch {
	case state.Terminal():
		s.bus.PublishItemResolved(eventbus.ItemResolvedPayload{
			TxID:    txID,
			List:    req.List,
			Address: req.Item,
			Item:    item,
			Owner:   req.ListOwner,
			Paid:    paid,
		})
	case changed:
		s.bus.PublishItemConfirmed(eventbus.ItemConfirmedPayload{
			TxID:    txID,
			List:    req.List,
			Address: req.Item,
			Item:    item,
			By:      roles,
		})
	}

	return FinishResult{TxID: txID, State: state, Paid: paid}, nil
}

// Get returns the item at addr. A closed item reads as ItemNotFound.
func (s *ItemService) Get(ctx context.Context, addr ledger.Address) (ItemView, error) {
	item, acct, err := readItem(ctx, s.ledger, addr)
	if err != nil {
		return ItemView{}, err
	}
	return ItemView{Address: addr, Bounty: acct.Balance, State: item.State(), Item: item}, nil
}

// checkAccounts loads the list and item of req and applies the account
// constraints shared by cancel and finish.
func (s *ItemService) checkAccounts(ctx context.Context, st ledger.Store, req ItemRequest, creator ledger.Address) (*todolist.List, *todolist.Item, error) {
	list, _, err := readList(ctx, st, req.List)
	if err != nil {
		return nil, nil, err
	}
	if err := checkListAccount(req.List, list, req.ListOwner, req.ListName); err != nil {
		return nil, nil, err
	}

	item, _, err := readItem(ctx, st, req.Item)
	if err != nil {
		return nil, nil, err
	}
	if err := todolist.CheckItemCreator(item, creator); err != nil {
		return nil, nil, err
	}
	return list, item, nil
}

// detach drops the item from its list and closes the emptied item account.
func (s *ItemService) detach(ctx context.Context, st ledger.Store, req ItemRequest, list *todolist.List) error {
	list.Remove(req.Item)
	if err := writeList(ctx, st, req.List, list); err != nil {
		return err
	}
	if err := st.CloseAccount(ctx, req.Item); err != nil {
		return fmt.Errorf("close item: %w", err)
	}
	return nil
}

// creatorOf returns the creator the request names, falling back to the
// committed record. The result only picks a lock; the constraint check runs
// again inside the transaction.
func (s *ItemService) creatorOf(ctx context.Context, req ItemRequest) ledger.Address {
	if !req.Creator.IsZero() {
		return req.Creator
	}
	item, _, err := readItem(ctx, s.ledger, req.Item)
	if err != nil {
		return ledger.Address{}
	}
	return item.Creator
}

func itemContext(ctx context.Context, req ItemRequest) context.Context {
	ctx = logging.WithList(ctx, req.List.String())
	ctx = logging.WithItem(ctx, req.Item.String())
	return logging.WithCaller(ctx, req.Caller.String())
}

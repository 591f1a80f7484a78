package bounty

import (
	"context"
	"fmt"

	"github.com/colonyops/bounty/internal/core/eventbus"
	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/logging"
	"github.com/colonyops/bounty/internal/core/todolist"
	"github.com/colonyops/bounty/internal/core/validate"
	"github.com/rs/zerolog"
)

// ListService creates lists and reads them back.
type ListService struct {
	rt      *Runtime
	ledger  ledger.Reader
	rent    ledger.Reserver
	bus     *eventbus.EventBus
	maxName int
	log     zerolog.Logger
}

// NewListService creates a new ListService.
func NewListService(rt *Runtime, reader ledger.Reader, rent ledger.Reserver, bus *eventbus.EventBus, maxName int) *ListService {
	return &ListService{
		rt:      rt,
		ledger:  reader,
		rent:    rent,
		bus:     bus,
		maxName: maxName,
		log:     logging.Component("lists"),
	}
}

// CreateResult reports a created list.
type CreateResult struct {
	TxID     string   `json:"tx_id"`
	Reserved uint64   `json:"reserved"`
	List     ListView `json:"list"`
}

// Create allocates an empty list owned by owner at the address derived from
// owner and name. The owner funds the list account's reserved minimum.
// Creating the same list twice fails with ledger.ErrAccountInUse.
func (s *ListService) Create(ctx context.Context, owner ledger.Address, name string, capacity uint16) (CreateResult, error) {
	if err := validate.NameField("name", name, s.maxName); err != nil {
		return CreateResult{}, fmt.Errorf("create list: %w", err)
	}

	addr, bump, err := ledger.DeriveListAddress(owner, name)
	if err != nil {
		return CreateResult{}, fmt.Errorf("create list: derive address: %w", err)
	}

	list := todolist.NewList(owner, name, capacity, bump)
	reserved := s.rent.MinimumBalance(todolist.ListSpace(name, capacity))

	ctx = logging.WithList(ctx, addr.String())
	ctx = logging.WithCaller(ctx, owner.String())

	txID, err := s.rt.Execute(ctx, "create_list", []ledger.Address{owner, addr}, func(ctx context.Context, st ledger.Store) error {
		if err := st.CreateAccount(ctx, ledger.Account{
			Address: addr,
			Owner:   ledger.OwnerTodoList,
			Label:   name,
		}); err != nil {
			return err
		}
		if err := st.Move(ctx, owner, addr, reserved, ledger.TransferAllocate); err != nil {
			return fmt.Errorf("fund list account: %w", err)
		}
		return writeList(ctx, st, addr, list)
	})
	if err != nil {
		return CreateResult{}, fmt.Errorf("create list: %w", err)
	}

	s.log.Debug().Ctx(ctx).Str("name", name).Uint16("capacity", capacity).Msg("list created")
	s.bus.PublishListCreated(eventbus.ListCreatedPayload{
		TxID:     txID,
		Address:  addr,
		List:     list,
		Reserved: reserved,
	})

	return CreateResult{
		TxID:     txID,
		Reserved: reserved,
		List:     ListView{Address: addr, Balance: reserved, List: list},
	}, nil
}

// Get returns the list at addr.
func (s *ListService) Get(ctx context.Context, addr ledger.Address) (ListView, error) {
	list, acct, err := readList(ctx, s.ledger, addr)
	if err != nil {
		return ListView{}, err
	}
	return ListView{Address: addr, Balance: acct.Balance, List: list}, nil
}

// Lookup returns the list owner created under name.
func (s *ListService) Lookup(ctx context.Context, owner ledger.Address, name string) (ListView, error) {
	addr, _, err := ledger.DeriveListAddress(owner, name)
	if err != nil {
		return ListView{}, fmt.Errorf("derive list address: %w", err)
	}
	return s.Get(ctx, addr)
}

// List returns every list, or only those owned by owner when it is non-zero.
func (s *ListService) List(ctx context.Context, owner ledger.Address) ([]ListView, error) {
	accounts, err := s.ledger.Accounts(ctx, ledger.AccountFilter{Owner: ledger.OwnerTodoList})
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}

	var views []ListView
	for _, acct := range accounts {
		list, err := todolist.DecodeList(acct.Data)
		if err != nil {
			// item records share the owner; skip anything that is not a list
			continue
		}
		if !owner.IsZero() && list.Owner != owner {
			continue
		}
		views = append(views, ListView{Address: acct.Address, Balance: acct.Balance, List: list})
	}
	return views, nil
}

// Members returns the items currently on the list at addr, in list order.
func (s *ListService) Members(ctx context.Context, addr ledger.Address) ([]ItemView, error) {
	list, _, err := readList(ctx, s.ledger, addr)
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(list.Members))
	for _, member := range list.Members {
		item, acct, err := readItem(ctx, s.ledger, member)
		if err != nil {
			return nil, fmt.Errorf("list members: %w", err)
		}
		views = append(views, ItemView{
			Address: member,
			Bounty:  acct.Balance,
			State:   item.State(),
			Item:    item,
		})
	}
	return views, nil
}

package bounty

import (
	"context"
	"testing"
	"time"

	"github.com/colonyops/bounty/internal/core/eventbus/testbus"
	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/data/db"
	"github.com/colonyops/bounty/internal/data/stores"
	"github.com/stretchr/testify/require"
)

// testReserve is the reserved minimum every account needs in tests.
const testReserve = 500

type harness struct {
	*App
	tb *testbus.Bus
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	tb := testbus.New(t)
	app := NewApp(stores.NewLedger(database), tb.EventBus, Settings{
		Rent:          ledger.FlatRent(testReserve),
		MaxNameLength: 64,
		LockTimeout:   time.Second,
	})
	return &harness{App: app, tb: tb}
}

func (h *harness) wallet(t *testing.T, amount uint64) ledger.Address {
	t.Helper()
	ctx := context.Background()

	acct, err := h.Wallets.New(ctx, "")
	require.NoError(t, err)
	if amount > 0 {
		_, err = h.Wallets.Fund(ctx, acct.Address, amount)
		require.NoError(t, err)
	}
	return acct.Address
}

func (h *harness) balance(t *testing.T, addr ledger.Address) uint64 {
	t.Helper()
	acct, err := h.Ledger.Account(context.Background(), addr)
	require.NoError(t, err)
	return acct.Balance
}

func (h *harness) createList(t *testing.T, owner ledger.Address, name string, capacity uint16) ListView {
	t.Helper()
	res, err := h.Lists.Create(context.Background(), owner, name, capacity)
	require.NoError(t, err)
	return res.List
}

func (h *harness) addItem(t *testing.T, list ListView, caller ledger.Address, name string, bounty uint64) ItemView {
	t.Helper()
	res, err := h.Items.Add(context.Background(), AddRequest{
		ListRef:  ListRef{List: list.Address, ListOwner: list.Owner},
		ItemName: name,
		Bounty:   bounty,
		Caller:   caller,
	})
	require.NoError(t, err)
	return res.Item
}

func itemRequest(list ListView, item ItemView, caller ledger.Address) ItemRequest {
	return ItemRequest{
		ListRef: ListRef{List: list.Address, ListOwner: list.Owner, ListName: list.Name},
		Item:    item.Address,
		Creator: item.Creator,
		Caller:  caller,
	}
}

func (h *harness) members(t *testing.T, list ledger.Address) []ledger.Address {
	t.Helper()
	view, err := h.Lists.Get(context.Background(), list)
	require.NoError(t, err)
	return view.Members
}

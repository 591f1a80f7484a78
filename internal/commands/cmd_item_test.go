package commands

import (
	"testing"

	"github.com/colonyops/bounty/internal/bounty"
	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/todolist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createOut struct {
	TxID     string  `json:"tx_id"`
	Reserved uint64  `json:"reserved"`
	List     listOut `json:"list"`
}

type addOut struct {
	TxID      string  `json:"tx_id"`
	Reserved  uint64  `json:"reserved"`
	Deposited uint64  `json:"deposited"`
	Item      itemOut `json:"item"`
}

type finishOut struct {
	TxID  string `json:"tx_id"`
	Paid  uint64 `json:"paid"`
	State struct {
		Kind string `json:"kind"`
		By   string `json:"by"`
	} `json:"state"`
}

func (h *cliHarness) createList(t *testing.T, owner ledger.Address, name string, capacity string) listOut {
	t.Helper()
	out := h.mustRun(t, "list", "create", "--owner", owner.String(), "--capacity", capacity, "--json", name)
	return decode[createOut](t, out).List
}

func (h *cliHarness) addItem(t *testing.T, list listOut, caller ledger.Address, bountyAmount string, name string) itemOut {
	t.Helper()
	out := h.mustRun(t, "item", "add",
		"--list", list.Address.String(),
		"--list-owner", list.Owner.String(),
		"--caller", caller.String(),
		"--bounty", bountyAmount,
		"--json", name)
	return decode[addOut](t, out).Item
}

func itemArgs(op string, list listOut, caller ledger.Address, item ledger.Address) []string {
	return []string{
		"item", op,
		"--list", list.Address.String(),
		"--list-owner", list.Owner.String(),
		"--caller", caller.String(),
		"--json",
		item.String(),
	}
}

func TestItemCmd_AddAndFinish(t *testing.T) {
	h := newCLIHarness(t)
	owner := h.wallet(t, 10_000)
	helper := h.wallet(t, 5_000)

	list := h.createList(t, owner, "chores", "2")
	assert.Equal(t, "chores", list.Name)
	assert.Equal(t, uint16(2), list.Capacity)
	assert.Equal(t, uint64(500), list.Balance)
	assert.Equal(t, uint64(9_500), h.balance(t, owner))

	item := h.addItem(t, list, helper, "1000", "dishes")
	assert.Equal(t, "dishes", item.Name)
	assert.Equal(t, helper, item.Creator)
	assert.Equal(t, uint64(1000), item.Bounty)
	assert.Equal(t, "open", item.State.Kind)
	assert.Equal(t, uint64(4_000), h.balance(t, helper))

	first := decode[finishOut](t, h.mustRun(t, itemArgs("finish", list, helper, item.Address)...))
	assert.Equal(t, "partially_confirmed", first.State.Kind)
	assert.Equal(t, "creator", first.State.By)
	assert.Zero(t, first.Paid)

	shown := decode[itemOut](t, h.mustRun(t, "item", "show", "--json", item.Address.String()))
	assert.Equal(t, "partially_confirmed", shown.State.Kind)

	second := decode[finishOut](t, h.mustRun(t, itemArgs("finish", list, owner, item.Address)...))
	assert.Equal(t, "resolved", second.State.Kind)
	assert.Equal(t, uint64(1000), second.Paid)
	assert.Equal(t, uint64(10_500), h.balance(t, owner))

	_, err := h.run(t, "item", "show", item.Address.String())
	require.ErrorIs(t, err, todolist.ErrItemNotFound)
}

func TestItemCmd_Cancel(t *testing.T) {
	h := newCLIHarness(t)
	owner := h.wallet(t, 10_000)
	helper := h.wallet(t, 5_000)
	stranger := h.wallet(t, 5_000)

	list := h.createList(t, owner, "chores", "2")
	item := h.addItem(t, list, helper, "1000", "dishes")

	_, err := h.run(t, itemArgs("cancel", list, stranger, item.Address)...)
	require.ErrorIs(t, err, todolist.ErrWrongCancelPermission)

	// non-terminal stdin skips the prompt
	out := h.mustRun(t, itemArgs("cancel", list, owner, item.Address)...)
	res := decode[bounty.CancelResult](t, out)
	assert.Equal(t, uint64(1000), res.Refunded)
	assert.Equal(t, helper, res.Creator)
	assert.Equal(t, uint64(5_000), h.balance(t, helper))
}

func TestItemCmd_ConstraintErrors(t *testing.T) {
	h := newCLIHarness(t)
	owner := h.wallet(t, 10_000)
	helper := h.wallet(t, 5_000)

	list := h.createList(t, owner, "chores", "1")

	t.Run("wrong list owner", func(t *testing.T) {
		_, err := h.run(t, "item", "add",
			"--list", list.Address.String(),
			"--list-owner", helper.String(),
			"--caller", helper.String(),
			"--bounty", "1000",
			"dishes")
		require.ErrorIs(t, err, todolist.ErrWrongListOwner)
		assert.Contains(t, FormatError(err), "6001 WrongListOwner")
	})

	t.Run("bounty too small", func(t *testing.T) {
		_, err := h.run(t, "item", "add",
			"--list", list.Address.String(),
			"--list-owner", owner.String(),
			"--caller", helper.String(),
			"--bounty", "499",
			"dishes")
		require.ErrorIs(t, err, todolist.ErrBountyTooSmall)
	})

	t.Run("list full", func(t *testing.T) {
		h.addItem(t, list, helper, "1000", "dishes")

		_, err := h.run(t, "item", "add",
			"--list", list.Address.String(),
			"--list-owner", owner.String(),
			"--caller", helper.String(),
			"--bounty", "1000",
			"laundry")
		require.ErrorIs(t, err, todolist.ErrListFull)
		assert.Equal(t, uint64(4_000), h.balance(t, helper), "rejected add charges nothing")
	})

	t.Run("bad address", func(t *testing.T) {
		_, err := h.run(t, "item", "show", "not-an-address")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "item address")
	})
}

func TestListCmd_ShowAndLs(t *testing.T) {
	h := newCLIHarness(t)
	owner := h.wallet(t, 10_000)
	other := h.wallet(t, 10_000)

	list := h.createList(t, owner, "groceries", "3")
	h.createList(t, other, "errands", "1")
	h.addItem(t, list, other, "700", "milk")

	t.Run("show by address", func(t *testing.T) {
		out := h.mustRun(t, "list", "show", "--json", list.Address.String())
		got := decode[struct {
			listOut
			Items []itemOut `json:"items"`
		}](t, out)
		assert.Equal(t, "groceries", got.Name)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "milk", got.Items[0].Name)
		assert.Equal(t, uint64(700), got.Items[0].Bounty)
	})

	t.Run("show by owner and name", func(t *testing.T) {
		out := h.mustRun(t, "list", "show", "--owner", owner.String(), "groceries")
		assert.Contains(t, out, list.Address.String())
		assert.Contains(t, out, "milk")
	})

	t.Run("ls filtered by owner", func(t *testing.T) {
		lists := decodeLines[listOut](t, h.mustRun(t, "list", "ls", "--owner", owner.String(), "--json"))
		require.Len(t, lists, 1)
		assert.Equal(t, list.Address, lists[0].Address)
	})

	t.Run("ls all", func(t *testing.T) {
		lists := decodeLines[listOut](t, h.mustRun(t, "list", "ls", "--json"))
		assert.Len(t, lists, 2)
	})
}

func TestWalletAndJournalCmd(t *testing.T) {
	h := newCLIHarness(t)
	owner := h.wallet(t, 10_000)
	helper := h.wallet(t, 5_000)

	list := h.createList(t, owner, "chores", "2")
	h.addItem(t, list, helper, "1000", "dishes")

	acct := decode[ledger.Account](t, h.mustRun(t, "wallet", "balance", "--json", helper.String()))
	assert.Equal(t, uint64(4_000), acct.Balance)

	wallets := decodeLines[ledger.Account](t, h.mustRun(t, "wallet", "ls", "--json"))
	assert.Len(t, wallets, 2)

	_, err := h.run(t, "wallet", "balance", list.Address.String())
	require.ErrorIs(t, err, bounty.ErrNotWallet)

	_, err = h.run(t, "wallet", "fund", helper.String(), "0")
	require.Error(t, err)

	transfers := decodeLines[ledger.Transfer](t, h.mustRun(t, "journal", "--account", helper.String(), "--json"))
	require.Len(t, transfers, 3, "airdrop, allocate and deposit")
	kinds := []ledger.TransferKind{transfers[0].Kind, transfers[1].Kind, transfers[2].Kind}
	assert.ElementsMatch(t, []ledger.TransferKind{ledger.TransferAirdrop, ledger.TransferAllocate, ledger.TransferDeposit}, kinds)

	limited := decodeLines[ledger.Transfer](t, h.mustRun(t, "journal", "--limit", "1", "--json"))
	assert.Len(t, limited, 1)
}

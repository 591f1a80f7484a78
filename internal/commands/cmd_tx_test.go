package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/colonyops/bounty/internal/bounty"
	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestTxInput_Validate(t *testing.T) {
	a := ledger.NewAddress()
	ref := bounty.ListRef{List: a, ListOwner: a}

	tests := []struct {
		name    string
		input   TxInput
		wantErr string
	}{
		{
			name:    "empty instructions",
			input:   TxInput{},
			wantErr: "instructions",
		},
		{
			name:    "no transition",
			input:   TxInput{Instructions: []TxInstruction{{}}},
			wantErr: "exactly one",
		},
		{
			name: "two transitions",
			input: TxInput{Instructions: []TxInstruction{{
				CreateList: &CreateListInput{Owner: a, Name: "chores", Capacity: 1},
				Finish:     &bounty.ItemRequest{ListRef: ref, Item: a, Caller: a},
			}}},
			wantErr: "exactly one",
		},
		{
			name: "missing owner",
			input: TxInput{Instructions: []TxInstruction{{
				CreateList: &CreateListInput{Name: "chores", Capacity: 1},
			}}},
			wantErr: "create_list.owner",
		},
		{
			name: "blank item name",
			input: TxInput{Instructions: []TxInstruction{{
				Add: &bounty.AddRequest{ListRef: ref, ItemName: "  ", Bounty: 1, Caller: a},
			}}},
			wantErr: "add.item_name",
		},
		{
			name: "missing item",
			input: TxInput{Instructions: []TxInstruction{{
				Cancel: &bounty.ItemRequest{ListRef: ref, Caller: a},
			}}},
			wantErr: "cancel.item",
		},
		{
			name: "valid sequence",
			input: TxInput{Instructions: []TxInstruction{
				{CreateList: &CreateListInput{Owner: a, Name: "chores", Capacity: 0}},
				{Add: &bounty.AddRequest{ListRef: ref, ItemName: "dishes", Bounty: 10, Caller: a}},
				{Finish: &bounty.ItemRequest{ListRef: ref, Item: a, Caller: a}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate(64)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTxInstruction_Op(t *testing.T) {
	assert.Equal(t, "create_list", TxInstruction{CreateList: &CreateListInput{}}.Op())
	assert.Equal(t, "add", TxInstruction{Add: &bounty.AddRequest{}}.Op())
	assert.Equal(t, "cancel", TxInstruction{Cancel: &bounty.ItemRequest{}}.Op())
	assert.Equal(t, "finish", TxInstruction{Finish: &bounty.ItemRequest{}}.Op())
	assert.Empty(t, TxInstruction{}.Op())
}

func writeTx(t *testing.T, input TxInput) string {
	t.Helper()
	b, err := json.Marshal(input)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tx.json")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

func TestTxCmd_Apply(t *testing.T) {
	h := newCLIHarness(t)
	owner := h.wallet(t, 10_000)
	helper := h.wallet(t, 5_000)

	listAddr, _, err := ledger.DeriveListAddress(owner, "chores")
	require.NoError(t, err)
	item := ledger.NewAddress()
	ref := bounty.ListRef{List: listAddr, ListOwner: owner}

	path := writeTx(t, TxInput{Instructions: []TxInstruction{
		{CreateList: &CreateListInput{Owner: owner, Name: "chores", Capacity: 1}},
		{Add: &bounty.AddRequest{ListRef: ref, ItemName: "dishes", Bounty: 1000, Caller: helper, Item: item}},
		{Finish: &bounty.ItemRequest{ListRef: ref, Item: item, Caller: helper}},
		{Finish: &bounty.ItemRequest{ListRef: ref, Item: item, Caller: owner}},
	}})

	results := decodeLines[TxResult](t, h.mustRun(t, "tx", "apply", "-f", path))
	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, StatusApplied, r.Status, "instruction %d: %s", i, r.Error)
		assert.NotEmpty(t, r.TxID)
	}
	assert.Equal(t, []string{"create_list", "add", "finish", "finish"},
		[]string{results[0].Op, results[1].Op, results[2].Op, results[3].Op})

	assert.Equal(t, uint64(10_500), h.balance(t, owner))
	assert.Equal(t, uint64(4_000), h.balance(t, helper))
}

func TestTxCmd_StopsAtFirstFailure(t *testing.T) {
	h := newCLIHarness(t)
	owner := h.wallet(t, 10_000)
	helper := h.wallet(t, 5_000)

	list := h.createList(t, owner, "chores", "0")
	ref := bounty.ListRef{List: list.Address, ListOwner: owner}

	path := writeTx(t, TxInput{Instructions: []TxInstruction{
		{Add: &bounty.AddRequest{ListRef: ref, ItemName: "dishes", Bounty: 1000, Caller: helper}},
		{Add: &bounty.AddRequest{ListRef: ref, ItemName: "laundry", Bounty: 1000, Caller: helper}},
	}})

	out, err := h.run(t, "tx", "apply", "-f", path)
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())

	results := decodeLines[TxResult](t, out)
	require.Len(t, results, 2)
	assert.Equal(t, StatusFailed, results[0].Status)
	assert.Equal(t, 6000, results[0].Code)
	assert.Equal(t, "ListFull", results[0].ErrorName)
	assert.Equal(t, StatusSkipped, results[1].Status)

	assert.Equal(t, uint64(5_000), h.balance(t, helper))
}

package todolist

import (
	"github.com/colonyops/bounty/internal/core/ledger"
)

// Item is one task on a list. Its escrowed bounty is the balance of its account.
type Item struct {
	Creator          ledger.Address `json:"creator"`
	CreatorConfirmed bool           `json:"creator_confirmed"`
	OwnerConfirmed   bool           `json:"owner_confirmed"`
	Name             string         `json:"name"`
}

// NewItem returns an unconfirmed item.
func NewItem(creator ledger.Address, name string) *Item {
	return &Item{Creator: creator, Name: name}
}

// ItemSpace is the data size reserved for an item.
func ItemSpace(name string) int {
	return discriminatorLen + ledger.AddressLen + 1 + 1 + 4 + len(name)
}

// Confirmed reports whether both parties have confirmed.
func (it *Item) Confirmed() bool {
	return it.OwnerConfirmed && it.CreatorConfirmed
}

// Confirm sets the flag for every role the caller holds and reports whether
// the item is now confirmed by both parties. Confirming again is a no-op.
func (it *Item) Confirm(roles Role) bool {
	if roles.Has(RoleOwner) {
		it.OwnerConfirmed = true
	}
	if roles.Has(RoleCreator) {
		it.CreatorConfirmed = true
	}
	return it.Confirmed()
}

// State returns the lifecycle state implied by the confirmation flags.
func (it *Item) State() State {
	switch {
	case it.Confirmed():
		return State{Kind: StateResolved}
	case it.OwnerConfirmed:
		return State{Kind: StatePartiallyConfirmed, By: RoleOwner}
	case it.CreatorConfirmed:
		return State{Kind: StatePartiallyConfirmed, By: RoleCreator}
	default:
		return State{Kind: StateOpen}
	}
}

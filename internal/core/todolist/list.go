// Package todolist defines list and item records, their on-ledger layout,
// and the rules that gate every transition on them.
package todolist

import (
	"slices"

	"github.com/colonyops/bounty/internal/core/ledger"
)

// List is a capacity-bounded sequence of open items owned by one principal.
type List struct {
	Owner    ledger.Address   `json:"owner"`
	Bump     uint8            `json:"bump"`
	Capacity uint16           `json:"capacity"`
	Name     string           `json:"name"`
	Members  []ledger.Address `json:"members"`
}

// NewList returns an empty list.
func NewList(owner ledger.Address, name string, capacity uint16, bump uint8) *List {
	return &List{
		Owner:    owner,
		Bump:     bump,
		Capacity: capacity,
		Name:     name,
		Members:  []ledger.Address{},
	}
}

// ListSpace is the data size reserved for a list: room for every member it
// can ever hold.
func ListSpace(name string, capacity uint16) int {
	return discriminatorLen + ledger.AddressLen + 1 + 2 +
		4 + len(name) +
		4 + int(capacity)*ledger.AddressLen
}

// IsFull reports whether no more items fit.
func (l *List) IsFull() bool {
	return len(l.Members) >= int(l.Capacity)
}

// Contains reports whether item is a current member.
func (l *List) Contains(item ledger.Address) bool {
	return slices.Contains(l.Members, item)
}

// Append adds item at the end. Returns ErrListFull at capacity.
func (l *List) Append(item ledger.Address) error {
	if l.IsFull() {
		return ErrListFull
	}
	l.Members = append(l.Members, item)
	return nil
}

// Remove drops item from the members, keeping the order of the rest.
// Reports whether it was present.
func (l *List) Remove(item ledger.Address) bool {
	before := len(l.Members)
	l.Members = slices.DeleteFunc(l.Members, func(m ledger.Address) bool {
		return m == item
	})
	return len(l.Members) != before
}

package todolist

import (
	"encoding/json"
	"strings"

	"github.com/colonyops/bounty/internal/core/ledger"
)

// Role is the set of parts a caller plays for one item.
type Role uint8

const (
	RoleOwner Role = 1 << iota
	RoleCreator

	RoleNone Role = 0
)

// Has reports whether r includes every bit of o.
func (r Role) Has(o Role) bool {
	return o != RoleNone && r&o == o
}

func (r Role) String() string {
	var parts []string
	if r.Has(RoleOwner) {
		parts = append(parts, "owner")
	}
	if r.Has(RoleCreator) {
		parts = append(parts, "creator")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// RolesOf returns the roles caller holds for item on list.
func RolesOf(caller ledger.Address, list *List, item *Item) Role {
	r := RoleNone
	if caller == list.Owner {
		r |= RoleOwner
	}
	if caller == item.Creator {
		r |= RoleCreator
	}
	return r
}

// CheckListOwner verifies the owner named by the caller against the record.
func CheckListOwner(list *List, owner ledger.Address) error {
	if list.Owner != owner {
		return ErrWrongListOwner
	}
	return nil
}

// CheckItemCreator verifies the creator named by the caller against the record.
func CheckItemCreator(item *Item, creator ledger.Address) error {
	if item.Creator != creator {
		return ErrWrongItemCreator
	}
	return nil
}

// AuthorizeCancel checks that caller may cancel item and that item is still
// on list, in that order.
func AuthorizeCancel(caller ledger.Address, list *List, itemAddr ledger.Address, item *Item) error {
	if RolesOf(caller, list, item) == RoleNone {
		return ErrWrongCancelPermission
	}
	if !list.Contains(itemAddr) {
		return ErrItemNotFound
	}
	return nil
}

// AuthorizeFinish checks membership, completion and permission, in that
// order, and returns the roles the caller confirms as.
func AuthorizeFinish(caller ledger.Address, list *List, itemAddr ledger.Address, item *Item) (Role, error) {
	if !list.Contains(itemAddr) {
		return RoleNone, ErrItemNotFound
	}
	if item.Confirmed() {
		return RoleNone, ErrItemAlreadyFinished
	}
	roles := RolesOf(caller, list, item)
	if roles == RoleNone {
		return RoleNone, ErrWrongFinishPermission
	}
	return roles, nil
}

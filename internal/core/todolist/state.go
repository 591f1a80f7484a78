package todolist

import "fmt"

// StateKind enumerates item lifecycle states.
type StateKind string

const (
	StateOpen               StateKind = "open"
	StatePartiallyConfirmed StateKind = "partially_confirmed"
	StateResolved           StateKind = "resolved"
)

// State is an item's lifecycle state. By is set only for
// StatePartiallyConfirmed and names the party that confirmed.
type State struct {
	Kind StateKind `json:"kind"`
	By   Role      `json:"by,omitempty"`
}

func (s State) String() string {
	if s.Kind == StatePartiallyConfirmed {
		return fmt.Sprintf("%s(%s)", s.Kind, s.By)
	}
	return string(s.Kind)
}

// Terminal reports whether no further transition applies.
func (s State) Terminal() bool {
	return s.Kind == StateResolved
}

package todolist

import (
	"errors"
	"fmt"
)

// Error is a transition failure with a stable numeric code.
type Error struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

const errorCodeOffset = 6000

var (
	ErrListFull              = &Error{Code: errorCodeOffset + 0, Name: "ListFull", Message: "This list is full"}
	ErrWrongListOwner        = &Error{Code: errorCodeOffset + 1, Name: "WrongListOwner", Message: "Specified list owner does not match the pubkey in the list"}
	ErrBountyTooSmall        = &Error{Code: errorCodeOffset + 2, Name: "BountyTooSmall", Message: "Bounty must be enough to mark account rent-exempt"}
	ErrWrongCancelPermission = &Error{Code: errorCodeOffset + 3, Name: "WrongCancelPermission", Message: "Only list owner or item creator can cancel item"}
	ErrItemNotFound          = &Error{Code: errorCodeOffset + 4, Name: "ItemNotFound", Message: "Item not found"}
	ErrWrongItemCreator      = &Error{Code: errorCodeOffset + 5, Name: "WrongItemCreator", Message: "Item creator is not correct"}
	ErrWrongFinishPermission = &Error{Code: errorCodeOffset + 6, Name: "WrongFinishPermission", Message: "Only list owner or item creator can finish item"}
	ErrItemAlreadyFinished   = &Error{Code: errorCodeOffset + 7, Name: "ItemAlreadyFinished", Message: "Item already finished"}
)

// Errors lists every transition error in code order.
func Errors() []*Error {
	return []*Error{
		ErrListFull,
		ErrWrongListOwner,
		ErrBountyTooSmall,
		ErrWrongCancelPermission,
		ErrItemNotFound,
		ErrWrongItemCreator,
		ErrWrongFinishPermission,
		ErrItemAlreadyFinished,
	}
}

// AsError extracts the transition error from err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

package ledger

import "errors"

var (
	// ErrAccountInUse is returned when creating an account at an occupied address.
	ErrAccountInUse = errors.New("account already in use")
	// ErrAccountNotFound is returned when an address holds no account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInsufficientFunds is returned when a transfer exceeds the sender's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrBalanceOverflow is returned when a transfer would overflow the receiver's balance.
	ErrBalanceOverflow = errors.New("balance overflow")
	// ErrInvalidSeeds is returned when seeds derive an address in the wallet space.
	ErrInvalidSeeds = errors.New("seeds derive a wallet address")
	// ErrSeedsMismatch is returned when an account does not sit at its derived address.
	ErrSeedsMismatch = errors.New("account address does not match its seeds")
	// ErrAccountLocked is returned when a transition cannot lock its accounts in time.
	ErrAccountLocked = errors.New("account locked by another transition")
	// ErrInvalidAccountData is returned when account data cannot be decoded
	// or belongs to another owner.
	ErrInvalidAccountData = errors.New("invalid account data")
	// ErrAccountNotEmpty is returned when closing an account that still holds value.
	ErrAccountNotEmpty = errors.New("account balance is not zero")
)

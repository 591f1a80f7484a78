// Package ledger defines the account model of the local record ledger:
// addresses, accounts, value transfers, and the Store contract that every
// transition runs against.
package ledger

import (
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
)

// AddressLen is the size of an address in bytes.
const AddressLen = 32

// Address identifies an account. Wallet addresses are random; list
// addresses are derived from their owner and name.
type Address [AddressLen]byte

// walletMarker is set on the last byte of every wallet address and clear on
// every derived address, so the two spaces never overlap.
const walletMarker = 0x80

// NewAddress returns a fresh random wallet address.
func NewAddress() Address {
	var a Address
	if _, err := rand.Read(a[:]); err != nil {
		panic(fmt.Sprintf("ledger: read random bytes: %v", err))
	}
	a[AddressLen-1] |= walletMarker
	return a
}

// ParseAddress decodes a base58 address.
func ParseAddress(s string) (Address, error) {
	var a Address
	raw, err := base58.Decode(s)
	if err != nil {
		return a, fmt.Errorf("decode address %q: %w", s, err)
	}
	if len(raw) != AddressLen {
		return a, fmt.Errorf("decode address %q: want %d bytes, got %d", s, AddressLen, len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// String returns the base58 form.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// Short returns the first eight characters of the base58 form for display.
func (a Address) Short() string {
	s := a.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// IsWallet reports whether a lies in the wallet address space.
func (a Address) IsWallet() bool {
	return a[AddressLen-1]&walletMarker != 0
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(b []byte) error {
	parsed, err := ParseAddress(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

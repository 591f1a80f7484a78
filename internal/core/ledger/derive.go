package ledger

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"
)

const (
	// ListSeedTag prefixes every list address derivation.
	ListSeedTag = "todolist"
	// MaxSeedLen bounds each seed passed to address derivation.
	MaxSeedLen = 32
)

// derivationDomain separates derived addresses from any other hash use.
var derivationDomain = []byte("bounty/derived-address")

// NameSeed returns the bounded prefix of name used as a derivation seed.
// Names longer than MaxSeedLen bytes are truncated, so names sharing their
// first MaxSeedLen bytes produce the same seed.
func NameSeed(name string) []byte {
	b := []byte(name)
	if len(b) > MaxSeedLen {
		return b[:MaxSeedLen]
	}
	return b
}

// CreateAddress hashes seeds and a nonce into an address. It fails when the
// result falls in the wallet address space.
func CreateAddress(seeds [][]byte, bump uint8) (Address, error) {
	var a Address
	h := sha3.New256()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return a, fmt.Errorf("seed of %d bytes exceeds %d", len(seed), MaxSeedLen)
		}
		h.Write(seed)
	}
	h.Write([]byte{bump})
	h.Write(derivationDomain)
	copy(a[:], h.Sum(nil))

	if a.IsWallet() {
		return Address{}, ErrInvalidSeeds
	}
	return a, nil
}

// FindAddress searches nonces from 255 down and returns the first address
// outside the wallet space together with its nonce.
func FindAddress(seeds [][]byte) (Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		a, err := CreateAddress(seeds, uint8(bump))
		if err == nil {
			return a, uint8(bump), nil
		}
		if !errors.Is(err, ErrInvalidSeeds) {
			return Address{}, 0, err
		}
	}
	return Address{}, 0, ErrInvalidSeeds
}

func listSeeds(owner Address, name string) [][]byte {
	return [][]byte{[]byte(ListSeedTag), owner[:], NameSeed(name)}
}

// DeriveListAddress returns the address and nonce of the list that owner
// creates under name.
func DeriveListAddress(owner Address, name string) (Address, uint8, error) {
	return FindAddress(listSeeds(owner, name))
}

// VerifyListAddress checks that addr is the list address for owner and name
// under the recorded nonce. Returns ErrSeedsMismatch otherwise.
func VerifyListAddress(addr, owner Address, name string, bump uint8) error {
	want, err := CreateAddress(listSeeds(owner, name), bump)
	if err != nil || want != addr {
		return ErrSeedsMismatch
	}
	return nil
}

// Package randid generates short random identifiers from a lowercase
// alphanumeric alphabet.
package randid

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var alphabetLen = big.NewInt(int64(len(alphabet)))

// Generate returns a random string of length n drawn from [a-z0-9].
func Generate(n int) string {
	if n <= 0 {
		return ""
	}

	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			panic("randid: read random: " + err.Error())
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}

// Prefixed returns prefix, an underscore, and n random characters,
// e.g. "tr_k3v9q0xa".
func Prefixed(prefix string, n int) string {
	return prefix + "_" + Generate(n)
}

package ledger

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_RoundTrip(t *testing.T) {
	a := NewAddress()
	assert.True(t, a.IsWallet())
	assert.False(t, a.IsZero())

	parsed, err := ParseAddress(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	data, err := json.Marshal(struct {
		Addr Address `json:"addr"`
	}{a})
	require.NoError(t, err)
	assert.Contains(t, string(data), a.String())

	var out struct {
		Addr Address `json:"addr"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, a, out.Addr)
}

func TestParseAddress_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad alphabet", "0OIl"},
		{"too short", "3mJr7AoUXx2Wqd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAddress(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestNameSeed(t *testing.T) {
	assert.Equal(t, []byte("groceries"), NameSeed("groceries"))

	long := strings.Repeat("a", 40)
	assert.Len(t, NameSeed(long), MaxSeedLen)
	assert.Len(t, NameSeed(long[:32]), MaxSeedLen)
}

func TestDeriveListAddress(t *testing.T) {
	owner := NewAddress()

	t.Run("deterministic", func(t *testing.T) {
		a1, b1, err := DeriveListAddress(owner, "groceries")
		require.NoError(t, err)
		a2, b2, err := DeriveListAddress(owner, "groceries")
		require.NoError(t, err)

		assert.Equal(t, a1, a2)
		assert.Equal(t, b1, b2)
		assert.False(t, a1.IsWallet())
		assert.NoError(t, VerifyListAddress(a1, owner, "groceries", b1))
	})

	t.Run("distinct names and owners", func(t *testing.T) {
		a1, _, err := DeriveListAddress(owner, "groceries")
		require.NoError(t, err)
		a2, _, err := DeriveListAddress(owner, "chores")
		require.NoError(t, err)
		a3, _, err := DeriveListAddress(NewAddress(), "groceries")
		require.NoError(t, err)

		assert.NotEqual(t, a1, a2)
		assert.NotEqual(t, a1, a3)
	})

	t.Run("names sharing a 32 byte prefix collide", func(t *testing.T) {
		prefix := strings.Repeat("x", MaxSeedLen)
		a1, _, err := DeriveListAddress(owner, prefix+"-first")
		require.NoError(t, err)
		a2, _, err := DeriveListAddress(owner, prefix+"-second")
		require.NoError(t, err)

		assert.Equal(t, a1, a2)
	})

	t.Run("verify rejects wrong inputs", func(t *testing.T) {
		addr, bump, err := DeriveListAddress(owner, "groceries")
		require.NoError(t, err)

		assert.ErrorIs(t, VerifyListAddress(addr, owner, "chores", bump), ErrSeedsMismatch)
		assert.ErrorIs(t, VerifyListAddress(addr, NewAddress(), "groceries", bump), ErrSeedsMismatch)
		assert.ErrorIs(t, VerifyListAddress(NewAddress(), owner, "groceries", bump), ErrSeedsMismatch)
	})
}

func TestCreateAddress_SeedTooLong(t *testing.T) {
	_, err := CreateAddress([][]byte{make([]byte, MaxSeedLen+1)}, 255)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSeeds)
}

func TestRent_MinimumBalance(t *testing.T) {
	r := DefaultRent()
	assert.Equal(t, uint64(128*3480*2), r.MinimumBalance(0))
	assert.Equal(t, uint64((128+50)*3480*2), r.MinimumBalance(50))

	assert.Equal(t, uint64(500), FlatRent(500).MinimumBalance(0))
	assert.Equal(t, uint64(500), FlatRent(500).MinimumBalance(1024))
}

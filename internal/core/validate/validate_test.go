package validate

import (
	"strings"
	"testing"

	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "groceries", false},
		{"valid with spaces", "weekend chores", false},
		{"exactly at limit", strings.Repeat("a", 16), false},
		{"over limit", strings.Repeat("a", 17), true},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Name(tt.input, 16)
			assert.Equal(t, tt.wantErr, err != nil, "Name(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestNameField(t *testing.T) {
	err := NameField("list.name", "", 64)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "list.name", fieldErrs[0].Field)
}

func TestAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", ledger.NewAddress().String(), false},
		{"empty", "", true},
		{"not base58", "0OIl", true},
		{"too short", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Address(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Address(%q) error = %v", tt.input, err)
		})
	}
}

// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"

	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/hay-kot/criterio"
)

// Name validates a list or item name: non-blank after trimming whitespace
// and at most maxLen bytes.
func Name(name string, maxLen int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxLen {
		return fmt.Errorf("name is %d bytes, limit is %d", len(name), maxLen)
	}
	return nil
}

// NameField returns a criterio validator for names.
func NameField(field, name string, maxLen int) error {
	return criterio.Run(field, name, func(s string) error { return Name(s, maxLen) })
}

// Address validates a base58 account address string.
func Address(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("address is required")
	}
	_, err := ledger.ParseAddress(s)
	return err
}

// AddressField returns a criterio validator for addresses.
func AddressField(field, s string) error {
	return criterio.Run(field, s, Address)
}

package config

import (
	"fmt"
	"math"
	"os"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateRent(),
		c.validateDatabase(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Rent.AccountOverhead == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Rent",
			Item:     "account_overhead",
			Message:  "zero overhead lets empty accounts hold no reserve",
		})
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// listFixedBytes is the size of a list record at full u16 capacity, minus
// its name.
const listFixedBytes = 8 + 32 + 1 + 2 + 4 + 4 + 32*math.MaxUint16

// validateRent rejects pricing that would overflow a balance for the
// largest account a list can need.
func (c *Config) validateRent() error {
	var errs criterio.FieldErrorsBuilder

	if c.Rent.LamportsPerByteYear == 0 {
		errs = errs.Append("rent.lamports_per_byte_year", fmt.Errorf("must be positive"))
	}
	if c.Rent.ExemptionThreshold == 0 {
		errs = errs.Append("rent.exemption_threshold", fmt.Errorf("must be positive"))
	}

	if c.Rent.LamportsPerByteYear > 0 && c.Rent.ExemptionThreshold > 0 {
		data := listFixedBytes + uint64(max(c.Limits.MaxNameLength, 0))
		limit := uint64(math.MaxInt64) / c.Rent.LamportsPerByteYear / c.Rent.ExemptionThreshold
		if data > limit || c.Rent.AccountOverhead > limit-data {
			errs = errs.Append("rent", fmt.Errorf("pricing overflows balances for a full list"))
		}
	}

	return errs.ToError()
}

func (c *Config) validateDatabase() error {
	var errs criterio.FieldErrorsBuilder
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("exceeds max_open_conns (%d)", c.Database.MaxOpenConns))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = errs.Append("database.max_idle_conns", fmt.Errorf("cannot be negative"))
	}
	return errs.ToError()
}

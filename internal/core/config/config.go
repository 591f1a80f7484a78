// Package config handles configuration loading and validation for bounty.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/styles"
	"github.com/colonyops/bounty/internal/data/db"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Rent     ledger.Rent    `yaml:"rent"`
	Limits   Limits         `yaml:"limits"`
	Database DatabaseConfig `yaml:"database"`
	Theme    string         `yaml:"theme"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// Limits bounds transition inputs and lock waits.
type Limits struct {
	MaxNameLength int           `yaml:"max_name_length"`
	LockTimeout   time.Duration `yaml:"lock_timeout"`
}

// DatabaseConfig tunes the SQLite connection pool.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// OpenOptions converts the database section into db.OpenOptions.
func (d DatabaseConfig) OpenOptions() db.OpenOptions {
	return db.OpenOptions{
		MaxOpenConns: d.MaxOpenConns,
		MaxIdleConns: d.MaxIdleConns,
		BusyTimeout:  d.BusyTimeout,
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	opts := db.DefaultOpenOptions()
	return Config{
		Rent: ledger.DefaultRent(),
		Limits: Limits{
			MaxNameLength: 64,
			LockTimeout:   2 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns: opts.MaxOpenConns,
			MaxIdleConns: opts.MaxIdleConns,
			BusyTimeout:  opts.BusyTimeout,
		},
		Theme: styles.DefaultTheme,
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.validateRent(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Rent.LamportsPerByteYear == 0 {
		c.Rent.LamportsPerByteYear = defaults.Rent.LamportsPerByteYear
	}
	if c.Rent.ExemptionThreshold == 0 {
		c.Rent.ExemptionThreshold = defaults.Rent.ExemptionThreshold
	}
	if c.Limits.MaxNameLength == 0 {
		c.Limits.MaxNameLength = defaults.Limits.MaxNameLength
	}
	if c.Limits.LockTimeout == 0 {
		c.Limits.LockTimeout = defaults.Limits.LockTimeout
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Limits.MaxNameLength < 1 {
		return fmt.Errorf("limits.max_name_length must be at least 1")
	}

	if c.Limits.LockTimeout < 0 {
		return fmt.Errorf("limits.lock_timeout cannot be negative")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("theme %q is not one of %s", c.Theme, strings.Join(styles.ThemeNames(), ", "))
	}

	return nil
}

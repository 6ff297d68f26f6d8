// Package config loads project-level lasm defaults from an optional
// lasm.toml file, grounded on lookbusy1344-arm_emulator's config.Config:
// same DefaultConfig/Load/LoadFrom shape, adapted from its emulator
// settings (execution/debugger/display/trace/statistics) to this engine's
// assemble-time knobs (cpu target, output prefixes, qualification
// delimiter, abort-on-error, include search paths).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the project-wide defaults a lasm.toml can pin so they need
// not be repeated on every CLI invocation (spec §6's CLI flags always take
// precedence over these when both are present).
type Config struct {
	Assemble struct {
		CPU          string `toml:"cpu"`           // "6502" | "65816" | "bf"
		HexPrefix    string `toml:"hex_prefix"`     // default "0x"
		BinPrefix    string `toml:"bin_prefix"`     // reserved for a future binary literal prefix
		Delimiter    string `toml:"delimiter"`      // symbol qualification delimiter, default "."
		AbortOnError bool   `toml:"abort_on_error"`
	} `toml:"assemble"`

	Include struct {
		SearchPaths []string `toml:"search_paths"`
	} `toml:"include"`
}

// DefaultConfig returns a Config with the same defaults assemble.Options
// falls back to when no lasm.toml is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Assemble.CPU = "6502"
	cfg.Assemble.HexPrefix = "0x"
	cfg.Assemble.BinPrefix = "%"
	cfg.Assemble.Delimiter = "."
	cfg.Assemble.AbortOnError = false
	return cfg
}

// Load reads "lasm.toml" from the current directory, falling back to
// DefaultConfig if it does not exist.
func Load() (*Config, error) {
	return LoadFrom("lasm.toml")
}

// LoadFrom reads the named TOML file, falling back to DefaultConfig if it
// does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

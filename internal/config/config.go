// Package config loads the assembler's optional TOML configuration file.
// Nothing here changes the assembler's required CLI behavior; it only
// exposes a small set of opt-in knobs around it.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the assembler's optional configuration.
type Config struct {
	Assembler struct {
		// StrictRegisterBound, when true, turns a register id of exactly
		// 16 into a ParseError instead of accepting it and truncating to
		// 4 bits on the wire. Off by default: the truncation is intentional
		// behavior, not a bug to warn about by default.
		StrictRegisterBound bool `toml:"strict_register_bound"`

		// WarnDataSizeMismatch controls whether the .dataSize widening
		// warning is printed. It never affects the widening itself or the
		// exit status.
		WarnDataSizeMismatch bool `toml:"warn_data_size_mismatch"`
	} `toml:"assembler"`

	Output struct {
		DefaultOutputSuffix string `toml:"default_output_suffix"`
	} `toml:"output"`

	Listing struct {
		ShowDataSection bool `toml:"show_data_section"`
		BytesPerRow     int  `toml:"bytes_per_row"`
	} `toml:"listing"`
}

// Default returns the configuration the assembler uses when no config file
// is given, or when the given path does not exist.
func Default() *Config {
	cfg := &Config{}
	cfg.Assembler.StrictRegisterBound = false
	cfg.Assembler.WarnDataSizeMismatch = true
	cfg.Output.DefaultOutputSuffix = ".bin"
	cfg.Listing.ShowDataSection = true
	cfg.Listing.BytesPerRow = 16
	return cfg
}

// Load reads and decodes the TOML config at path. A missing file is not an
// error: it yields Default(). A malformed file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

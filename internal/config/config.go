package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"iconmill/internal/paths"
)

// History backend names accepted in the "history" key.
const (
	HistorySQLite = "sqlite"
	HistoryFile   = "file"
	HistoryOff    = "off"
)

// DefaultHistory is the history backend used when none is configured.
const DefaultHistory = HistorySQLite

// Config holds the optional settings read from iconmill-config.json.
// Every field has a sensible default; a missing config file is not an
// error.
type Config struct {
	OutputDir  string `json:"output_dir,omitempty"`  // overrides the icons directory
	StoreTiles *bool  `json:"store_tiles,omitempty"` // nil = true
	ExtraSizes []int  `json:"extra_sizes,omitempty"` // additional square PNGs, named NxN.png
	History    string `json:"history,omitempty"`     // "sqlite" | "file" | "off"
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	c.History = DefaultHistory
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// WantStoreTiles reports whether the platform store-tile PNGs should be
// generated. Defaults to true when unset.
func (c Config) WantStoreTiles() bool {
	return c.StoreTiles == nil || *c.StoreTiles
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. iconmill-config.json next to the running binary
//  3. ~/.config/iconmill/iconmill-config.json
//
// A missing file at steps 2 and 3 yields the zero config with defaults;
// an explicit path that does not exist is an error.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// Data dir
	p := filepath.Join(paths.DataDir(), paths.ConfigFileName)
	if _, err := os.Stat(p); err == nil {
		return readConfig(p)
	}

	return defaults(), nil
}

func defaults() Config {
	return Config{History: DefaultHistory}
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values that json decoding cannot.
func Validate(cfg Config) error {
	switch cfg.History {
	case HistorySQLite, HistoryFile, HistoryOff:
	default:
		return fmt.Errorf("unknown history backend %q (want sqlite, file or off)", cfg.History)
	}
	for _, s := range cfg.ExtraSizes {
		if s < 1 || s > 1024 {
			return fmt.Errorf("extra size %d out of range (1-1024)", s)
		}
	}
	return nil
}

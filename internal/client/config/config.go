package config

import (
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/vpndb/internal/common"
)

// Config holds runtime settings for the local database runner.
//
// Fields:
//   - DataDir: directory holding the object store and the preference store.
//   - StoreFile / PreferencesFile: file names inside DataDir.
//   - LogLevel / LogFile: slog level and optional rotated log file.
//   - WriteTimeout: upper bound for a single facade write.
//   - Watch: keep running and log observable emissions until interrupted.
type Config struct {
	DataDir         string        `validate:"required"`
	StoreFile       string        `validate:"required,nefield=PreferencesFile"`
	PreferencesFile string        `validate:"required"`
	LogLevel        string        `validate:"omitempty,oneof=debug info warn warning error"`
	LogFile         string
	WriteTimeout    time.Duration `validate:"gte=0"`
	Watch           bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.StoreFile = common.StoreFileName
	c.PreferencesFile = common.PreferencesFileName
	c.LogLevel = "info"
	c.LogFile = ""
	c.WriteTimeout = 5 * time.Second
	c.Watch = false
}

// StorePath is the object store file location.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, c.StoreFile)
}

// PreferencesPath is the preference store file location.
func (c *Config) PreferencesPath() string {
	return filepath.Join(c.DataDir, c.PreferencesFile)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

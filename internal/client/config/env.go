package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvDataDir      = "VPNDB_DATA_DIR"
	EnvLogLevel     = "VPNDB_LOG_LEVEL"
	EnvLogFile      = "VPNDB_LOG_FILE"
	EnvWriteTimeout = "VPNDB_WRITE_TIMEOUT"
	EnvWatch        = "VPNDB_WATCH"
)

// parseEnv overlays Config with VPNDB_* variables. A .env file in the
// working directory is loaded first; variables already set take precedence
// over it. Malformed values panic, like the other sources.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvWriteTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.WriteTimeout = d
	}
	if v := os.Getenv(EnvWatch); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.Watch = b
	}
}

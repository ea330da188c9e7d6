// Package config loads runtime configuration for the local database runner.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. VPNDB_* environment variables, optionally from a .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// The runner calls (*Config).Validate on the result.
//
// Supported flags
//
//	-d string   data directory
//	-l string   log level (debug, info, warn, error)
//	-f string   log file (rotated); stderr when empty
//	-t int      write timeout (seconds)
//	-w          watch mode
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "5s" or integer
// nanoseconds:
//
//	{
//	  "data_dir": "/var/lib/vpndb",
//	  "store_file": "store.db",
//	  "preferences_file": "preferences.db",
//	  "log_level": "debug",
//	  "log_file": "/var/log/vpndb.log",
//	  "write_timeout": "5s",
//	  "watch": true
//	}
//
// Fields missing from the JSON file keep their default values.
package config

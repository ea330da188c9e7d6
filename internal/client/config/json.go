package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vpndb/internal/flagx"
	"github.com/dmitrijs2005/vpndb/internal/timex"
)

// JsonConfig is a DTO used only for JSON unmarshalling. Pointer fields tell
// "absent" apart from zero values so absent keys keep their defaults.
type JsonConfig struct {
	DataDir         *string         `json:"data_dir"`
	StoreFile       *string         `json:"store_file"`
	PreferencesFile *string         `json:"preferences_file"`
	LogLevel        *string         `json:"log_level"`
	LogFile         *string         `json:"log_file"`
	WriteTimeout    *timex.Duration `json:"write_timeout"`
	Watch           *bool           `json:"watch"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. It does nothing when no file is given and panics on read or
// decode errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.StoreFile != nil {
		cfg.StoreFile = *jc.StoreFile
	}
	if jc.PreferencesFile != nil {
		cfg.PreferencesFile = *jc.PreferencesFile
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFile != nil {
		cfg.LogFile = *jc.LogFile
	}
	if jc.WriteTimeout != nil {
		cfg.WriteTimeout = jc.WriteTimeout.Duration
	}
	if jc.Watch != nil {
		cfg.Watch = *jc.Watch
	}
}

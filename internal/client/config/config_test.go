package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, "store.db", c.StoreFile)
	assert.Equal(t, "preferences.db", c.PreferencesFile)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 5*time.Second, c.WriteTimeout)
	assert.False(t, c.Watch)
}

func TestPaths(t *testing.T) {
	c := Config{DataDir: "/tmp/vpndb", StoreFile: "s.db", PreferencesFile: "p.db"}

	assert.Equal(t, filepath.Join("/tmp/vpndb", "s.db"), c.StorePath())
	assert.Equal(t, filepath.Join("/tmp/vpndb", "p.db"), c.PreferencesPath())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"data_dir":  "/from/json",
		"log_level": "warn",
	})
	os.Args = []string{"testbin", "-c", path, "-d", "/from/flag"}

	cfg := LoadConfig()

	assert.Equal(t, "/from/flag", cfg.DataDir)
	assert.Equal(t, "warn", cfg.LogLevel)
}

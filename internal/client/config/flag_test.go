package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-d", "/var/lib/vpndb", "-l", "debug", "-f", "/var/log/vpndb.log", "-t", "10", "-w"},
			expected: &Config{
				DataDir:      "/var/lib/vpndb",
				LogLevel:     "debug",
				LogFile:      "/var/log/vpndb.log",
				WriteTimeout: 10 * time.Second,
				Watch:        true,
			},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"cmd", "-c", "cfg.json", "-d", "x"},
			expected: &Config{DataDir: "x"},
		},
		{
			name:     "watch does not take a value",
			args:     []string{"cmd", "-w", "extra", "-l", "warn"},
			expected: &Config{LogLevel: "warn", Watch: true},
		},
		{
			name:        "incorrect timeout",
			args:        []string{"cmd", "-t", "abc"},
			expectPanic: true,
			expected:    &Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

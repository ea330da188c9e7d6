package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Filter(t *testing.T) {
	runner := Set{Value: []string{"-d", "-l", "-t"}, Bool: []string{"-w"}}

	tests := []struct {
		name string
		set  Set
		args []string
		want []string
	}{
		{
			name: "value flag with separate value",
			set:  ConfigFile,
			args: []string{"-c", "conf.json", "-l", "debug"},
			want: []string{"-c", "conf.json"},
		},
		{
			name: "double dash with equals",
			set:  ConfigFile,
			args: []string{"--config=alt.json", "-l", "debug"},
			want: []string{"--config=alt.json"},
		},
		{
			name: "value after equals may start with a dash",
			set:  ConfigFile,
			args: []string{"-config=--weird.json"},
			want: []string{"-config=--weird.json"},
		},
		{
			name: "value flag at the end keeps no value",
			set:  ConfigFile,
			args: []string{"-c"},
			want: []string{"-c"},
		},
		{
			name: "next flag is not a value",
			set:  ConfigFile,
			args: []string{"-c", "-config=alt.json"},
			want: []string{"-c", "-config=alt.json"},
		},
		{
			name: "bool flag does not swallow the next token",
			set:  runner,
			args: []string{"-w", "positional", "-d", "/var/lib/vpndb"},
			want: []string{"-w", "-d", "/var/lib/vpndb"},
		},
		{
			name: "bool flag with explicit value",
			set:  runner,
			args: []string{"-w=false", "-t", "3"},
			want: []string{"-w=false", "-t", "3"},
		},
		{
			name: "foreign flags and their values are dropped",
			set:  runner,
			args: []string{"-c", "conf.json", "-l", "debug", "-x"},
			want: []string{"-l", "debug"},
		},
		{
			name: "stops at double dash",
			set:  runner,
			args: []string{"-d", "data", "--", "-l", "debug"},
			want: []string{"-d", "data"},
		},
		{
			name: "repeated flag keeps order",
			set:  runner,
			args: []string{"-l", "info", "-l", "debug"},
			want: []string{"-l", "info", "-l", "debug"},
		},
		{
			name: "empty",
			set:  runner,
			args: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.Filter(tt.args))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/path/short.json"}, "/path/short.json"},
		{"long", []string{"-config", "/path/long.json"}, "/path/long.json"},
		{"equals form after a bool flag", []string{"-w", "-config=/path/eq.json"}, "/path/eq.json"},
		{"last wins", []string{"-c", "/path/1.json", "-config", "/path/2.json"}, "/path/2.json"},
		{"absent", []string{"-d", "data", "-w"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFileFlag(tt.args))
		})
	}
}

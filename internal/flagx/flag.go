// Package flagx lets the JSON loader and the flag loader share os.Args: each
// one keeps only the flags it owns before parsing them.
package flagx

import (
	"flag"
	"strings"
)

// Set names the flags one loader owns. Value flags take an argument, bool
// flags never do.
type Set struct {
	Value []string
	Bool  []string
}

// ConfigFile owns the JSON config path flag.
var ConfigFile = Set{Value: []string{"-c", "-config"}}

// Filter returns the args that belong to s, together with their values.
// A flag may carry one or two dashes and be written "-f value" or
// "-f=value". A token starting with "-" is never taken as a value, and
// parsing stops at "--".
func (s Set) Filter(args []string) []string {
	takesValue := make(map[string]bool, len(s.Value)+len(s.Bool))
	for _, f := range s.Value {
		takesValue[name(f)] = true
	}
	for _, f := range s.Bool {
		takesValue[name(f)] = false
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		n, _, inline := strings.Cut(name(arg), "=")
		value, ok := takesValue[n]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if inline || !value {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

func name(f string) string { return strings.TrimLeft(f, "-") }

// ConfigFileFlag returns the JSON config path given with -c or -config, or
// "" when neither is present. The last occurrence wins.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(ConfigFile.Filter(args))

	return path
}

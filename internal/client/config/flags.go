package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vpndb/internal/flagx"
)

var runnerFlags = flagx.Set{
	Value: []string{"-d", "-l", "-f", "-t"},
	Bool:  []string{"-w"},
}

// parseFlags populates selected Config fields from command-line flags.
// os.Args is filtered through runnerFlags first so the -c/-config flag
// owned by parseJson does not break parsing.
func parseFlags(cfg *Config) {
	args := runnerFlags.Filter(os.Args[1:])

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFile, "f", cfg.LogFile, "log file")
	writeTimeout := fs.Int("t", int(cfg.WriteTimeout.Seconds()), "write timeout (in seconds)")
	fs.BoolVar(&cfg.Watch, "w", cfg.Watch, "watch observables until interrupted")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.WriteTimeout = time.Duration(*writeTimeout) * time.Second
}

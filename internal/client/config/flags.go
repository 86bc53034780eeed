package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/trustcart/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   API base URL
//	-d string   local database path
//	-t int      request timeout in seconds
//	-l string   log level
//
// Only these flags are looked at; flagx.FilterArgs drops everything else
// so that -c/-config and unknown flags do not fail the parse.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("trustcart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *timeout <= 0 {
		return fmt.Errorf("parse flags: timeout must be positive, got %d", *timeout)
	}
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}

package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-e string   environment (dev, prod, local)
//	-t int      request timeout in seconds
//	-p string   Platform header value
//	-d string   session database path
//	-v          debug HTTP logging
//
// args are filtered with flagx.FilterArgs first so flags owned by other
// components (-c) do not break parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-e", "-t", "-p", "-d", "-v"}, "-v")

	fs := flag.NewFlagSet("eventadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	env := fs.String("e", string(cfg.Environment), "environment: dev, prod or local")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.Platform, "p", cfg.Platform, "Platform header value")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the session database")
	fs.BoolVar(&cfg.Debug, "v", cfg.Debug, "log HTTP requests and responses")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "e":
			cfg.Environment = Environment(*env)
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}

package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, seconds
//	-r int      refresh token validity, minutes
//	-u string   seeded administrator email
//	-p string   seeded administrator password
//	-seed       populate sample data (use -seed=false to start empty)
//
// Token lifetimes are taken as integers and converted to time.Duration.
// Access tokens are counted in seconds so the refresh flow is easy to watch
// locally.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-r", "-u", "-p", "-seed"}, "-seed")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTTL := fs.Int("t", int(config.AccessTokenValidityDuration.Seconds()), "access token validity (in seconds)")
	refreshTTL := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")
	fs.StringVar(&config.AdminEmail, "u", config.AdminEmail, "seeded administrator email")
	fs.StringVar(&config.AdminPassword, "p", config.AdminPassword, "seeded administrator password")
	fs.BoolVar(&config.SeedSampleData, "seed", config.SeedSampleData, "populate sample data")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTTL) * time.Second
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshTTL) * time.Minute
		}
	})
	return nil
}

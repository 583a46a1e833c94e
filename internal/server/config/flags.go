package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-i string   JWT issuer
//	-t int      token validity, minutes
//	-w int      request timeout, seconds
//	-m int      max open DB connections
//	-b int      bcrypt cost
//	-l string   log level
//
// Arguments are filtered through flagx.FilterArgs first so that -c/-config
// and any foreign flags do not break parsing.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-i", "-t", "-w", "-m", "-b", "-l"})

	fs := flag.NewFlagSet("fittrack", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TokenIssuer, "i", config.TokenIssuer, "token issuer")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	requestTimeout := fs.Int("w", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	fs.IntVar(&config.MaxOpenConns, "m", config.MaxOpenConns, "max open database connections")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Durations are only replaced when the flag was given, so that sub-minute
	// values coming from JSON or env survive the int round trip.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "w":
			config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
	return nil
}

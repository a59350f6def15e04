package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   web listen address (e.g., ":8080")
//	-g string   gRPC health address; empty disables the health service
//	-l string   credential (signin) endpoint URL
//	-q string   query endpoint URL
//	-d string   database driver: sqlite or pgx
//	-n string   database DSN
//	-s string   token sealing secret
//	-m int      query cache size, entries
//	-t int      query cache TTL, seconds
//	-w int      outgoing HTTP timeout, seconds (0 = none)
//	-v string   log level
//	-z string   location for calendar days (e.g., "Asia/Bahrain")
//
// Duration flags are integers in seconds.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-l", "-q", "-d", "-n", "-s", "-m", "-t", "-w", "-v", "-z"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run web server")
	fs.StringVar(&config.HealthAddr, "g", config.HealthAddr, "address and port of the gRPC health service")
	fs.StringVar(&config.SigninEndpoint, "l", config.SigninEndpoint, "credential endpoint")
	fs.StringVar(&config.QueryEndpoint, "q", config.QueryEndpoint, "query endpoint")
	fs.StringVar(&config.DatabaseDriver, "d", config.DatabaseDriver, "database driver (sqlite|pgx)")
	fs.StringVar(&config.DatabaseDSN, "n", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token sealing secret")
	fs.IntVar(&config.CacheSize, "m", config.CacheSize, "query cache size")

	cacheTTL := fs.Int("t", int(config.CacheTTL.Seconds()), "query cache ttl (in seconds)")
	httpTimeout := fs.Int("w", int(config.HTTPTimeout.Seconds()), "outgoing request timeout (in seconds)")

	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.Location, "z", config.Location, "location for calendar days")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CacheTTL = time.Duration(*cacheTTL) * time.Second
	config.HTTPTimeout = time.Duration(*httpTimeout) * time.Second
}

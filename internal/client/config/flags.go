package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/flagx"
)

// parseFlags populates CLI Config fields from command-line flags. See the
// package documentation for the list.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-l", "-q", "-p", "-s", "-e", "-b", "-r", "-u", "-k", "-x", "-w", "-v", "-z"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.SigninEndpoint, "l", config.SigninEndpoint, "credential endpoint")
	fs.StringVar(&config.QueryEndpoint, "q", config.QueryEndpoint, "query endpoint")
	fs.StringVar(&config.DatabasePath, "p", config.DatabasePath, "token database path")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token sealing secret")
	fs.StringVar(&config.ExportDir, "e", config.ExportDir, "chart export directory")
	fs.StringVar(&config.S3.Bucket, "b", config.S3.Bucket, "S3 bucket for chart export")
	fs.StringVar(&config.S3.Region, "r", config.S3.Region, "S3 region")
	fs.StringVar(&config.S3.BaseEndpoint, "u", config.S3.BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3.AccessKey, "k", config.S3.AccessKey, "S3 access key")
	fs.StringVar(&config.S3.SecretKey, "x", config.S3.SecretKey, "S3 secret key")

	httpTimeout := fs.Int("w", int(config.HTTPTimeout.Seconds()), "outgoing request timeout (in seconds)")

	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.Location, "z", config.Location, "location for calendar days")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.HTTPTimeout = time.Duration(*httpTimeout) * time.Second
}

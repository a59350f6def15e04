package config

import (
	"time"

	"github.com/dmitrijs2005/progressboard/internal/export"
)

// Config holds runtime settings for the CLI.
type Config struct {
	SigninEndpoint string
	QueryEndpoint  string
	DatabasePath   string
	SecretKey      string
	ExportDir      string
	S3             export.S3Config
	HTTPTimeout    time.Duration
	LogLevel       string
	Location       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.SigninEndpoint = "https://learn.reboot01.com/api/auth/signin"
	c.QueryEndpoint = "https://learn.reboot01.com/api/graphql-engine/v1/graphql"
	c.DatabasePath = "progressboard-cli.db"
	c.SecretKey = ""
	c.ExportDir = "charts"
	c.S3 = export.S3Config{Region: "us-east-1"}
	c.HTTPTimeout = 30 * time.Second
	c.LogLevel = "warn"
	c.Location = "Local"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

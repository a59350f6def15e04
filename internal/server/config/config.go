// Package config handles configuration for the web server, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the dashboard server.
//
// Fields:
//   - ListenAddr: bind address of the web server.
//   - HealthAddr: bind address of the gRPC health service; empty disables it.
//   - SigninEndpoint / QueryEndpoint: the remote credential and query endpoints.
//   - DatabaseDriver / DatabaseDSN: token storage ("sqlite" or "pgx").
//   - SecretKey: seals stored tokens; empty stores them as is.
//   - CacheSize / CacheTTL: the ephemeral per-session query cache.
//   - HTTPTimeout: timeout of outgoing requests; zero means none.
//   - SweepInterval: how often expired web sessions are removed.
//   - LogLevel: debug, info, warn or error.
//   - Location: IANA zone calendar days are computed in.
type Config struct {
	ListenAddr     string
	HealthAddr     string
	SigninEndpoint string
	QueryEndpoint  string
	DatabaseDriver string
	DatabaseDSN    string
	SecretKey      string
	CacheSize      int
	CacheTTL       time.Duration
	HTTPTimeout    time.Duration
	SweepInterval  time.Duration
	LogLevel       string
	Location       string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.HealthAddr = ":50051"
	c.SigninEndpoint = "https://learn.reboot01.com/api/auth/signin"
	c.QueryEndpoint = "https://learn.reboot01.com/api/graphql-engine/v1/graphql"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "progressboard.db"
	c.SecretKey = ""
	c.CacheSize = 256
	c.CacheTTL = 5 * time.Minute
	c.HTTPTimeout = 0
	c.SweepInterval = 10 * time.Minute
	c.LogLevel = "info"
	c.Location = "UTC"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

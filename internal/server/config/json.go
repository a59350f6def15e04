package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/progressboard/internal/flagx"
	"github.com/dmitrijs2005/progressboard/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Durations accept strings such
// as "5m" as well as integer nanoseconds.
type JsonConfig struct {
	ListenAddr     string         `json:"listen_addr"`
	HealthAddr     *string        `json:"health_addr"`
	SigninEndpoint string         `json:"signin_endpoint"`
	QueryEndpoint  string         `json:"query_endpoint"`
	DatabaseDriver string         `json:"database_driver"`
	DatabaseDSN    string         `json:"database_dsn"`
	SecretKey      string         `json:"secret_key"`
	CacheSize      int            `json:"cache_size"`
	CacheTTL       timex.Duration `json:"cache_ttl"`
	HTTPTimeout    timex.Duration `json:"http_timeout"`
	SweepInterval  timex.Duration `json:"sweep_interval"`
	LogLevel       string         `json:"log_level"`
	Location       string         `json:"location"`
}

// parseJson overlays the values set in the JSON file named by -c/-config
// (or $PROGRESSBOARD_CONFIG) onto config. Absent keys keep their current
// value. An unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.ListenAddr, c.ListenAddr)
	if c.HealthAddr != nil {
		config.HealthAddr = *c.HealthAddr
	}
	setString(&config.SigninEndpoint, c.SigninEndpoint)
	setString(&config.QueryEndpoint, c.QueryEndpoint)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.CacheSize > 0 {
		config.CacheSize = c.CacheSize
	}
	if c.CacheTTL.Duration > 0 {
		config.CacheTTL = c.CacheTTL.Duration
	}
	if c.HTTPTimeout.Duration > 0 {
		config.HTTPTimeout = c.HTTPTimeout.Duration
	}
	if c.SweepInterval.Duration > 0 {
		config.SweepInterval = c.SweepInterval.Duration
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.Location, c.Location)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

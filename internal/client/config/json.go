package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/progressboard/internal/flagx"
	"github.com/dmitrijs2005/progressboard/internal/timex"
)

type JsonS3Config struct {
	Bucket       string `json:"bucket"`
	Region       string `json:"region"`
	BaseEndpoint string `json:"base_endpoint"`
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
	Prefix       string `json:"prefix"`
}

type JsonConfig struct {
	SigninEndpoint string         `json:"signin_endpoint"`
	QueryEndpoint  string         `json:"query_endpoint"`
	DatabasePath   string         `json:"database_path"`
	SecretKey      string         `json:"secret_key"`
	ExportDir      string         `json:"export_dir"`
	S3             JsonS3Config   `json:"s3"`
	HTTPTimeout    timex.Duration `json:"http_timeout"`
	LogLevel       string         `json:"log_level"`
	Location       string         `json:"location"`
}

// parseJson overlays the values set in the JSON config file onto config.
// Absent keys keep their current value.
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

	setString(&config.SigninEndpoint, c.SigninEndpoint)
	setString(&config.QueryEndpoint, c.QueryEndpoint)
	setString(&config.DatabasePath, c.DatabasePath)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.ExportDir, c.ExportDir)
	setString(&config.S3.Bucket, c.S3.Bucket)
	setString(&config.S3.Region, c.S3.Region)
	setString(&config.S3.BaseEndpoint, c.S3.BaseEndpoint)
	setString(&config.S3.AccessKey, c.S3.AccessKey)
	setString(&config.S3.SecretKey, c.S3.SecretKey)
	setString(&config.S3.Prefix, c.S3.Prefix)
	if c.HTTPTimeout.Duration > 0 {
		config.HTTPTimeout = c.HTTPTimeout.Duration
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.Location, c.Location)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

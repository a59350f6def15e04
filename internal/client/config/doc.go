// Package config loads runtime configuration for the progressboard CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags -c or -config,
//     or the PROGRESSBOARD_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-l string   credential (signin) endpoint URL
//	-q string   query endpoint URL
//	-p string   path of the local sqlite token database
//	-s string   token sealing secret
//	-e string   chart export directory
//	-b string   S3 bucket for chart export; empty exports to the directory
//	-r string   S3 region
//	-u string   S3 base endpoint (MinIO, localstack)
//	-k string   S3 access key
//	-x string   S3 secret key
//	-w int      outgoing HTTP timeout (seconds, 0 = none)
//	-v string   log level
//	-z string   location for calendar days
//
// # JSON schema
//
//	{
//	  "signin_endpoint": "https://learn.reboot01.com/api/auth/signin",
//	  "query_endpoint": "https://learn.reboot01.com/api/graphql-engine/v1/graphql",
//	  "database_path": "progressboard-cli.db",
//	  "export_dir": "charts",
//	  "s3": {"bucket": "charts", "region": "us-east-1"},
//	  "http_timeout": "30s"
//	}
package config

package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/export"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-l", "http://a/signin", "-q", "http://a/gql", "-p", "pb.db", "-s", "secret",
				"-e", "out", "-b", "bucket", "-r", "eu-west-1", "-u", "http://minio", "-k", "ak", "-x", "sk",
				"-w", "7", "-v", "debug", "-z", "UTC",
			},
			expected: &Config{
				SigninEndpoint: "http://a/signin",
				QueryEndpoint:  "http://a/gql",
				DatabasePath:   "pb.db",
				SecretKey:      "secret",
				ExportDir:      "out",
				S3: export.S3Config{
					Bucket:       "bucket",
					Region:       "eu-west-1",
					BaseEndpoint: "http://minio",
					AccessKey:    "ak",
					SecretKey:    "sk",
				},
				HTTPTimeout: 7 * time.Second,
				LogLevel:    "debug",
				Location:    "UTC",
			},
		},
		{
			name:     "server flags are ignored",
			args:     []string{"cmd", "-a", ":8080", "-p", "x.db"},
			expected: &Config{DatabasePath: "x.db"},
		},
		{
			name:        "bad timeout panics",
			args:        []string{"cmd", "-w", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

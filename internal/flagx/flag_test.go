package flagx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate values",
			args:    []string{"-a", ":8080", "-x", "1", "-q", "http://q"},
			allowed: []string{"-a", "-q"},
			want:    []string{"-a", ":8080", "-q", "http://q"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=conf.json", "-a=:1", "-z=UTC"},
			allowed: []string{"-config", "-z"},
			want:    []string{"-config=conf.json", "-z=UTC"},
		},
		{
			name:    "flag without value followed by flag",
			args:    []string{"-v", "-a", ":9"},
			allowed: []string{"-v", "-a"},
			want:    []string{"-v", "-a", ":9"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowed)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("FilterArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv(ConfigEnv, "")

	assert.Equal(t, "a.json", ConfigPath([]string{"-c", "a.json", "-a", ":1"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"-config=b.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-a", ":1"}))
}

func TestConfigPath_EnvFallback(t *testing.T) {
	t.Setenv(ConfigEnv, "/etc/progressboard.json")

	assert.Equal(t, "/etc/progressboard.json", ConfigPath(nil))
	assert.Equal(t, "flag.json", ConfigPath([]string{"-c", "flag.json"}))
}

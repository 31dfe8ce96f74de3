package config

import (
	"os"
	"testing"

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
				"-a", "127.0.0.1:9090", "-g", "", "-d", "db", "-s", "secret", "-u", "https://ledger.example",
				"-n", "smtp", "-l", "zerolog", "-w", "./public", "-p",
			},
			expected: &Config{
				HTTPAddr:       "127.0.0.1:9090",
				HealthAddrGRPC: "",
				DatabaseDSN:    "db",
				SecretKey:      "secret",
				BaseURL:        "https://ledger.example",
				Notifier:       "smtp",
				LogFormat:      "zerolog",
				StaticDir:      "./public",
				Production:     true,
			},
		},
		{
			name: "bool flag before a valued flag",
			args: []string{"cmd", "-p", "-a", ":7070", "-c", "ignored.json"},
			expected: &Config{
				HTTPAddr:   ":7070",
				Production: true,
			},
		},
		{
			name:        "bad bool value panics",
			args:        []string{"cmd", "-p=maybe"},
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranging.yaml")
	data := `
logLevel: debug
defaultIntervalMs: 500
peers:
  - address: "01:02:03:04:05:06"
    connectionHandle: 10
    connIntervalUnits: 12
    supportsRanging: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 500, cfg.DefaultIntervalMs)
	require.Len(t, cfg.Peers, 1)
	assert.Equal(t, uint16(10), cfg.Peers[0].ConnectionHandle)
	assert.True(t, cfg.Peers[0].SupportsRanging)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"zero interval", func(c *Config) { c.DefaultIntervalMs = 0 }},
		{"bad address", func(c *Config) { c.Peers[0].Address = "nope" }},
		{"duplicate address", func(c *Config) { c.Peers[1].Address = c.Peers[0].Address }},
		{"duplicate handle", func(c *Config) { c.Peers[1].ConnectionHandle = c.Peers[0].ConnectionHandle }},
		{"zero conn interval", func(c *Config) { c.Peers[0].ConnIntervalUnits = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// Package config holds the YAML configuration for embedders of the ranging
// stack and the demo binary: log destinations, the default measurement
// cadence and the simulated peer set.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci"
)

// Config is the top-level stack configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`

	// LogFile enables the CBOR event log when non-empty.
	LogFile string `yaml:"logFile"`

	// DefaultIntervalMs is the measurement interval used when a start
	// request does not carry its own.
	DefaultIntervalMs int `yaml:"defaultIntervalMs"`

	// Peers are the simulated remote devices the demo binary exposes.
	Peers []Peer `yaml:"peers"`
}

// Peer describes one simulated remote device.
type Peer struct {
	// Address is the peer's device address, e.g. "12:34:56:78:9A:BC".
	Address string `yaml:"address"`

	// ConnectionHandle is the simulated ACL connection handle.
	ConnectionHandle uint16 `yaml:"connectionHandle"`

	// ConnIntervalUnits is the ACL connection interval in 1.25 ms units.
	ConnIntervalUnits uint16 `yaml:"connIntervalUnits"`

	// SupportsRanging controls whether the peer exposes the Ranging
	// Service at all.
	SupportsRanging bool `yaml:"supportsRanging"`
}

// Default returns the configuration used when no file is given: one ranging
// capable peer and a 200 ms measurement interval.
func Default() Config {
	return Config{
		LogLevel:          "info",
		DefaultIntervalMs: 200,
		Peers: []Peer{
			{
				Address:           "12:34:56:78:9A:BC",
				ConnectionHandle:  64,
				ConnIntervalUnits: 24,
				SupportsRanging:   true,
			},
			{
				Address:           "AA:BB:CC:DD:EE:FF",
				ConnectionHandle:  65,
				ConnIntervalUnits: 36,
				SupportsRanging:   false,
			},
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the stack cannot work with.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.DefaultIntervalMs <= 0 {
		return fmt.Errorf("invalid default interval %d ms", c.DefaultIntervalMs)
	}

	seenAddr := make(map[hci.Address]bool)
	seenHandle := make(map[uint16]bool)
	for _, p := range c.Peers {
		addr, err := hci.ParseAddress(p.Address)
		if err != nil {
			return fmt.Errorf("invalid peer address %q: %w", p.Address, err)
		}
		if seenAddr[addr] {
			return fmt.Errorf("duplicate peer address %s", addr)
		}
		seenAddr[addr] = true
		if seenHandle[p.ConnectionHandle] {
			return fmt.Errorf("duplicate connection handle %d", p.ConnectionHandle)
		}
		seenHandle[p.ConnectionHandle] = true
		if p.ConnIntervalUnits == 0 {
			return fmt.Errorf("peer %s: connection interval must be positive", addr)
		}
	}
	return nil
}

// DefaultInterval returns the default measurement interval as a duration.
func (c Config) DefaultInterval() time.Duration {
	return time.Duration(c.DefaultIntervalMs) * time.Millisecond
}

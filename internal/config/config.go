// Package config provides configuration types and defaults for uitrack.
package config

import (
	"time"

	"github.com/uitrack/uitrack/internal/track"
)

// RegistryConfig bounds the element registry.
type RegistryConfig struct {
	Capacity         int      `mapstructure:"capacity"`
	MaxIdentifierLen int      `mapstructure:"max_identifier_len"`
	MaxContextBytes  int      `mapstructure:"max_context_bytes"`
	MaxCoordinate    float64  `mapstructure:"max_coordinate"`
	Denylist         []string `mapstructure:"denylist"`
}

// WaitConfig controls wait-for-element polling.
type WaitConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// ServerConfig controls the MCP server.
type ServerConfig struct {
	Transport string        `mapstructure:"transport"`
	Port      int           `mapstructure:"port"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// Config holds all configuration options for uitrack.
type Config struct {
	Registry RegistryConfig `mapstructure:"registry"`
	Wait     WaitConfig     `mapstructure:"wait"`
	Server   ServerConfig   `mapstructure:"server"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Registry: RegistryConfig{
			Capacity:         track.DefaultCapacity,
			MaxIdentifierLen: track.DefaultMaxIdentifierLen,
			MaxContextBytes:  track.DefaultMaxContextBytes,
			MaxCoordinate:    track.DefaultMaxCoordinate,
			Denylist:         track.DefaultDenylist,
		},
		Wait: WaitConfig{
			PollInterval: 100 * time.Millisecond,
		},
		Server: ServerConfig{
			Transport: "stdio",
			Port:      8080,
			CacheTTL:  500 * time.Millisecond,
		},
	}
}

// Policy converts the registry section into a validation policy, falling
// back to defaults for unset fields.
func (c Config) Policy() track.Policy {
	p := track.DefaultPolicy()
	if c.Registry.MaxIdentifierLen > 0 {
		p.MaxIdentifierLen = c.Registry.MaxIdentifierLen
	}
	if c.Registry.MaxContextBytes > 0 {
		p.MaxContextBytes = c.Registry.MaxContextBytes
	}
	if c.Registry.MaxCoordinate > 0 {
		p.MaxCoordinate = c.Registry.MaxCoordinate
	}
	if c.Registry.Denylist != nil {
		p.Denylist = c.Registry.Denylist
	}
	return p
}

// NewRegistry builds a registry from the config.
func (c Config) NewRegistry() *track.Registry {
	return track.NewRegistry(c.Registry.Capacity, c.Policy())
}

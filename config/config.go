// Package config defines the runtime configuration for gocast and
// provides layered loading: defaults, then an optional INI file, then
// environment variables, then CLI flags (handled by cmd/root.go).
package config

import (
	"fmt"
	"time"
)

// Config holds every tuneable for a single gocast server.
type Config struct {
	// ── Endpoint ─────────────────────────────────────────────────────
	Host string `ini:"host"` // bind address
	Port int    `ini:"port"` // bind port (0 = OS-assigned)

	// ── Streaming ────────────────────────────────────────────────────
	Payload       string        `ini:"payload"`        // bytes written on each tick
	WriteInterval time.Duration `ini:"write_interval"` // pause between writes per client
	PollInterval  time.Duration `ini:"poll_interval"`  // accept/reap poll bound

	// ── Output ───────────────────────────────────────────────────────
	Verbose int `ini:"-"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Host:          DefaultHost,
		Port:          DefaultPort,
		Payload:       DefaultPayload,
		WriteInterval: DefaultWriteInterval,
		PollInterval:  DefaultPollInterval,
	}
}

// Addr returns the configured "host:port" endpoint.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("bind host is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 0-65535", c.Port)
	}
	if c.Payload == "" {
		return fmt.Errorf("payload must not be empty")
	}
	if c.WriteInterval <= 0 {
		return fmt.Errorf("write interval must be positive, got %v", c.WriteInterval)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.PollInterval)
	}
	return nil
}

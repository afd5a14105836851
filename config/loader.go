package config

// loader.go - configuration loading from INI files and environment
// variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (LoadFromEnv)
//   3. INI config file        (LoadFile)
//   4. Defaults   (defaults.go)

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/ini.v1"
)

// LoadFile overlays the [server] section of an INI file onto cfg, e.g.
//
//	[server]
//	host = 0.0.0.0
//	port = 5001
//	payload = Hello World
//	write_interval = 1s
//	poll_interval = 50ms
func LoadFile(cfg *Config, path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	if err := f.Section("server").MapTo(cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the GOCAST_ prefix.

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("GOCAST_HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("GOCAST_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("GOCAST_PAYLOAD"); v != "" {
		cfg.Payload = v
	}
	if v := envDuration("GOCAST_WRITE_INTERVAL"); v > 0 {
		cfg.WriteInterval = v
	}
	if v := envDuration("GOCAST_POLL_INTERVAL"); v > 0 {
		cfg.PollInterval = v
	}
	if v := envInt("GOCAST_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envDuration(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

package config

import (
	"testing"
	"time"
)

// ── New / defaults ───────────────────────────────────────────────────

func TestNewDefaults(t *testing.T) {
	cfg := New()

	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, DefaultHost)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Payload != DefaultPayload {
		t.Errorf("Payload = %q, want %q", cfg.Payload, DefaultPayload)
	}
	if cfg.WriteInterval != DefaultWriteInterval {
		t.Errorf("WriteInterval = %v, want %v", cfg.WriteInterval, DefaultWriteInterval)
	}
	if cfg.PollInterval != DefaultPollInterval {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, DefaultPollInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestAddr(t *testing.T) {
	cfg := &Config{Host: "0.0.0.0", Port: 9000}
	if got := cfg.Addr(); got != "0.0.0.0:9000" {
		t.Errorf("Addr = %q", got)
	}
}

// ── Validate ─────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Host:          "localhost",
			Port:          5001,
			Payload:       "Hello World",
			WriteInterval: time.Second,
			PollInterval:  50 * time.Millisecond,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"ephemeral port", func(c *Config) { c.Port = 0 }, false},
		{"max port", func(c *Config) { c.Port = 65535 }, false},
		{"no host", func(c *Config) { c.Host = "" }, true},
		{"negative port", func(c *Config) { c.Port = -1 }, true},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
		{"empty payload", func(c *Config) { c.Payload = "" }, true},
		{"zero write interval", func(c *Config) { c.WriteInterval = 0 }, true},
		{"negative write interval", func(c *Config) { c.WriteInterval = -time.Second }, true},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

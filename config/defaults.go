package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, config file parsing, and environment variable
// loading.

const (
	// DefaultHost is the address the server binds when none is given.
	DefaultHost = "localhost"

	// DefaultPort is the TCP port the server binds when none is given.
	DefaultPort = 5001

	// DefaultPayload is the byte sequence streamed to every client.
	// No trailing newline and no framing of any kind.
	DefaultPayload = "Hello World"

	// DefaultWriteInterval is the pause between payload writes on each
	// client connection.
	DefaultWriteInterval = 1 * time.Second

	// DefaultPollInterval bounds one iteration of the runner's
	// accept/reap loop, and therefore its shutdown latency.
	DefaultPollInterval = 50 * time.Millisecond
)

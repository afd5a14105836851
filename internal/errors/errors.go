// Package errors provides domain-specific error types for gocast.
//
// These types carry structured context (operation, address) that lets
// callers separate fatal setup failures from the expected churn of
// clients disconnecting mid-stream.
package errors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	// ErrAlreadyRunning is returned when Setup is called on a server
	// or runner that is already bound and polling.
	ErrAlreadyRunning = errors.New("server is already running")

	// ErrNotRunning is returned when End is called on a server that
	// was never started (or has already been shut down).
	ErrNotRunning = errors.New("server is not running")
)

// ── Structured error types ───────────────────────────────────────────

// BindError represents a failure to bind or listen on an address.
// It is fatal to setup and is never retried.
type BindError struct {
	Addr string // "host:port" the bind was attempted on
	Err  error  // underlying error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// NetworkError represents a failure in a network operation that is not
// classified as a peer disconnect.
type NetworkError struct {
	Op   string // operation: "accept", "write"
	Addr string // network address involved
	Err  error  // underlying error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a NetworkError.
func Wrap(op, addr string, err error) *NetworkError {
	return &NetworkError{Op: op, Addr: addr, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// IsDisconnect reports whether err is the normal signal that the peer
// closed the connection (reset, broken pipe, EOF, or a socket closed
// under the writer). Such errors terminate a worker's loop silently;
// anything else is unexpected and surfaced to the reap path.
func IsDisconnect(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) {
		return true
	}
	return false
}

// IsTimeout reports whether err is a network timeout, e.g. a listener
// readiness poll that expired with no pending connection.
func IsTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use gocast/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

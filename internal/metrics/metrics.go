// Package metrics provides lightweight, lock-free counters for tracking
// runtime statistics of a gocast server.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a server instance.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	workersActive atomic.Int64
	workersTotal  atomic.Int64
	workersReaped atomic.Int64
	bytesOut      atomic.Int64
	errorsTotal   atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Worker metrics ───────────────────────────────────────────────────

// WorkerStarted increments both the active and total counters.
func (c *Collector) WorkerStarted() {
	if c == nil {
		return
	}
	c.workersActive.Add(1)
	c.workersTotal.Add(1)
}

// WorkerStopped decrements the active worker counter.
func (c *Collector) WorkerStopped() {
	if c == nil {
		return
	}
	c.workersActive.Add(-1)
}

// WorkerReaped records that the runner reclaimed a dead worker.
func (c *Collector) WorkerReaped() {
	if c == nil {
		return
	}
	c.workersReaped.Add(1)
}

// ActiveWorkers returns the current number of live workers.
func (c *Collector) ActiveWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.workersActive.Load()
}

// TotalWorkers returns the lifetime worker count.
func (c *Collector) TotalWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.workersTotal.Load()
}

// ReapedWorkers returns the number of workers reclaimed by the reap step.
func (c *Collector) ReapedWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.workersReaped.Load()
}

// ── I/O metrics ──────────────────────────────────────────────────────

// BytesSent records n bytes written to a client socket.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// TotalBytesOut returns total bytes streamed to clients.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	WorkersActive    int64  `json:"workers_active"`
	WorkersTotal     int64  `json:"workers_total"`
	WorkersReaped    int64  `json:"workers_reaped"`
	BytesOut         int64  `json:"bytes_out"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:        time.Since(c.startTime).Truncate(time.Second).String(),
		WorkersActive: c.workersActive.Load(),
		WorkersTotal:  c.workersTotal.Load(),
		WorkersReaped: c.workersReaped.Load(),
		BytesOut:      c.bytesOut.Load(),
		ErrorsTotal:   c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}

// Package client implements a small receiving client for a gocast
// server.  It connects, runs a background read loop, and accumulates
// every byte received until either side closes the connection.
//
// It exists primarily for exercising the server (the package's tests
// and the server's own tests use it), but is a complete client.
package client

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gocast/internal/retry"
	"gocast/util"
)

const dialTimeout = 2 * time.Second

// Client is one open connection to a gocast server.
type Client struct {
	conn   net.Conn
	logger zerolog.Logger

	done      chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	buf     []byte
	readErr error
}

// Dial connects to the server at host:port and starts the read loop.
// The dial is retried with backoff, so a client started immediately
// after the server may connect before the listener is fully up.
func Dial(host string, port int, logger zerolog.Logger) (*Client, error) {
	addr := util.FormatAddr(host, port)

	var conn net.Conn
	b := retry.DefaultBackoff()
	err := b.Do(context.Background(), func(attempt int) error {
		c, derr := net.DialTimeout("tcp", addr, dialTimeout)
		if derr != nil {
			return derr
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}

	cl := &Client{
		conn: conn,
		done: make(chan struct{}),
	}
	cl.logger = logger.With().
		Str("component", "client").
		Str("local", conn.LocalAddr().String()).
		Logger()

	go cl.readLoop()
	return cl, nil
}

// Received returns a copy of everything read so far.
func (c *Client) Received() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]byte, len(c.buf))
	copy(out, c.buf)
	return out
}

// ReadErr returns the error that ended the read loop, nil while the
// loop is still running.
func (c *Client) ReadErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readErr
}

// Done is closed when the read loop has exited, i.e. the connection
// was closed by either side.
func (c *Client) Done() <-chan struct{} { return c.done }

// WaitFor blocks until at least n bytes have been received or the
// timeout expires.
func (c *Client) WaitFor(n int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		c.mu.Lock()
		got := len(c.buf)
		c.mu.Unlock()
		if got >= n {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("received %d of %d bytes within %v", got, n, timeout)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// WaitClosed blocks until the read loop has exited or the timeout
// expires.
func (c *Client) WaitClosed(timeout time.Duration) error {
	select {
	case <-c.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("connection still open after %v", timeout)
	}
}

// Close shuts the connection and waits for the read loop to exit.
// Repeated calls are no-ops.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
		<-c.done
		c.logger.Debug().Msg("closed connection")
	})
	return err
}

func (c *Client) readLoop() {
	defer close(c.done)

	buf := make([]byte, 1024)
	for {
		n, err := c.conn.Read(buf)
		if n > 0 {
			c.mu.Lock()
			c.buf = append(c.buf, buf[:n]...)
			c.mu.Unlock()
		}
		if err != nil {
			c.mu.Lock()
			c.readErr = err
			c.mu.Unlock()
			return
		}
	}
}

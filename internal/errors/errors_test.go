package errors

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"
)

// ── BindError ────────────────────────────────────────────────────────

func TestBindError(t *testing.T) {
	inner := New("address already in use")
	err := &BindError{Addr: "localhost:5001", Err: inner}

	if !strings.Contains(err.Error(), "localhost:5001") {
		t.Errorf("message should contain address: %q", err.Error())
	}
	if !Is(err, inner) {
		t.Error("BindError should unwrap to the inner error")
	}
}

// ── NetworkError ─────────────────────────────────────────────────────

func TestNetworkError(t *testing.T) {
	inner := New("boom")
	err := Wrap("write", "10.0.0.1:9", inner)

	if got := err.Error(); got != "write 10.0.0.1:9: boom" {
		t.Errorf("message = %q", got)
	}
	if !Is(err, inner) {
		t.Error("NetworkError should unwrap to the inner error")
	}
}

// ── IsDisconnect ─────────────────────────────────────────────────────

func TestIsDisconnect(t *testing.T) {
	opErr := func(err error) error {
		return &net.OpError{Op: "write", Net: "tcp", Err: os.NewSyscallError("write", err)}
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"conn reset", opErr(syscall.ECONNRESET), true},
		{"broken pipe", opErr(syscall.EPIPE), true},
		{"eof", io.EOF, true},
		{"closed conn", net.ErrClosed, true},
		{"wrapped closed conn", fmt.Errorf("write: %w", net.ErrClosed), true},
		{"refused", opErr(syscall.ECONNREFUSED), false},
		{"plain error", New("weird failure"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDisconnect(tt.err); got != tt.want {
				t.Errorf("IsDisconnect(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// ── IsTimeout ────────────────────────────────────────────────────────

func TestIsTimeout(t *testing.T) {
	// A real deadline expiry from a listener poll.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	tl := ln.(*net.TCPListener)
	tl.SetDeadline(time.Now()) //nolint:errcheck
	_, aerr := tl.Accept()
	if aerr == nil {
		t.Fatal("expected accept to time out")
	}
	if !IsTimeout(aerr) {
		t.Errorf("IsTimeout(%v) = false, want true", aerr)
	}

	if IsTimeout(New("not a timeout")) {
		t.Error("plain error misclassified as timeout")
	}
}

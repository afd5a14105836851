// Package server exposes the externally-facing control handle for a
// gocast server: setup, synchronous teardown, and read-only observers.
package server

import (
	"sync"

	"github.com/rs/zerolog"

	"gocast/config"
	"gocast/internal/core"
	errs "gocast/internal/errors"
	"gocast/internal/metrics"
)

// Server starts the poll-loop runner on its own goroutine and offers a
// synchronous End that signals the runner and waits for full teardown.
//
// A Server is single-use: once End has run it cannot be set up again.
type Server struct {
	cfg     *config.Config
	logger  zerolog.Logger
	metrics *metrics.Collector
	runner  *core.Runner

	mu      sync.Mutex
	started bool
	ended   bool
}

// New returns an unstarted server handle.
func New(cfg *config.Config, logger zerolog.Logger) *Server {
	m := metrics.New()
	return &Server{
		cfg:     cfg,
		logger:  logger.With().Str("component", "server").Logger(),
		metrics: m,
		runner:  core.NewRunner(cfg, logger, m),
	}
}

// Setup binds the listening socket and launches the runner's poll loop
// on a separate goroutine.  Calling Setup while the server is running
// (or after it has been ended) is a precondition violation and fails
// with errs.ErrAlreadyRunning without touching the socket.
func (s *Server) Setup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errs.ErrAlreadyRunning
	}

	s.logger.Info().Str("host", s.cfg.Host).Int("port", s.cfg.Port).Msg("setting up server")
	if err := s.runner.Setup(); err != nil {
		return err
	}
	s.started = true
	go s.runner.Run()
	return nil
}

// End clears the runner's run-flag, waits for its goroutine to fully
// terminate (all workers cleaned up), then closes the listening
// socket.  Calling End on a server that never started returns
// errs.ErrNotRunning immediately rather than blocking.
func (s *Server) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.ended {
		return errs.ErrNotRunning
	}

	s.logger.Info().Msg("closing server")
	s.runner.Signal()
	<-s.runner.Done()
	err := s.runner.Close()
	s.ended = true
	s.logger.Info().Msg("server closed")
	return err
}

// IsAlive reports whether the runner's poll loop is currently running.
func (s *Server) IsAlive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.ended {
		return false
	}
	select {
	case <-s.runner.Done():
		return false
	default:
		return true
	}
}

// Host returns the configured bind address.
func (s *Server) Host() string { return s.cfg.Host }

// Port returns the actual bound port once the server has started, or
// the configured port before that.
func (s *Server) Port() int {
	if p := s.runner.Port(); p != 0 {
		return p
	}
	return s.cfg.Port
}

// Metrics returns the server's metrics collector.
func (s *Server) Metrics() *metrics.Collector { return s.metrics }

// With runs fn between a Setup/End pair.  End is guaranteed to run
// once Setup has succeeded, even when fn returns an error; fn's error
// takes precedence over End's.
func With(cfg *config.Config, logger zerolog.Logger, fn func(*Server) error) (err error) {
	s := New(cfg, logger)
	if err = s.Setup(); err != nil {
		return err
	}
	defer func() {
		if eerr := s.End(); eerr != nil && err == nil {
			err = eerr
		}
	}()
	return fn(s)
}

// Package core implements the accept/reap poll loop and the per-client
// write workers of a gocast server.
package core

import (
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gocast/config"
	errs "gocast/internal/errors"
	"gocast/internal/metrics"
	"gocast/util"
)

// Runner owns the listening socket and the active-worker set.  Its
// poll loop interleaves three duties on a single goroutine: accepting
// ready connections, reaping workers whose loop has exited, and
// checking the one-shot stop signal.
//
// The worker set is touched only from the poll-loop goroutine, so it
// needs no locking.  The listening socket is closed by the owning
// server handle after Done() fires, never by the loop itself.
type Runner struct {
	cfg     *config.Config
	logger  zerolog.Logger
	metrics *metrics.Collector

	ln   *net.TCPListener
	port int // actual bound port (differs from cfg.Port when 0)

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	workers []*Worker
}

// NewRunner returns a runner for the given configuration.  Setup must
// be called before Run.
func NewRunner(cfg *config.Config, logger zerolog.Logger, m *metrics.Collector) *Runner {
	return &Runner{
		cfg:     cfg,
		logger:  logger.With().Str("component", "runner").Logger(),
		metrics: m,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Setup binds and starts listening on the configured endpoint.  It
// fails with *errs.BindError if the address is in use or invalid, and
// with errs.ErrAlreadyRunning if the runner is already bound.
func (r *Runner) Setup() error {
	if r.ln != nil {
		return errs.ErrAlreadyRunning
	}

	addr := util.FormatAddr(r.cfg.Host, r.cfg.Port)
	ln, err := net.Listen("tcp4", addr)
	if err != nil {
		return &errs.BindError{Addr: addr, Err: err}
	}
	r.ln = ln.(*net.TCPListener)
	r.port = r.ln.Addr().(*net.TCPAddr).Port
	return nil
}

// Port returns the actual bound port.  Zero until Setup succeeds.
func (r *Runner) Port() int { return r.port }

// Addr returns the bound "host:port" endpoint.
func (r *Runner) Addr() string {
	return util.FormatAddr(r.cfg.Host, r.port)
}

// Signal requests the poll loop to stop.  One-shot; repeated calls are
// no-ops.  It does not wait — callers join via Done.
func (r *Runner) Signal() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Done is closed once the poll loop has exited and every remaining
// worker has been cleaned up.
func (r *Runner) Done() <-chan struct{} { return r.done }

// Close closes the listening socket.  Must only be called after Done
// has fired; the poll loop owns the listener while it runs.
func (r *Runner) Close() error {
	if r.ln == nil {
		return nil
	}
	return r.ln.Close()
}

// Run executes the poll loop.  It is meant to run on its own goroutine
// and returns only after the stop signal has been observed and all
// remaining workers are cleaned up.
func (r *Runner) Run() {
	defer close(r.done)

	r.logger.Debug().Msg("poll loop started")
	for {
		r.acceptReady()
		r.reap()

		select {
		case <-r.stop:
			r.sweep()
			r.logger.Debug().Msg("poll loop stopped")
			return
		default:
		}
	}
}

// acceptReady accepts every connection that is currently pending.  The
// first Accept waits at most one poll interval — that bound paces the
// whole loop and caps shutdown latency to a single iteration.  After a
// successful accept the deadline drops to "now" so the remaining
// backlog is drained without waiting.
func (r *Runner) acceptReady() {
	deadline := time.Now().Add(r.cfg.PollInterval)
	for {
		r.ln.SetDeadline(deadline) //nolint:errcheck
		conn, err := r.ln.Accept()
		if err != nil {
			if errs.IsTimeout(err) || errs.Is(err, net.ErrClosed) {
				return
			}
			r.logger.Error().Err(err).Msg("accept failed")
			r.metrics.RecordError(errs.Wrap("accept", r.Addr(), err).Error())
			return
		}

		w := StartWorker(conn, r.cfg, r.logger, r.metrics)
		r.workers = append(r.workers, w)
		r.logger.Info().Str("peer", w.Peer()).Msg("client connected")

		deadline = time.Now()
	}
}

// reap removes every worker whose loop has exited, closing its socket
// exactly once.  The live set is rebuilt while iterating the old slice
// rather than removed from in place, so no element is skipped.
func (r *Runner) reap() {
	anyDead := false
	for _, w := range r.workers {
		if !w.Alive() {
			anyDead = true
			break
		}
	}
	if !anyDead {
		return
	}

	live := make([]*Worker, 0, len(r.workers))
	for _, w := range r.workers {
		if w.Alive() {
			live = append(live, w)
			continue
		}
		r.cleanup(w)
		r.metrics.WorkerReaped()
	}
	r.workers = live
}

// sweep stops and cleans up every remaining worker.  Runs once, after
// the stop signal has been observed.
func (r *Runner) sweep() {
	for _, w := range r.workers {
		r.cleanup(w)
	}
	r.workers = nil
}

// cleanup joins the worker, closes its socket, and logs the result.
// Unexpected loop errors surface here rather than inside the worker.
func (r *Runner) cleanup(w *Worker) {
	w.Stop()
	if err := w.Err(); err != nil {
		r.logger.Error().Err(err).Str("peer", w.Peer()).Msg("worker terminated abnormally")
		r.metrics.RecordError(err.Error())
	}
	r.logger.Info().Str("peer", w.Peer()).Msg("cleaned up client")
}

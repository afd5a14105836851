package core

import (
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gocast/config"
	errs "gocast/internal/errors"
	"gocast/internal/metrics"
)

// Worker services one accepted connection: it writes the configured
// payload on a fixed cadence until the client disconnects or the
// runner asks it to stop.
//
// The stop channel is the only cross-goroutine signal into the loop;
// it is closed exactly once.  The socket is never closed while the
// loop is still executing — Stop joins the loop first, then closes.
type Worker struct {
	conn     net.Conn
	peer     string
	id       string
	payload  []byte
	interval time.Duration
	logger   zerolog.Logger
	metrics  *metrics.Collector

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	// err records an unexpected write failure.  Valid only after the
	// loop has exited (Alive() == false or Stop() has returned).
	err error
}

// StartWorker launches the write loop for conn and returns its handle.
func StartWorker(conn net.Conn, cfg *config.Config, logger zerolog.Logger, m *metrics.Collector) *Worker {
	w := &Worker{
		conn:     conn,
		peer:     conn.RemoteAddr().String(),
		id:       uuid.NewString(),
		payload:  []byte(cfg.Payload),
		interval: cfg.WriteInterval,
		metrics:  m,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	w.logger = logger.With().
		Str("component", "worker").
		Str("peer", w.peer).
		Str("worker_id", w.id).
		Logger()

	m.WorkerStarted()
	go w.loop()
	return w
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() string { return w.id }

// Peer returns the remote address of the serviced connection.
func (w *Worker) Peer() string { return w.peer }

// Alive reports whether the write loop is still running.
func (w *Worker) Alive() bool {
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}

// Err returns the unexpected error that terminated the loop, if any.
// A peer disconnect is not an error.  Only meaningful once the worker
// is no longer alive.
func (w *Worker) Err() error { return w.err }

// Stop asks the loop to end, waits for it to exit, then closes the
// socket.  Safe to call on a worker whose loop has already exited;
// repeated calls are no-ops.
//
// There is no timeout on the join: a loop blocked in an uninterruptible
// write (e.g. the peer stopped reading and the socket buffer is full)
// will block Stop until the write returns.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		<-w.done
		w.conn.Close()
		w.metrics.WorkerStopped()
	})
}

func (w *Worker) loop() {
	defer close(w.done)

	w.logger.Info().Msg("beginning service for client")
	for {
		n, err := w.conn.Write(w.payload)
		if err != nil {
			if errs.IsDisconnect(err) {
				// Normal end of service; the runner reaps us.
				w.logger.Info().Msg("client disconnected")
				return
			}
			w.err = errs.Wrap("write", w.peer, err)
			return
		}
		w.metrics.BytesSent(int64(n))

		select {
		case <-w.stop:
			return
		case <-time.After(w.interval):
		}
	}
}

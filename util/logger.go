// Package util provides low-level helpers shared by all other packages.
package util

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog console logger whose level is derived from
// the given verbosity (0 = warnings and errors only, 1 = info, 2+ = debug).
// Components derive child loggers from it via With().Str("component", ...).
func NewLogger(verbosity int) zerolog.Logger {
	return NewLoggerTo(os.Stderr, verbosity)
}

// NewLoggerTo is NewLogger with an explicit output writer, for tests.
func NewLoggerTo(w io.Writer, verbosity int) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(cw).
		Level(LevelFor(verbosity)).
		With().
		Timestamp().
		Logger()
}

// LevelFor maps a -v count to a zerolog level.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// Package telemetry wires the structured logger shared by the loader,
// solver facade, and CLI. It wraps zerolog the way the rest of
// the corpus does: a single configured logger handed around as a small
// interface, rather than a global.
package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the narrow surface the rest of the module depends on, so
// packages like internal/loader don't need to know about zerolog's
// event-builder API.
type Logger interface {
	Info(msg string)
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type zlog struct {
	l zerolog.Logger
}

// New builds a console-pretty-printed logger writing to out, matching the
// corpus's usual development-mode setup. Callers that want JSON output (CI,
// production) use NewJSON instead.
func New(out io.Writer) Logger {
	w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	l := zerolog.New(w).With().Timestamp().Logger()
	return &zlog{l: l}
}

// NewJSON builds a structured JSON logger suitable for piping into a log
// aggregator.
func NewJSON(out io.Writer) Logger {
	return &zlog{l: zerolog.New(out).With().Timestamp().Logger()}
}

// Discard silences all log output; used by tests that don't want to assert
// on or print log lines.
func Discard() Logger {
	return &zlog{l: zerolog.New(io.Discard)}
}

func (z *zlog) Info(msg string) { z.l.Info().Msg(msg) }

func (z *zlog) Infof(format string, args ...interface{}) {
	z.l.Info().Msgf(format, args...)
}

func (z *zlog) Warnf(format string, args ...interface{}) {
	z.l.Warn().Msgf(format, args...)
}

func (z *zlog) Errorf(format string, args ...interface{}) {
	z.l.Error().Msgf(format, args...)
}

// Default is a ready-to-use console logger writing to stderr, the
// convenient zero-config choice for cmd/timetablectl.
func Default() Logger {
	return New(os.Stderr)
}

// Package logger is the structured logger shared by the gradix CLI, store
// and HTTP server. Entries go to stderr so stdout only ever carries
// rendered gradient code.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New. Level is a zerolog level name; empty means info.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Fields are attached to every entry of a derived logger.
type Fields map[string]any

// Logger is safe to use through a nil pointer, which drops every entry.
type Logger struct {
	zl zerolog.Logger
}

func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}
	if opts.HumanReadable {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	return &Logger{zl: zerolog.New(out).Level(level).With().Timestamp().Logger()}, nil
}

func parseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
}

// Nop drops everything; tests and callers without a configured logger use it.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) WithFields(fields Fields) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{zl: l.zl.With().Fields(map[string]any(fields)).Logger()}
}

func (l *Logger) Debug(msg string) { l.emit(zerolog.DebugLevel, nil, msg) }

func (l *Logger) Info(msg string) { l.emit(zerolog.InfoLevel, nil, msg) }

func (l *Logger) Warn(msg string) { l.emit(zerolog.WarnLevel, nil, msg) }

// Error logs msg with err attached under the "error" key when err is set.
func (l *Logger) Error(err error, msg string) { l.emit(zerolog.ErrorLevel, err, msg) }

// Request logs one served HTTP request. Client errors log as warnings and
// server errors as errors.
func (l *Logger) Request(method, path string, status int, latency time.Duration) {
	if l == nil {
		return
	}

	level := zerolog.InfoLevel
	switch {
	case status >= 500:
		level = zerolog.ErrorLevel
	case status >= 400:
		level = zerolog.WarnLevel
	}

	l.zl.WithLevel(level).
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("latency", latency).
		Msg("request served")
}

func (l *Logger) emit(level zerolog.Level, err error, msg string) {
	if l == nil {
		return
	}
	event := l.zl.WithLevel(level)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}

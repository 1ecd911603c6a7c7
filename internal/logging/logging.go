// Package logging builds the zerolog loggers used by the relay and the chat client.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w. Development mode uses the human-readable
// console writer; otherwise every entry is a JSON line.
func New(w io.Writer, development bool, level zerolog.Level) zerolog.Logger {
	if development {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewServer returns the relay logger: info level, or debug when verbose
func NewServer(w io.Writer, development, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return New(w, development, level)
}

// NewFile returns a JSON logger appending to path. The TUI owns the
// terminal, so it logs here instead. Callers close the returned file.
func NewFile(path string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(f, false, level), f, nil
}

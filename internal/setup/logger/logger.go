package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a JSON logger on stderr. Stdout stays free for the stdio MCP transport.
func New(level string) zerolog.Logger {
	return newWithWriter(os.Stderr, level)
}

// NewFromFormat picks the console writer unless format is "json".
func NewFromFormat(format string, level string) zerolog.Logger {
	if format == "json" {
		return New(level)
	}
	return newWithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, level)
}

func newWithWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Package logger builds the zerolog loggers used by the commands.
package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// TimeFormat is the timestamp layout of console output.
const TimeFormat = "2006-01-02 15:04:05"

// ParseLevel maps "debug", "info", "warn" and "error" to zerolog levels.
// Anything else is warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// New returns a console logger writing to w at the given level.
func New(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		return Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: TimeFormat}).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

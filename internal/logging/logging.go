// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs a text handler on w (stderr when nil) and makes it the slog
// default, so the stdlib log package routes through it as well. Debug mode
// lowers the level and adds file:line to every record.
func Init(w io.Writer, debug bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// DebugFromEnv reports whether FRETDASH_DEBUG is set to a truthy value.
func DebugFromEnv() bool {
	switch strings.ToLower(os.Getenv("FRETDASH_DEBUG")) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Package log configures the process-wide slog logger shared by the API
// server and its background consumers.
package log

import (
	"log/slog"
	"os"
)

// Setup installs a text handler on stderr as the default logger. The level
// name is parsed case-insensitively; anything unparseable runs at info.
func Setup(logLevel string) {
	var level slog.Level

	err := level.UnmarshalText([]byte(logLevel))
	if err != nil {
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	slog.SetDefault(slog.New(handler))
}

// WithModule tags the default logger with the subsystem name ("api",
// "composer", ...) so log lines can be traced back to their origin.
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}

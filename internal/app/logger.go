package app

import (
	"io"
	"log/slog"
)

// newLogger creates a slog.Logger writing to outW in the given format. It
// does not set the global logger, allowing for isolated logger instances.
// Unknown levels fall back to info; NewConfig has already rejected them for
// configured apps.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler).With("service", "codeapi")
}

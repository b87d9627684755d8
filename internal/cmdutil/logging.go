package cmdutil

import (
	"log/slog"
	"os"
)

// NewLogger builds the structured logger every binary uses for startup,
// cache-hit, watch-mode re-run and fatal-abort messages. Grounded on
// runtime/lexer.New's slog.NewTextHandler setup, trimmed to a plain
// level-from-flag handler with no attribute stripping.
func NewLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

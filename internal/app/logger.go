package app

import (
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/worklog-backend/internal/config"
)

// NewLogger builds a *slog.Logger from LogConfig and installs it as the
// process default.
//
// Everything goes to stderr: stdout belongs to the MCP protocol stream and
// must stay clean. Format "json" is for log collectors, "text" adds source
// locations for local debugging. Level accepts debug/info/warn/error
// case-insensitively and falls back to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Lonewolf123457499/CarWashApp/internal/config"
)

// New creates a preconfigured slog.Logger writing JSON to stdout at the
// configured level.
func New(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		level = ParseLevel(cfg.LogLevel)
	}
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter builds a JSON logger on top of w.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// ParseLevel maps a textual level to slog.Level. Unknown values yield info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

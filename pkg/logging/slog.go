package logging

import (
	"log/slog"
	"os"
)

// New builds the process-wide JSON logger. LOG_LEVEL accepts the usual slog
// level names; anything unparseable falls back to info.
func New() *slog.Logger {
	level := slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(v)); err == nil {
			level = parsed
		}
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(h)
}

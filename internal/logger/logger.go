package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// Init installs a JSON slog handler at the given level as the default logger.
func Init(level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, opts))
	slog.SetDefault(logger)
	return logger
}

// From returns the default logger tagged with the request id, if any.
func From(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if id := middleware.GetReqID(ctx); id != "" {
		logger = logger.With(slog.String("request_id", id))
	}
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

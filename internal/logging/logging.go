// Package logging wraps zerolog with the context-key and ConsoleWriter
// conventions used across the project's commands and ingest pipeline.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// contextKey is the type for context keys used by the logger.
type contextKey string

const loggerKey contextKey = "logging.logger"

// New creates a structured console logger at the given level. An empty or
// unrecognized level falls back to info.
func New(level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return newWith(output, level)
}

// NewWithWriter creates a structured logger writing JSON lines to w, for
// callers that want to capture or redirect logs (tests, ingest reports).
func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	return newWith(w, level)
}

func newWith(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger stashed in ctx, or a default info-level
// logger if none was attached.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return New("info")
}

// WithRun returns a child logger tagged with an ingest run's identifying
// fields, so every line it emits can be correlated back to one invocation.
func WithRun(logger zerolog.Logger, runID string, fileCount int) zerolog.Logger {
	return logger.With().Str("run_id", runID).Int("files", fileCount).Logger()
}

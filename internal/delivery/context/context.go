// Package context carries the sign-in attempt and a scoped logger through echo handlers and usecases.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyAttemptID names the sign-in attempt a redirect request answers.
	KeyAttemptID ContextKey = "attempt_id"

	// KeyLogger holds the scoped logger.
	KeyLogger ContextKey = "logger"

	// HeaderAttemptID echoes the attempt id back to the browser.
	HeaderAttemptID = "X-Dashcam-Attempt"
)

// AttemptID returns the attempt id stored on c, or "".
func AttemptID(c echo.Context) string {
	id, _ := c.Get(string(KeyAttemptID)).(string)

	return id
}

// SetAttemptID stores the attempt id on c.
func SetAttemptID(c echo.Context, attemptID string) {
	c.Set(string(KeyAttemptID), attemptID)
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// GetLoggerOrDefault extracts the scoped logger, falling back when none was set.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

package middleware

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "dashcam/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware records the outcome of each redirect.
// The query string carries the authorization code and is never logged; only its shape is.
type LoggerMiddleware struct {
	logger *slog.Logger
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			// let echo write the error response so the logged status is the real one
			c.Error(err)
		}
		m.logRedirect(c, time.Since(start), err)

		return nil
	}
}

func (m *LoggerMiddleware) logRedirect(c echo.Context, latency time.Duration, err error) {
	query := c.Request().URL.Query()
	status := c.Response().Status

	fields := []slog.Attr{
		slog.String("path", c.Request().URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", latency),
		slog.Bool("has_code", query.Has("code")),
		slog.Bool("has_state", query.Has("state")),
	}
	if attemptID := deliverycontext.AttemptID(c); attemptID != "" {
		fields = append(fields, slog.String("attempt_id", attemptID))
	}
	// provider error codes such as access_denied are safe to keep
	if providerErr := query.Get("error"); providerErr != "" {
		fields = append(fields, slog.String("provider_error", providerErr))
	}
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	level := slog.LevelDebug
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	m.logger.LogAttrs(context.Background(), level, "OAuth redirect", fields...)
}

package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "dashcam/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// AttemptMiddleware tags each redirect request with the sign-in attempt being waited for
type AttemptMiddleware struct {
	logger  *slog.Logger
	current func() string
}

// NewAttemptMiddleware creates the middleware. current returns "" when nobody is waiting.
func NewAttemptMiddleware(logger *slog.Logger, current func() string) *AttemptMiddleware {
	return &AttemptMiddleware{
		logger:  logger,
		current: current,
	}
}

// Process rejects redirects that arrive outside an attempt
func (m *AttemptMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		attemptID := m.current()
		if attemptID == "" {
			return echo.NewHTTPError(http.StatusGone, "no sign-in in progress")
		}

		deliverycontext.SetAttemptID(c, attemptID)
		c.Response().Header().Set(deliverycontext.HeaderAttemptID, attemptID)

		ctx := deliverycontext.WithLogger(c.Request().Context(), m.logger.With(slog.String("attempt_id", attemptID)))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

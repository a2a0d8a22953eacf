package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
)

// LoopbackOnlyMiddleware refuses peers other than this machine
type LoopbackOnlyMiddleware struct {
	logger *slog.Logger
}

// NewLoopbackOnlyMiddleware creates the middleware
func NewLoopbackOnlyMiddleware(logger *slog.Logger) *LoopbackOnlyMiddleware {
	return &LoopbackOnlyMiddleware{logger: logger}
}

// Process checks the TCP peer, not forwarded headers
func (m *LoopbackOnlyMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !isLoopback(c.Request().RemoteAddr) {
			m.logger.Warn("Rejected redirect from non-loopback peer", slog.String("remote_addr", c.Request().RemoteAddr))

			return echo.NewHTTPError(http.StatusForbidden, "redirects are only accepted from this machine")
		}

		return next(c)
	}
}

func isLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)

	return ip != nil && ip.IsLoopback()
}

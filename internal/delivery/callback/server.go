// Package callback receives OAuth redirects addressed to this client.
package callback

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"dashcam/config"
	deliverycontext "dashcam/internal/delivery/context"
	"dashcam/internal/delivery/middleware"
	"dashcam/internal/delivery/validator"
	"dashcam/internal/domain/service"
	"dashcam/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

const (
	loopbackHost    = "127.0.0.1"
	shutdownTimeout = 5 * time.Second
)

// ErrRedirectTimeout is returned when no redirect arrives within the configured wait
var ErrRedirectTimeout = errors.New("timed out waiting for the oauth redirect")

const donePage = `<!doctype html><html><body><p>Sign-in received. You can close this window and return to the terminal.</p></body></html>`

const deniedPage = `<!doctype html><html><body><p>Sign-in was cancelled. You can close this window.</p></body></html>`

type redirectQuery struct {
	Code  string `query:"code" validate:"required_without=Error"`
	State string `query:"state"`
	Error string `query:"error" validate:"required_without=Code"`
}

// Params holds dependencies for Server, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Server is a loopback echo server that captures one redirect per Await call.
// It only listens while someone is waiting.
type Server struct {
	cfg       config.CallbackConfig
	logger    *slog.Logger
	echo      *echo.Echo
	redirects chan *url.URL

	mu         sync.Mutex
	listener   net.Listener
	httpServer *http.Server
	attemptID  string
}

var _ service.RedirectReceiver = (*Server)(nil)

// NewServer creates the receiver and registers its shutdown with the Fx lifecycle
func NewServer(params Params) *Server {
	server := New(params.Config.Callback, params.Logger)

	params.Append(fx.Hook{
		OnStop: server.shutdown,
	})

	return server
}

// New creates a receiver for cfg
func New(cfg config.CallbackConfig, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		echo:      e,
		redirects: make(chan *url.URL, 1),
	}

	e.Use(echomiddleware.Recover())
	e.Use(middleware.NewLoopbackOnlyMiddleware(logger).Process)
	e.Use(middleware.NewAttemptMiddleware(logger, s.currentAttempt).Process)
	e.Use(middleware.NewLoggerMiddleware(logger).Handle)
	e.GET(cfg.Path, s.handleRedirect)

	return s
}

// RedirectURL is the loopback address the provider must send the browser to
func (s *Server) RedirectURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	hostPort := net.JoinHostPort(loopbackHost, strconv.Itoa(s.cfg.Port))
	if s.listener != nil {
		hostPort = s.listener.Addr().String()
	}

	return (&url.URL{Scheme: "http", Host: hostPort, Path: s.cfg.Path}).String()
}

// Listen binds the loopback port. Await calls it on demand; calling it earlier pins the address.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}

	listener, err := net.Listen("tcp", net.JoinHostPort(loopbackHost, strconv.Itoa(s.cfg.Port)))
	if err != nil {
		return errors.Wrap(err, "listen for oauth redirect")
	}
	s.listener = listener
	s.attemptID = uuid.NewString()

	// a redirect left over from an abandoned wait must not satisfy this one
	select {
	case <-s.redirects:
	default:
	}

	httpServer := &http.Server{Handler: s.echo, ReadHeaderTimeout: 10 * time.Second}
	s.httpServer = httpServer
	s.logger.Info("Waiting for OAuth redirect",
		slog.String("address", listener.Addr().String()),
		slog.String("attempt_id", s.attemptID),
	)

	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Redirect receiver stopped", slog.Any("error", err))
		}
	}()

	return nil
}

// Await blocks until one redirect arrives, the configured timeout passes, or ctx ends.
// The listener is closed before returning.
func (s *Server) Await(ctx context.Context) (*url.URL, error) {
	if err := s.Listen(); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.shutdown(context.Background()); err != nil {
			s.logger.Warn("Closing redirect receiver failed", slog.Any("error", err))
		}
	}()

	var timeout <-chan time.Time
	if s.cfg.Timeout > 0 {
		timer := time.NewTimer(s.cfg.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case redirect := <-s.redirects:
		return redirect, nil
	case <-timeout:
		return nil, errors.WithStack(ErrRedirectTimeout)
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "waiting for oauth redirect")
	}
}

func (s *Server) handleRedirect(c echo.Context) error {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), s.logger)

	var query redirectQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed redirect")
	}
	if err := c.Validate(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "redirect carries neither code nor error")
	}

	req := c.Request()
	redirect := &url.URL{
		Scheme:   "http",
		Host:     req.Host,
		Path:     req.URL.Path,
		RawQuery: req.URL.RawQuery,
	}

	select {
	case s.redirects <- redirect:
	default:
		logger.Warn("Dropping extra OAuth redirect")
	}

	if query.Error != "" {
		return c.HTML(http.StatusOK, deniedPage)
	}

	return c.HTML(http.StatusOK, donePage)
}

func (s *Server) currentAttempt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attemptID
}

func (s *Server) shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.listener = nil
	s.httpServer = nil
	s.attemptID = ""
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	return errors.WithStack(httpServer.Shutdown(shutdownCtx))
}

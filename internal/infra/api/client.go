// Package api talks to the analysis backend over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dashcam/config"
	domainerrors "dashcam/internal/domain/errors"
	"dashcam/internal/domain/repository"
	"dashcam/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	// HeaderXRequestID correlates client logs with backend logs
	HeaderXRequestID = "X-Request-Id"

	maxResponseBody = 8 << 20
	maxDetailLength = 512
)

// SessionTokenSource yields the persisted session token, or repository.ErrPreferenceNotFound
type SessionTokenSource interface {
	SessionToken(ctx context.Context) (string, error)
}

// ClientParams holds dependencies for Client, injected by Fx
type ClientParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Tokens     repository.PreferenceRepository
	HTTPClient *http.Client `optional:"true"`
}

// Client is the authenticated request wrapper around a fixed base URL.
// It never retries and never reacts to 401 on its own.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     SessionTokenSource
	logger     *slog.Logger
}

// NewClient creates a Client from configuration
func NewClient(params ClientParams) (*Client, error) {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: params.Config.API.Timeout}
	}

	return NewClientWithBaseURL(params.Config.API.BaseURL, httpClient, params.Tokens, params.Logger)
}

// NewClientWithBaseURL creates a Client for baseURL
func NewClientWithBaseURL(baseURL string, httpClient *http.Client, tokens SessionTokenSource, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "parse base url %s", baseURL)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", baseURL)
	}

	return &Client{
		baseURL:    parsed,
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
	}, nil
}

// Get issues a GET and decodes the JSON response into out when out is non-nil
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with in encoded as JSON
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, in, out)
}

// Put issues a PUT with in encoded as JSON
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, in, out)
}

// Delete issues a DELETE
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends one request. The session token is attached when one is stored; otherwise the
// request goes out unauthenticated.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "encode %s body", op)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), body)
	if err != nil {
		return errors.Wrapf(err, "build %s", op)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderXRequestID, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	authenticated := c.attachToken(ctx, req)

	c.logger.Debug("API request",
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
		slog.Bool("authenticated", authenticated),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("API request failed",
			slog.String("request_id", requestID),
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("latency", time.Since(start)),
			slog.Any("error", err),
		)

		return domainerrors.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return domainerrors.NewTransportError(op, err)
	}

	c.logResponse(requestID, method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		code, detail := describeErrorBody(payload)

		return domainerrors.NewHTTPStatusError(op, resp.StatusCode, code, detail)
	}

	if out == nil {
		return nil
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		return domainerrors.NewInvalidResponseError(op, errors.New("empty response body"))
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return domainerrors.NewInvalidResponseError(op, err)
	}

	return nil
}

func (c *Client) attachToken(ctx context.Context, req *http.Request) bool {
	token, err := c.tokens.SessionToken(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrPreferenceNotFound) {
			c.logger.Warn("Reading session token failed, sending unauthenticated", slog.Any("error", err))
		}

		return false
	}
	if token == "" {
		return false
	}

	req.Header.Set("Authorization", "Bearer "+token)

	return true
}

func (c *Client) resolve(path string, query url.Values) string {
	// path arrives already escaped, so it is joined on the escaped form
	u := *c.baseURL
	rawPath := strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/" + strings.TrimLeft(path, "/")
	if unescaped, err := url.PathUnescape(rawPath); err == nil {
		u.Path = unescaped
		u.RawPath = rawPath
	} else {
		u.Path = rawPath
		u.RawPath = ""
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

func (c *Client) logResponse(requestID, method, path string, status int, latency time.Duration) {
	level := slog.LevelDebug
	if status >= 400 {
		level = slog.LevelWarn
	}
	if status >= 500 {
		level = slog.LevelError
	}

	c.logger.LogAttrs(context.Background(), level, "API response",
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("latency", latency),
	)
}

// describeErrorBody pulls code and message from a JSON error envelope, falling back to a text excerpt
func describeErrorBody(payload []byte) (code, detail string) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return "", ""
	}

	var envelope domainerrors.ErrorResponse
	if err := json.Unmarshal(trimmed, &envelope); err == nil {
		if code, msg := envelope.Info(); code != "" || msg != "" {
			return code, msg
		}
	}

	return "", excerpt(string(trimmed))
}

func excerpt(s string) string {
	if len(s) <= maxDetailLength {
		return s
	}

	return s[:maxDetailLength] + "..."
}

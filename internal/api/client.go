// Package api is the HTTP client for the teampulse REST backend.
//
// A single Client holds the base URL and the cookie jar that carries the
// access and refresh cookies. Its methods are grouped under Auth and Tenant.
// Methods do not interpret failures: non-2xx responses come back as *HTTPError
// and transport failures as wrapped errors. There is no retry and no
// automatic refresh on 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"teampulse/internal/platform/tracer"
)

const defaultTimeout = 10 * time.Second

// Response is a decoded 2xx response.
type Response[T any] struct {
	Data    T
	Status  int
	Message string
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	jar        http.CookieJar
	timeout    time.Duration
	logger     *slog.Logger
	tracer     tracer.Tracer

	Auth   *AuthAPI
	Tenant *TenantAPI
}

type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Its Jar is kept when set.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithCookieJar sets the jar used for credential cookies.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		timeout: defaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.jar = jar
	}

	var hc http.Client
	if c.httpClient != nil {
		hc = *c.httpClient
	} else {
		hc.Timeout = c.timeout
	}
	if hc.Jar == nil {
		hc.Jar = c.jar
	}
	c.httpClient = &hc

	c.Auth = &AuthAPI{client: c}
	c.Tenant = &TenantAPI{client: c}
	return c, nil
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Jar returns the cookie jar carrying the session cookies.
func (c *Client) Jar() http.CookieJar {
	return c.jar
}

type messageEnvelope struct {
	Message string `json:"message"`
}

// do sends one request and decodes a 2xx body into T.
func do[T any](ctx context.Context, c *Client, spanName, method, path string, body any) (*Response[T], error) {
	ctx, span := c.tracer.Start(ctx, spanName,
		tracer.String(tracer.AttrHTTPMethod, method),
		tracer.String(tracer.AttrHTTPPath, path),
	)
	resp, err := c.send(ctx, method, path, body)
	if resp != nil {
		span.SetAttributes(tracer.Int(tracer.AttrHTTPStatus, resp.status))
	}
	if err != nil {
		span.End(err)
		return nil, err
	}

	out := &Response[T]{Status: resp.status}
	if _, empty := any(out.Data).(struct{}); !empty && len(bytes.TrimSpace(resp.body)) > 0 {
		if err := json.Unmarshal(resp.body, &out.Data); err != nil {
			err = fmt.Errorf("decode %s %s response: %w", method, path, err)
			span.End(err)
			return nil, err
		}
	}
	var envelope messageEnvelope
	if json.Unmarshal(resp.body, &envelope) == nil {
		out.Message = envelope.Message
	}
	span.End(nil)
	return out, nil
}

type rawResponse struct {
	status int
	body   []byte
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*rawResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "api request failed",
			"method", method,
			"path", path,
			"error", err,
		)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &rawResponse{status: resp.StatusCode}, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	raw := &rawResponse{status: resp.StatusCode, body: data}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return raw, &HTTPError{
			Status:  resp.StatusCode,
			Message: extractMessage(data),
			Body:    data,
		}
	}
	return raw, nil
}

// StatusOf returns the HTTP status carried by err, or 0 for non-HTTP failures.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

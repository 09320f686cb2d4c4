// Package backend is the HTTP client for the OURHOUR REST API.
//
// A Client built with New is public: it never attaches credentials, which is
// what token verification needs since the token is the credential. Use
// Authenticated to derive a client that carries a bearer token and refreshes
// it once on 401.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/platform/inflight"
	"github.com/ourhour/ourhour-web/internal/platform/timeouts"
)

const maxResponseBytes = 1 << 20

// Response is a decoded 2xx envelope.
type Response struct {
	Status  int
	Message string
	Data    json.RawMessage
}

// DecodeData unmarshals the data field into out. Empty data leaves out untouched.
func (r Response) DecodeData(out any) error {
	if len(bytes.TrimSpace(r.Data)) == 0 || bytes.Equal(bytes.TrimSpace(r.Data), []byte("null")) {
		return nil
	}
	return json.Unmarshal(r.Data, out)
}

type envelope struct {
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTracker counts every call on tracker.
func WithTracker(tracker *inflight.Tracker) Option {
	return func(c *Client) {
		if tracker != nil {
			c.tracker = tracker
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client calls the backend REST API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tracker *inflight.Tracker
	logger  *zap.Logger
}

// New builds a public client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("backend url %q has no host", baseURL)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")

	c := &Client{
		baseURL: parsed,
		http: &http.Client{
			Timeout:   timeouts.APIRequest,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tracker: &inflight.Tracker{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Tracker returns the in-flight tracker shared by this client.
func (c *Client) Tracker() *inflight.Tracker { return c.tracker }

// Authenticated returns a client that sends the bearer token from tokens and
// retries once after a refresh when the backend answers 401.
func (c *Client) Authenticated(tokens TokenSource) *Client {
	clone := *c
	hc := *c.http
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc.Transport = &bearerTransport{base: base, tokens: tokens, logger: c.logger}
	clone.http = &hc
	return &clone
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	} else {
		u.RawQuery = ""
	}
	return u.String()
}

// do sends one request while holding an in-flight reference. Non-2xx
// responses become *APIError; transport failures are returned wrapped.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (Response, error) {
	var out Response
	err := c.tracker.Track(func() error {
		resp, err := c.send(ctx, method, path, query, body)
		out = resp
		return err
	})
	return out, err
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return Response{}, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return Response{}, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("backend call failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return Response{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return Response{}, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}

	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, &APIError{Status: resp.StatusCode, Message: env.Message, Code: env.Code}
	}
	return Response{Status: resp.StatusCode, Message: env.Message, Data: env.Data}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/internal/infra/buildinfo"
	"github.com/bdu-steam/steam-cli/internal/telemetry/logger"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// RequestOptions describes a call besides its path.
type RequestOptions = domain.RequestOptions

// Observer is notified after every request. Status is zero when the
// request never got a response.
type Observer interface {
	ObserveRequest(method, path string, status int, elapsed time.Duration)
}

// HTTPClient talks JSON to the STEAM backend.
type HTTPClient struct {
	baseURL   string
	prefix    string
	client    *http.Client
	tokens    *TokenCache
	userAgent string
	observer  Observer
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithPrefix sets the path prefix placed between the base URL and each
// request path (e.g. "/app").
func WithPrefix(prefix string) Option {
	return func(c *HTTPClient) {
		c.prefix = normalizePrefix(prefix)
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithObserver registers a request observer.
func WithObserver(o Observer) Option {
	return func(c *HTTPClient) {
		c.observer = o
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewHTTPClient creates a client for server. A nil token cache means no
// request is ever authenticated.
func NewHTTPClient(server string, tokens *TokenCache, opts ...Option) *HTTPClient {
	baseURL := strings.TrimRight(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	if tokens == nil {
		tokens = NewTokenCache()
	}

	c := &HTTPClient{
		baseURL:   baseURL,
		tokens:    tokens,
		userAgent: "steam-cli/" + buildinfo.Version,
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs a request and returns the raw JSON body of a 2xx response.
func (c *HTTPClient) Do(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.MethodOrDefault()
	target := c.URL(path, opts)

	var bodyReader io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := ulid.Make().String()
	hasToken := c.addHeaders(req, requestID)
	log := logger.L(logger.WithRequestID(ctx, requestID))

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(method, path, 0, elapsed)
		log.Debug("api request failed", "method", method, "path", path, "has_token", hasToken, "error", err)
		return nil, domain.ErrNetwork.WithCause(err)
	}
	defer resp.Body.Close()

	c.observe(method, path, resp.StatusCode, elapsed)
	log.Debug("api request", "method", method, "path", path, "status", resp.StatusCode,
		"duration", elapsed, "has_token", hasToken)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &domain.HTTPError{StatusCode: resp.StatusCode, Method: method, Path: c.prefix + path}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrNetwork.WithCause(fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if err := json.Unmarshal(data, new(json.RawMessage)); err != nil {
		return nil, domain.ErrParse.WithDetails(method + " " + c.prefix + path).WithCause(err)
	}

	return json.RawMessage(data), nil
}

// Request performs a request and decodes a successful body into target.
// A nil target discards the body.
func (c *HTTPClient) Request(ctx context.Context, path string, opts RequestOptions, target any) error {
	raw, err := c.Do(ctx, path, opts)
	if err != nil {
		return err
	}
	if target == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return domain.ErrParse.WithCause(err)
	}
	return nil
}

// Get performs a GET request with the given query.
func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values, target any) error {
	return c.Request(ctx, path, RequestOptions{Method: http.MethodGet, Query: query}, target)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body, target any) error {
	return c.Request(ctx, path, RequestOptions{Method: http.MethodPost, Body: body}, target)
}

// URL builds the absolute URL for path. Empty query values are dropped and
// the remaining keys are percent-encoded in sorted order.
func (c *HTTPClient) URL(path string, opts RequestOptions) string {
	u := c.baseURL + c.prefix + path
	if q := domain.CleanQuery(opts.Query); len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// addHeaders sets the common headers and reports whether the request
// carries a bearer token.
func (c *HTTPClient) addHeaders(req *http.Request, requestID string) bool {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	token, ok := c.tokens.Get()
	if !ok || token == "" {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return true
}

func (c *HTTPClient) observe(method, path string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, path, status, elapsed)
	}
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Prefix returns the API path prefix.
func (c *HTTPClient) Prefix() string {
	return c.prefix
}

// Tokens returns the token cache the client reads from.
func (c *HTTPClient) Tokens() *TokenCache {
	return c.tokens
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

// Package transport executes single JSON requests against the PROADMIN
// backend. It owns the session cookie jar and is the only place where HTTP
// failures are classified into domain errors.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/net/publicsuffix"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/metrics"
)

const defaultTimeout = 15 * time.Second

var emptyObject = []byte("{}")

var allowedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client. Its Jar is replaced when nil.
	HTTPClient *http.Client
}

// Client performs at-most-once JSON requests carrying the session cookie.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger

	mu        sync.RWMutex
	onExpired func(epoch uint64)
	epoch     func() uint64
}

type quietKey struct{}

// WithoutExpiryHook marks ctx so that a 401 on the request is returned as
// SessionExpired without firing the expiry hook. Sign-in and the session
// probe use it: their 401 answers the question asked, nothing expired.
func WithoutExpiryHook(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey{}, true)
}

func expiryHookSuppressed(ctx context.Context) bool {
	quiet, _ := ctx.Value(quietKey{}).(bool)
	return quiet
}

// New creates a Client with a fresh cookie jar.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("transport: base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("transport: cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}, nil
}

// OnSessionExpired registers fn to be called every time a response is
// classified as SessionExpired. fn receives the session epoch that was
// current when the request was sent (see TrackSession). Passing nil removes
// the hook.
func (c *Client) OnSessionExpired(fn func(epoch uint64)) {
	c.mu.Lock()
	c.onExpired = fn
	c.mu.Unlock()
}

// TrackSession registers the source of the session epoch read when each
// request is sent. Without one every request carries epoch 0.
func (c *Client) TrackSession(epoch func() uint64) {
	c.mu.Lock()
	c.epoch = epoch
	c.mu.Unlock()
}

// Do sends one request. A nil body sends no body at all. The returned bytes
// are the response JSON, or "{}" when the body was empty. Every error is a
// *domain.Error. Do never retries.
func (c *Client) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	route := metrics.Route(path)
	c.log.Debug().Str("method", method).Str("path", path).Msg("api request")

	if _, ok := allowedMethods[method]; !ok {
		return nil, domain.NewValidationError("unsupported request method " + method)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &domain.Error{Kind: domain.KindValidation, Message: "request body could not be encoded", Cause: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &domain.Error{Kind: domain.KindValidation, Message: "invalid request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	epoch := c.sessionEpoch()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, route, "network_error", start)
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("api request failed: no response")
		return nil, domain.NewNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(method, route, "network_error", start)
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("api request failed: body read")
		return nil, domain.NewNetworkError(err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.observe(method, route, "session_expired", start)
		c.log.Warn().Str("method", method).Str("path", path).Msg("api request failed: session expired")
		if !expiryHookSuppressed(ctx) {
			c.fireExpired(epoch)
		}
		return nil, domain.NewSessionExpired()

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.observe(method, route, "server_error", start)
		c.log.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("api request failed: server error")
		return nil, domain.NewServerError(resp.StatusCode, serverMessage(raw))
	}

	c.observe(method, route, "ok", start)

	text := bytes.TrimSpace(raw)
	if len(text) == 0 {
		return emptyObject, nil
	}
	if !gjson.ValidBytes(text) {
		c.log.Warn().Str("method", method).Str("path", path).Msg("api response is not json, treating as empty")
		return emptyObject, nil
	}
	return text, nil
}

func (c *Client) sessionEpoch() uint64 {
	c.mu.RLock()
	fn := c.epoch
	c.mu.RUnlock()
	if fn == nil {
		return 0
	}
	return fn()
}

func (c *Client) fireExpired(epoch uint64) {
	c.mu.RLock()
	fn := c.onExpired
	c.mu.RUnlock()
	if fn != nil {
		fn(epoch)
	}
}

func (c *Client) observe(method, route, outcome string, start time.Time) {
	metrics.ClientRequestsTotal.WithLabelValues(method, route, outcome).Inc()
	metrics.ClientRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// serverMessage pulls the human-readable message out of an error body.
func serverMessage(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if r := gjson.GetBytes(raw, key); r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return ""
}


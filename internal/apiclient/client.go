package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"skincare-storefront/internal/telemetry"
)

const maxResponseBytes = 32 << 20

// Client talks to the catalog REST API. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	maxBody int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The client is copied,
// so later options never modify the caller's value.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		copied := *hc
		c.http = &copied
	}
}

// WithTimeout bounds every call; a timed-out call fails with a TransportError.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		copied := *c.http
		copied.Timeout = d
		c.http = &copied
	}
}

// WithLogger sets the logger used for per-call debug lines.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: base url %q must be http or https", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  zap.NewNop(),
		maxBody: maxResponseBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do sends one request and decodes a 2xx JSON body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	op := method + " " + path
	ctx, span := telemetry.StartSpan(ctx, "apiclient "+op)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("apiclient: build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("remote call failed", zap.String("op", op), zap.Error(err))
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(data)) > c.maxBody {
		span.SetStatus(codes.Error, ErrResponseTooLarge.Error())
		c.logger.Warn("remote response too large", zap.String("op", op), zap.Int64("limit_bytes", c.maxBody))
		return &ServerError{Op: op, StatusCode: resp.StatusCode, Err: ErrResponseTooLarge}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("remote call",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	switch {
	case resp.StatusCode >= 500:
		span.SetStatus(codes.Error, resp.Status)
		return &ServerError{Op: op, StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		span.SetStatus(codes.Error, resp.Status)
		return &ValidationError{Op: op, StatusCode: resp.StatusCode, Message: extractMessage(resp.StatusCode, data)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &ServerError{Op: op, StatusCode: resp.StatusCode, Err: errors.New("unexpected status")}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ServerError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	if in == nil {
		return c.do(ctx, method, path, nil, "", out)
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("apiclient: encode %s %s request: %w", method, path, err)
	}
	return c.do(ctx, method, path, bytes.NewReader(payload), "application/json", out)
}

// extractMessage pulls the human readable message out of an error body.
// The server answers either a JSON object carrying message/error/title,
// a bare JSON string, or plain text.
func extractMessage(status int, data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return http.StatusText(status)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		for _, key := range []string{"message", "error", "title"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
		return string(trimmed)
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil && s != "" {
		return s
	}
	return string(trimmed)
}

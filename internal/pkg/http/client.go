package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/piresc/angkut/internal/pkg/circuitbreaker"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/requestcontext"
	"github.com/piresc/angkut/internal/pkg/retry"
)

const (
	// DefaultTimeout for HTTP requests
	DefaultTimeout = 10 * time.Second
	// APIKeyHeader is the header name for API key
	APIKeyHeader = "X-API-Key"
)

// Config configures an outbound JSON client
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	APIKey      string
	ServiceName string
	Retry       *retry.Config
	Breaker     *circuitbreaker.Config
}

// Client is a JSON HTTP client for talking to external services
type Client struct {
	baseURL     string
	httpClient  *nethttp.Client
	apiKey      string
	serviceName string
	retrier     *retry.Retrier
	breaker     *circuitbreaker.CircuitBreaker
}

// StatusError is returned when the remote side answers with a 4xx or 5xx
type StatusError struct {
	StatusCode int
	Body       string
	// Wait is the Retry-After the remote side sent, zero when absent
	Wait time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Body)
}

// RetryAfter lets the retrier honour the remote side's Retry-After
func (e *StatusError) RetryAfter() time.Duration {
	return e.Wait
}

// NewClient creates a new HTTP client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &nethttp.Client{Timeout: cfg.Timeout},
		apiKey:      cfg.APIKey,
		serviceName: cfg.ServiceName,
	}
	if cfg.Retry != nil {
		rc := *cfg.Retry
		rc.RetryableFunc = IsRetryable
		c.retrier = retry.New(rc, nil)
	}
	if cfg.Breaker != nil {
		bc := *cfg.Breaker
		if bc.Name == "" {
			bc.Name = cfg.ServiceName
		}
		bc.IsFailure = IsRetryable
		c.breaker = circuitbreaker.New(bc, nil)
	}
	return c
}

// IsRetryable reports whether a request failure is worth another attempt:
// transport errors, 429 and 5xx are, other statuses are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == nethttp.StatusTooManyRequests || se.StatusCode >= 500
	}
	return !errors.Is(err, context.Canceled)
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, endpoint string) (*nethttp.Response, error) {
	return c.doRequest(ctx, nethttp.MethodGet, endpoint, nil)
}

// Post performs a POST request with a JSON body
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}) (*nethttp.Response, error) {
	return c.doRequest(ctx, nethttp.MethodPost, endpoint, body)
}

// GetJSON performs a GET request and decodes the JSON response into result
func (c *Client) GetJSON(ctx context.Context, endpoint string, result interface{}) error {
	return c.withRetry(ctx, func(ctx context.Context) error {
		resp, err := c.Get(ctx, endpoint)
		if err != nil {
			return err
		}
		return decode(resp, result)
	})
}

// PostJSON performs a POST request and decodes the JSON response into result
func (c *Client) PostJSON(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	return c.withRetry(ctx, func(ctx context.Context) error {
		resp, err := c.Post(ctx, endpoint, body)
		if err != nil {
			return err
		}
		return decode(resp, result)
	})
}

// withRetry runs fn under the retrier, and the whole retried call under the
// breaker so an open circuit fails fast without spending retries.
func (c *Client) withRetry(ctx context.Context, fn retry.RetryableFunc) error {
	call := fn
	if c.retrier != nil {
		call = func(ctx context.Context) error {
			return c.retrier.Execute(ctx, fn)
		}
	}
	if c.breaker == nil {
		return call(ctx)
	}
	return c.breaker.Execute(ctx, call)
}

func decode(resp *nethttp.Response, result interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		se := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			se.Wait = time.Duration(secs) * time.Second
		}
		return se
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return retry.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}) (*nethttp.Response, error) {
	url := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, retry.Permanent(fmt.Errorf("failed to marshal request body: %w", err))
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	if requestID := requestcontext.GetRequestID(ctx); requestID != "" {
		req.Header.Set(requestcontext.HeaderRequestID, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WarnCtx(ctx, "HTTP request failed",
			logger.String("method", method),
			logger.String("url", url),
			logger.String("service", c.serviceName),
			logger.Err(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}

	logger.DebugCtx(ctx, "HTTP request completed",
		logger.String("method", method),
		logger.String("url", url),
		logger.String("service", c.serviceName),
		logger.Int("status_code", resp.StatusCode))

	return resp, nil
}

package oci

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/oracle/oci-go-sdk/v65/common"
	"go.uber.org/zap"

	"github.com/hegde-atri/oci-burrow/internal/types"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response from an OCI endpoint
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// Client issues signed requests to the OCI REST APIs
type Client struct {
	httpClient common.HTTPRequestDispatcher
	baseURL    func(service, region string) string
	log        *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default 30s-timeout HTTP client
func WithHTTPClient(hc common.HTTPRequestDispatcher) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides endpoint resolution, e.g. to point at a test server
func WithBaseURL(fn func(service, region string) string) Option {
	return func(c *Client) { c.baseURL = fn }
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a Client with production endpoints
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL: func(service, region string) string {
			return "https://" + Endpoint(service, region)
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a signed GET and returns the response body.
// Non-2xx responses are returned as *APIError.
func (c *Client) Get(ctx context.Context, p types.Profile, service, path string, query url.Values) ([]byte, error) {
	signer, err := NewSigner(p)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, signer, p, service, path, query)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, signer *Signer, p types.Profile, service, path string, query url.Values) (*http.Response, error) {
	target := c.baseURL(service, p.Region) + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	if err := signer.Sign(req); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("oci request failed", zap.String("service", service), zap.String("path", path), zap.Error(err))
		return nil, err
	}
	c.log.Debug("oci request",
		zap.String("service", service),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

func getJSON[T any](ctx context.Context, c *Client, p types.Profile, service, path string, query url.Values) (T, error) {
	var out T
	body, err := c.Get(ctx, p, service, path, query)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("failed to parse response: %w", err)
	}
	return out, nil
}

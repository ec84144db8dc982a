// Package civitai implements the remote data source for the CivitAI
// public REST API: a rate-limited HTTP client with retry/backoff, lenient
// wire DTOs and the DTO-to-domain mapper.
package civitai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public API base.
	DefaultBaseURL = "https://civitai.com/api/v1"

	// DefaultRateLimit is requests per minute.
	DefaultRateLimit = 60

	connectTimeout = 15 * time.Second
	requestTimeout = 30 * time.Second

	// maxRetries is the number of additional attempts after the first.
	maxRetries       = 2
	retryBaseBackoff = 1000 * time.Millisecond
)

// APIError is a non-2xx response from the API. 4xx responses are never
// retried.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("civitai: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the error is worth another attempt.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500
}

// Client is a CivitAI API client with rate limiting and retries.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithHTTPClient overrides the HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit overrides the requests-per-minute budget.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		if perMinute > 0 {
			c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
		}
	}
}

// NewClient creates a CivitAI client. An empty apiKey sends unauthenticated
// requests; otherwise a static bearer token is attached to every request.
func NewClient(apiKey string, opts ...Option) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		ResponseHeaderTimeout: requestTimeout,
		TLSHandshakeTimeout:   connectTimeout,
	}

	var rt http.RoundTripper = transport
	if apiKey != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey}),
			Base:   transport,
		}
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		http: &http.Client{
			Transport: rt,
			Timeout:   requestTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues a GET against endpoint with the given query, retrying on 5xx
// and transport errors with exponential backoff. Returns the raw body.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryBaseBackoff << (attempt - 1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		body, err := c.doOnce(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if apiErr, ok := err.(*APIError); ok && !apiErr.Retryable() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", endpoint, lastErr)
}

// doOnce performs a single request attempt.
func (c *Client) doOnce(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(body)
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: msg}
	}
	return body, nil
}

// fetchJSON gets endpoint and decodes into out, returning the raw payload
// for the caller to cache.
func (c *Client) fetchJSON(ctx context.Context, endpoint string, query url.Values, out interface{}) ([]byte, error) {
	raw, err := c.get(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return raw, nil
}

// SearchModels fetches a page of models.
func (c *Client) SearchModels(ctx context.Context, params ModelParams) (*ModelListDTO, []byte, error) {
	var dto ModelListDTO
	raw, err := c.fetchJSON(ctx, EndpointModels, params.Values(), &dto)
	if err != nil {
		return nil, nil, err
	}
	return &dto, raw, nil
}

// GetModel fetches a single model by id.
func (c *Client) GetModel(ctx context.Context, id int64) (*ModelDTO, []byte, error) {
	var dto ModelDTO
	endpoint := EndpointModels + "/" + strconv.FormatInt(id, 10)
	raw, err := c.fetchJSON(ctx, endpoint, nil, &dto)
	if err != nil {
		return nil, nil, err
	}
	return &dto, raw, nil
}

// GetModelVersion fetches a single model version by id.
func (c *Client) GetModelVersion(ctx context.Context, id int64) (*ModelVersionDTO, []byte, error) {
	var dto ModelVersionDTO
	endpoint := EndpointModelVersions + "/" + strconv.FormatInt(id, 10)
	raw, err := c.fetchJSON(ctx, endpoint, nil, &dto)
	if err != nil {
		return nil, nil, err
	}
	return &dto, raw, nil
}

// GetModelVersionByHash fetches a model version by file hash.
func (c *Client) GetModelVersionByHash(ctx context.Context, hash string) (*ModelVersionDTO, []byte, error) {
	var dto ModelVersionDTO
	endpoint := EndpointModelVersions + "/by-hash/" + url.PathEscape(hash)
	raw, err := c.fetchJSON(ctx, endpoint, nil, &dto)
	if err != nil {
		return nil, nil, err
	}
	return &dto, raw, nil
}

// SearchImages fetches a page of images.
func (c *Client) SearchImages(ctx context.Context, params ImageParams) (*ImageListDTO, []byte, error) {
	var dto ImageListDTO
	raw, err := c.fetchJSON(ctx, EndpointImages, params.Values(), &dto)
	if err != nil {
		return nil, nil, err
	}
	return &dto, raw, nil
}

// SearchCreators fetches a page of creators.
func (c *Client) SearchCreators(ctx context.Context, params CreatorParams) (*CreatorListDTO, []byte, error) {
	var dto CreatorListDTO
	raw, err := c.fetchJSON(ctx, EndpointCreators, params.Values(), &dto)
	if err != nil {
		return nil, nil, err
	}
	return &dto, raw, nil
}

// SearchTags fetches a page of tags.
func (c *Client) SearchTags(ctx context.Context, params TagParams) (*TagListDTO, []byte, error) {
	var dto TagListDTO
	raw, err := c.fetchJSON(ctx, EndpointTags, params.Values(), &dto)
	if err != nil {
		return nil, nil, err
	}
	return &dto, raw, nil
}

// Package search issues the single search request against the remote
// endpoint and decodes its payload into result records.
package search

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

	"seekterm/internal/domain"
)

var (
	// ErrRequestFailure covers transport failures and non-2xx responses
	ErrRequestFailure = errors.New("request failed")
	// ErrMalformedResponse means the payload was not a JSON array of records
	ErrMalformedResponse = errors.New("malformed response")
)

// maxPayload bounds how much of a response body is read
const maxPayload = 32 << 20

// StatusError reports a non-2xx response
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: HTTP %s", e.Status)
}

// Unwrap lets errors.Is match ErrRequestFailure
func (e *StatusError) Unwrap() error { return ErrRequestFailure }

// Options configures a Client
type Options struct {
	Endpoint   string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// Client talks to the search endpoint. It never retries.
type Client struct {
	base      *url.URL
	http      *http.Client
	timeout   time.Duration
	userAgent string
}

// NewClient validates the endpoint and builds a client
func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.Endpoint)
	if raw == "" {
		return nil, fmt.Errorf("search endpoint is empty")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint %q: %w", raw, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid search endpoint %q: scheme must be http or https", raw)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		base:      base,
		http:      hc,
		timeout:   opts.Timeout,
		userAgent: opts.UserAgent,
	}, nil
}

// Endpoint returns the configured base URL
func (c *Client) Endpoint() string { return c.base.String() }

// SearchURL builds GET <base>/search?q=<encoded query>
func (c *Client) SearchURL(query string) string {
	return c.resolve("search", url.Values{"q": {query}})
}

func (c *Client) resolve(path string, params url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + path
	u.RawPath = ""
	u.Fragment = ""
	u.RawQuery = params.Encode()
	return u.String()
}

// Fetch issues exactly one GET for query and returns the raw body of a 2xx
// response. Every failure wraps ErrRequestFailure.
func (c *Client) Fetch(ctx context.Context, query string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.get(ctx, c.SearchURL(query))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrRequestFailure, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrRequestFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailure, err)
	}
	return resp, nil
}

// DecodeRecords decodes a JSON array of records. A literal null yields a nil
// slice; anything else that is not an array is malformed.
func DecodeRecords(payload []byte) ([]domain.ResultRecord, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var records []domain.ResultRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return records, nil
}

// Health probes GET <base>/health once
func (c *Client) Health(ctx context.Context) (domain.EndpointHealth, error) {
	var health domain.EndpointHealth

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.get(ctx, c.resolve("health", nil))
	if err != nil {
		return health, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return health, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&health); err != nil {
		return health, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return health, nil
}

// Package upstream implements the profile and posting stores against the
// remote user and job services over HTTP.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the default per-call timeout.
const DefaultTimeout = 3 * time.Second

// DefaultUserAgent is the user agent string for upstream requests.
const DefaultUserAgent = "job-matcher/1.0"

// maxBodyBytes caps how much of a response body is decoded.
const maxBodyBytes = 32 << 20

// Error represents a failed upstream call.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("upstream error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the upstream client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for upstream calls.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// client issues JSON GET requests against one base URL.
type client struct {
	baseURL string
	http    *http.Client
	opts    *Options
}

func newClient(baseURL string, opts *Options) (*client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: baseURL, Message: "invalid base URL", Cause: err}
	}

	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: opts.Timeout},
		opts:    opts,
	}, nil
}

// getJSON decodes the response at path into out. It reports false, nil when
// the upstream answers 404.
func (c *client) getJSON(ctx context.Context, path string, out any) (bool, error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, &Error{URL: reqURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	for key, value := range c.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, &Error{URL: reqURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, &Error{
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return false, &Error{URL: reqURL, StatusCode: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}
	return true, nil
}

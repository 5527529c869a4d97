// Package http provides HTTP implementations of pagemd.Fetcher and
// pagemd.MediaFetcher for pages that don't require JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"time"

	"github.com/fwojciec/pagemd"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for a single HTTP request.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is a desktop Chrome user agent. Several article hosts
// serve verification pages to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultHeaders returns the browser-like headers sent with page requests.
// Accept-Encoding is left to net/http so compressed bodies are decoded
// transparently.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language":           "zh-CN,zh;q=0.9,en;q=0.8",
		"Referer":                   "https://mp.weixin.qq.com/",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
		"Upgrade-Insecure-Requests": "1",
		"sec-ch-ua":                 `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`,
		"sec-ch-ua-mobile":          "?0",
		"sec-ch-ua-platform":        `"macOS"`,
	}
}

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Fetcher implements pagemd.Fetcher at compile time.
var _ pagemd.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	headers   map[string]string
	delays    []time.Duration
	logf      LogFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each HTTP request.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHeaders adds request headers, overriding defaults with the same name.
func WithHeaders(h map[string]string) Option {
	return func(f *Fetcher) {
		maps.Copy(f.headers, h)
	}
}

// WithRetryDelays sets the waits between attempts. An empty slice
// disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithRetryLog sets a function called before each retry.
func WithRetryLog(fn LogFunc) Option {
	return func(f *Fetcher) {
		f.logf = fn
	}
}

// WithHTTPClient sets the underlying client. The timeout option is ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		headers:   DefaultHeaders(),
		delays:    DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8.
// Transport errors and 429/5xx responses are retried; other non-2xx
// responses fail immediately. All failures carry the EFETCH code.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var body string
	err := withRetry(ctx, url, f.delays, f.logf, func() error {
		var err error
		body, err = f.fetchOnce(ctx, url)
		return err
	})
	if err != nil {
		return "", pagemd.Errorf(pagemd.EFETCH, "failed to fetch %s: %v", url, err)
	}
	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", permanent(err)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", permanent(fmt.Errorf("decoding body: %w", err))
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// checkStatus returns nil for 2xx responses. Rate limiting and server
// errors are retryable; everything else is permanent.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	err := &StatusError{StatusCode: resp.StatusCode}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return err
	}
	return permanent(err)
}

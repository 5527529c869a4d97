// Package rod implements pagemd.Fetcher with a headless Chrome browser for
// pages that need JavaScript or serve verification interstitials to plain
// HTTP clients.
package rod

import (
	"context"
	"sort"
	"time"

	"github.com/fwojciec/pagemd"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation and rendering of a single page.
const DefaultFetchTimeout = 60 * time.Second

// DefaultRenderDelay is how long the page is given to run scripts after
// the load event.
const DefaultRenderDelay = 2 * time.Second

// Ensure Fetcher implements pagemd.Fetcher at compile time.
var _ pagemd.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Chrome is started on the first Fetch, not at construction.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager        *BrowserManager
	timeout        time.Duration
	renderDelay    time.Duration
	userAgent      string
	acceptLanguage string
	headers        map[string]string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRenderDelay sets the wait after the load event. Defaults to
// DefaultRenderDelay.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// WithUserAgent overrides the browser's user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithAcceptLanguage sets the emulated browser language.
func WithAcceptLanguage(lang string) Option {
	return func(f *Fetcher) {
		f.acceptLanguage = lang
	}
}

// WithExtraHeaders sends additional headers with every request the page makes.
func WithExtraHeaders(h map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = h
	}
}

// WithManager sets the browser manager. By default the Fetcher owns a
// manager created with NewBrowserManager.
func WithManager(m *BrowserManager) Option {
	return func(f *Fetcher) {
		f.manager = m
	}
}

// NewFetcher creates a new Fetcher. Close must be called when the Fetcher
// is no longer needed.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		renderDelay: DefaultRenderDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.manager == nil {
		f.manager = NewBrowserManager()
	}
	return f
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.manager.closed.Load() {
		return "", pagemd.Errorf(pagemd.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", pagemd.Errorf(pagemd.EFETCH, "browser fetch %s: %v", url, err)
	}

	html, err := f.fetch(ctx, url)
	if err != nil {
		return "", pagemd.Errorf(pagemd.EFETCH, "browser fetch %s: %v", url, err)
	}
	return html, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	browser, err := f.manager.Browser()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      f.userAgent,
			AcceptLanguage: f.acceptLanguage,
		}); err != nil {
			return "", err
		}
	}

	if len(f.headers) > 0 {
		cleanup, err := page.SetExtraHeaders(headerPairs(f.headers))
		if err != nil {
			return "", err
		}
		defer cleanup()
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.renderDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// headerPairs flattens headers into the key, value list rod expects, in
// key order.
func headerPairs(h map[string]string) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(h))
	for _, k := range keys {
		pairs = append(pairs, k, h[k])
	}
	return pairs
}

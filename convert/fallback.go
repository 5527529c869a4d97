package convert

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fwojciec/pagemd"
)

// ChallengeFunc reports whether fetched HTML is a verification or error
// interstitial instead of the requested page.
type ChallengeFunc func(html string) bool

// NewChallengeFunc returns a ChallengeFunc matching pages shorter than
// maxSize bytes that contain any of markers. A non-positive maxSize
// matches pages of any size.
func NewChallengeFunc(markers []string, maxSize int) ChallengeFunc {
	return func(html string) bool {
		if maxSize > 0 && len(html) >= maxSize {
			return false
		}
		for _, m := range markers {
			if m != "" && strings.Contains(html, m) {
				return true
			}
		}
		return false
	}
}

// Ensure FallbackFetcher implements pagemd.Fetcher at compile time.
var _ pagemd.Fetcher = (*FallbackFetcher)(nil)

// FallbackFetcher fetches with a fast primary fetcher and switches to a
// browser fetcher when the primary fails or returns a verification page.
type FallbackFetcher struct {
	primary     pagemd.Fetcher
	browser     pagemd.Fetcher
	isChallenge ChallengeFunc
	force       bool
	logger      *slog.Logger
}

// FallbackOption configures a FallbackFetcher.
type FallbackOption func(*FallbackFetcher)

// WithChallengeFunc sets the verification page predicate. Without one,
// only primary failures trigger the browser.
func WithChallengeFunc(fn ChallengeFunc) FallbackOption {
	return func(f *FallbackFetcher) {
		f.isChallenge = fn
	}
}

// WithForceBrowser skips the primary fetcher entirely.
func WithForceBrowser(force bool) FallbackOption {
	return func(f *FallbackFetcher) {
		f.force = force
	}
}

// WithFallbackLogger sets the logger used to report fallbacks.
func WithFallbackLogger(l *slog.Logger) FallbackOption {
	return func(f *FallbackFetcher) {
		f.logger = l
	}
}

// NewFallbackFetcher creates a FallbackFetcher. browser may be nil, in
// which case the primary result is always returned.
func NewFallbackFetcher(primary, browser pagemd.Fetcher, opts ...FallbackOption) *FallbackFetcher {
	f := &FallbackFetcher{
		primary: primary,
		browser: browser,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the page HTML. When the primary fetch fails and the
// browser fails too, the primary error is returned. When the primary
// returns a verification page and the browser fails, the verification page
// is returned so extraction can report it.
func (f *FallbackFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.force {
		if f.browser == nil {
			return "", pagemd.Errorf(pagemd.EINVALID, "browser fetching requested but no browser is configured")
		}
		return f.browser.Fetch(ctx, url)
	}

	html, err := f.primary.Fetch(ctx, url)
	if f.browser == nil {
		return html, err
	}

	if err != nil {
		f.logger.Warn("primary fetch failed, trying browser", "url", url, "err", err)
		bhtml, berr := f.browser.Fetch(ctx, url)
		if berr != nil {
			f.logger.Warn("browser fetch failed", "url", url, "err", berr)
			return "", err
		}
		return bhtml, nil
	}

	if f.isChallenge != nil && f.isChallenge(html) {
		f.logger.Info("verification page detected, trying browser", "url", url, "bytes", len(html))
		bhtml, berr := f.browser.Fetch(ctx, url)
		if berr != nil {
			f.logger.Warn("browser fetch failed, keeping original page", "url", url, "err", berr)
			return html, nil
		}
		return bhtml, nil
	}

	return html, nil
}

// Close closes both fetchers.
func (f *FallbackFetcher) Close() error {
	var errs []error
	if f.primary != nil {
		if err := f.primary.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if f.browser != nil {
		if err := f.browser.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

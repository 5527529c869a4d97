package pagemd

import (
	"context"
	"io"
)

// Fetcher retrieves page HTML from URLs.
// Implementations may use browser automation to handle verification pages
// and JavaScript-rendered content.
type Fetcher interface {
	// Fetch returns the HTML of the page at url.
	// Returns EFETCH if the page cannot be retrieved.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// MediaFetcher downloads media resources such as images and videos.
type MediaFetcher interface {
	// FetchMedia streams the resource at url into w and returns the
	// number of bytes written.
	FetchMedia(ctx context.Context, url string, w io.Writer) (int64, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

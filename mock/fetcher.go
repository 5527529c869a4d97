package mock

import (
	"context"
	"io"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagemd.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ pagemd.MediaFetcher = (*MediaFetcher)(nil)

// MediaFetcher is a mock implementation of pagemd.MediaFetcher.
type MediaFetcher struct {
	FetchMediaFn func(ctx context.Context, url string, w io.Writer) (int64, error)
}

func (f *MediaFetcher) FetchMedia(ctx context.Context, url string, w io.Writer) (int64, error) {
	return f.FetchMediaFn(ctx, url, w)
}

var _ pagemd.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of pagemd.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

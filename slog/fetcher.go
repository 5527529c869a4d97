// Package slog provides logging decorators for pagemd services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemd"
)

// Ensure LoggingFetcher implements pagemd.Fetcher.
var _ pagemd.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   pagemd.Fetcher
	logger *slog.Logger
	name   string
}

// NewLoggingFetcher creates a new LoggingFetcher. name identifies the
// wrapped fetcher in log records, e.g. "http" or "browser".
func NewLoggingFetcher(next pagemd.Fetcher, logger *slog.Logger, name string) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger, name: name}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"fetcher", f.name,
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

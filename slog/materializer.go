package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemd"
)

// Ensure LoggingMaterializer implements pagemd.Materializer.
var _ pagemd.Materializer = (*LoggingMaterializer)(nil)

// LoggingMaterializer wraps a Materializer with logging.
type LoggingMaterializer struct {
	next   pagemd.Materializer
	logger *slog.Logger
}

// NewLoggingMaterializer creates a new LoggingMaterializer.
func NewLoggingMaterializer(next pagemd.Materializer, logger *slog.Logger) *LoggingMaterializer {
	return &LoggingMaterializer{next: next, logger: logger}
}

// Materialize logs download totals and delegates to the wrapped materializer.
func (m *LoggingMaterializer) Materialize(ctx context.Context, refs []pagemd.MediaRef, dir string) (res *pagemd.Resolution, err error) {
	defer func(begin time.Time) {
		downloaded, failed := 0, 0
		if res != nil {
			downloaded, failed = res.Downloaded, res.Failed
		}
		m.logger.Info("materialize",
			"dir", dir,
			"refs", len(refs),
			"downloaded", downloaded,
			"failed", failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Materialize(ctx, refs, dir)
}

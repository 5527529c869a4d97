package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagemd"
)

// Ensure LoggingExtractor implements pagemd.Extractor.
var _ pagemd.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   pagemd.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagemd.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the origin and extracted title and delegates to the
// wrapped extractor.
func (e *LoggingExtractor) Extract(origin pagemd.Origin, html string) (article *pagemd.Article, err error) {
	defer func(begin time.Time) {
		title := ""
		if article != nil {
			title = article.Title
		}
		e.logger.Info("extract",
			"origin", origin,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(origin, html)
}

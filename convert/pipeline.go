// Package convert turns article URLs into Markdown documents by
// coordinating fetching, extraction, media handling and rendering.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagemd"
)

// Stage names a step of a conversion.
type Stage string

// Conversion stages, in order.
const (
	StageFetch   Stage = "fetch"
	StageExtract Stage = "extract"
	StageMedia   Stage = "media"
	StageRender  Stage = "render"
	StageWrite   Stage = "write"
	StageRecord  Stage = "record"
)

// Request describes one conversion.
type Request struct {
	URL string
	// OutputPath is the Markdown file to write. When empty the file is
	// named after the article title inside OutputDir.
	OutputPath string
	// OutputDir receives generated files and the debug dump.
	OutputDir     string
	DownloadMedia bool
}

// Error reports the stage at which a conversion failed. The wrapped error
// keeps its pagemd error code.
type Error struct {
	Stage  Stage
	Origin pagemd.Origin
	URL    string
	// DebugPath is set when the raw page was saved for inspection.
	DebugPath string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed for %s (%s): %v", e.Stage, e.Origin.Label(), e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ProgressEvent reports that a conversion entered a stage.
type ProgressEvent struct {
	Stage  Stage
	URL    string
	Origin pagemd.Origin
	// Count is stage specific: media references found for StageMedia.
	Count int
}

// ProgressFunc is a callback for reporting conversion progress.
type ProgressFunc func(event ProgressEvent)

// Pipeline converts a URL into a Markdown file.
type Pipeline struct {
	Fetcher   pagemd.Fetcher
	Extractor pagemd.Extractor
	Locator   pagemd.Locator
	// Materializer downloads media when a request asks for it. When nil,
	// media keep their remote URLs.
	Materializer pagemd.Materializer
	Converter    pagemd.Converter
	Writer       pagemd.DocumentWriter
	// Conversions records finished conversions when set.
	Conversions pagemd.ConversionService
	Logger      *slog.Logger
	Progress    ProgressFunc
}

// Convert runs a conversion. A failed extraction writes the fetched page to
// OutputDir for inspection and writes no Markdown.
func (p *Pipeline) Convert(ctx context.Context, req Request) (*pagemd.Result, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, pagemd.Errorf(pagemd.EINVALID, "URL required")
	}

	origin := pagemd.Classify(req.URL)
	fail := func(stage Stage, err error) *Error {
		return &Error{Stage: stage, Origin: origin, URL: req.URL, Err: err}
	}

	p.notify(ProgressEvent{Stage: StageFetch, URL: req.URL, Origin: origin})
	html, err := p.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		if pagemd.ErrorCode(err) == pagemd.EINTERNAL {
			err = pagemd.Errorf(pagemd.EFETCH, "%v", err)
		}
		return nil, fail(StageFetch, err)
	}

	p.notify(ProgressEvent{Stage: StageExtract, URL: req.URL, Origin: origin})
	article, err := p.Extractor.Extract(origin, html)
	if err != nil {
		ferr := fail(StageExtract, err)
		if pagemd.ErrorCode(err) == pagemd.ENOTFOUND {
			debugPath, derr := p.Writer.WriteDebug(ctx, req.OutputDir, html)
			if derr != nil {
				p.logger().Warn("failed to save debug page", "url", req.URL, "err", derr)
			} else {
				ferr.DebugPath = debugPath
			}
		}
		return nil, ferr
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(req.OutputDir, pagemd.FilenameFor(article.Title, req.URL))
	}

	refs := p.Locator.Locate(article.Content)
	rewrites := pagemd.RemoteRewrites(refs)
	failed := 0
	if req.DownloadMedia && p.Materializer != nil && len(refs) > 0 {
		p.notify(ProgressEvent{Stage: StageMedia, URL: req.URL, Origin: origin, Count: len(refs)})
		res, err := p.Materializer.Materialize(ctx, refs, MediaDir(outputPath))
		if err != nil {
			return nil, fail(StageMedia, err)
		}
		rewrites = res.Rewrites
		failed = res.Failed
	}
	p.Locator.Apply(rewrites)

	p.notify(ProgressEvent{Stage: StageRender, URL: req.URL, Origin: origin})
	body, err := p.Converter.Convert(article.Content)
	if err != nil {
		return nil, fail(StageRender, err)
	}
	content := pagemd.Assemble(article, pagemd.Clean(body), req.URL)

	p.notify(ProgressEvent{Stage: StageWrite, URL: req.URL, Origin: origin})
	if err := p.Writer.WriteDocument(ctx, outputPath, content); err != nil {
		return nil, fail(StageWrite, err)
	}

	result := &pagemd.Result{
		OutputPath:  outputPath,
		Title:       article.Title,
		Origin:      origin,
		Content:     content,
		MediaCount:  len(refs),
		MediaFailed: failed,
	}

	if p.Conversions != nil {
		c := &pagemd.Conversion{
			SourceURL:     req.URL,
			Origin:        origin,
			Title:         article.Title,
			OutputPath:    outputPath,
			MediaCount:    result.MediaCount,
			MediaFailed:   result.MediaFailed,
			DownloadMedia: req.DownloadMedia,
		}
		if err := p.Conversions.CreateConversion(ctx, c, content); err != nil {
			p.logger().Warn("failed to record conversion", "url", req.URL, "err", fail(StageRecord, err))
		}
	}

	return result, nil
}

// MediaDir returns the media folder for a document path: the path without
// its extension plus "_files".
func MediaDir(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_files"
}

func (p *Pipeline) notify(e ProgressEvent) {
	if p.Progress != nil {
		p.Progress(e)
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}

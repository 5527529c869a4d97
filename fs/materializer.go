package fs

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/fwojciec/pagemd"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the default number of parallel media downloads.
const DefaultConcurrency = 4

// Ensure Materializer implements pagemd.Materializer at compile time.
var _ pagemd.Materializer = (*Materializer)(nil)

// Materializer downloads media references into a local folder next to the
// document.
type Materializer struct {
	fetcher     pagemd.MediaFetcher
	limiter     pagemd.DomainLimiter
	concurrency int
	logger      *slog.Logger
}

// MaterializerOption configures a Materializer.
type MaterializerOption func(*Materializer)

// WithConcurrency sets the number of parallel downloads.
func WithConcurrency(n int) MaterializerOption {
	return func(m *Materializer) {
		m.concurrency = n
	}
}

// WithDomainLimiter throttles downloads per host.
func WithDomainLimiter(l pagemd.DomainLimiter) MaterializerOption {
	return func(m *Materializer) {
		m.limiter = l
	}
}

// WithLogger sets the logger for per-item download failures.
func WithLogger(l *slog.Logger) MaterializerOption {
	return func(m *Materializer) {
		m.logger = l
	}
}

// NewMaterializer creates a new Materializer.
func NewMaterializer(fetcher pagemd.MediaFetcher, opts ...MaterializerOption) *Materializer {
	m := &Materializer{
		fetcher:     fetcher,
		concurrency: DefaultConcurrency,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.concurrency < 1 {
		m.concurrency = 1
	}
	return m
}

// Materialize downloads refs into dir. File names are assigned by position
// before any download starts, so the outcome does not depend on download
// order.
func (m *Materializer) Materialize(ctx context.Context, refs []pagemd.MediaRef, dir string) (*pagemd.Resolution, error) {
	res := &pagemd.Resolution{Paths: make(map[string]string)}
	if len(refs) == 0 {
		return res, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, pagemd.Errorf(pagemd.EWRITE, "failed to create media folder %s: %v", dir, err)
	}
	folder := filepath.Base(dir)

	values := make([]string, len(refs))
	ok := make([]bool, len(refs))

	g := new(errgroup.Group)
	g.SetLimit(m.concurrency)
	for i, ref := range refs {
		name := pagemd.MediaFilename(ref, i+1)
		g.Go(func() error {
			if err := m.download(ctx, ref, filepath.Join(dir, name)); err != nil {
				m.logger.Warn("media download failed", "url", ref.URL, "kind", ref.Kind, "err", err)
				values[i] = ref.URL
				return nil
			}
			values[i] = folder + "/" + name
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	res.Rewrites = make([]pagemd.Rewrite, len(refs))
	for i, ref := range refs {
		res.Rewrites[i] = pagemd.Rewrite{Ref: ref, Value: values[i]}
		res.Paths[ref.URL] = values[i]
		if ok[i] {
			res.Downloaded++
		} else {
			res.Failed++
		}
	}

	return res, nil
}

// download fetches one reference into path, removing any partial file on
// failure.
func (m *Materializer) download(ctx context.Context, ref pagemd.MediaRef, path string) (err error) {
	if m.limiter != nil {
		if u, perr := url.Parse(ref.URL); perr == nil {
			if err := m.limiter.Wait(ctx, u.Host); err != nil {
				return err
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	_, err = m.fetcher.FetchMedia(ctx, ref.URL, f)
	return err
}

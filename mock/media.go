package mock

import (
	"context"

	"github.com/fwojciec/pagemd"
	"golang.org/x/net/html"
)

var _ pagemd.Locator = (*Locator)(nil)

// Locator is a mock implementation of pagemd.Locator.
type Locator struct {
	LocateFn func(content *html.Node) []pagemd.MediaRef
	ApplyFn  func(rewrites []pagemd.Rewrite)
}

func (l *Locator) Locate(content *html.Node) []pagemd.MediaRef {
	return l.LocateFn(content)
}

func (l *Locator) Apply(rewrites []pagemd.Rewrite) {
	l.ApplyFn(rewrites)
}

var _ pagemd.Materializer = (*Materializer)(nil)

// Materializer is a mock implementation of pagemd.Materializer.
type Materializer struct {
	MaterializeFn func(ctx context.Context, refs []pagemd.MediaRef, dir string) (*pagemd.Resolution, error)
}

func (m *Materializer) Materialize(ctx context.Context, refs []pagemd.MediaRef, dir string) (*pagemd.Resolution, error) {
	return m.MaterializeFn(ctx, refs, dir)
}

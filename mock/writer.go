package mock

import (
	"context"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of pagemd.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, path, content string) error
	WriteDebugFn    func(ctx context.Context, dir, html string) (string, error)
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, path, content string) error {
	return w.WriteDocumentFn(ctx, path, content)
}

func (w *DocumentWriter) WriteDebug(ctx context.Context, dir, html string) (string, error) {
	return w.WriteDebugFn(ctx, dir, html)
}

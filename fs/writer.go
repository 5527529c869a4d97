// Package fs provides file-based storage for converted documents and
// their media.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/pagemd"
)

// DebugFilename is the name of the raw page dump written when no article
// content could be found.
const DebugFilename = "debug.html"

// Ensure Writer implements pagemd.DocumentWriter at compile time.
var _ pagemd.DocumentWriter = (*Writer)(nil)

// Writer writes documents as files. Documents are written to a temporary
// file in the target directory and renamed into place.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteDocument writes content to path atomically.
func (w *Writer) WriteDocument(ctx context.Context, path, content string) error {
	if path == "" {
		return pagemd.Errorf(pagemd.EINVALID, "output path required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeAtomic(path, []byte(content)); err != nil {
		return pagemd.Errorf(pagemd.EWRITE, "failed to write %s: %v", path, err)
	}
	return nil
}

// WriteDebug writes html to dir/debug.html.
func (w *Writer) WriteDebug(ctx context.Context, dir, html string) (string, error) {
	path := filepath.Join(dir, DebugFilename)
	if err := w.WriteDocument(ctx, path, html); err != nil {
		return "", err
	}
	return path, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

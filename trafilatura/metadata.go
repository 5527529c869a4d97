// Package trafilatura reads page metadata with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/pagemd"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure MetadataExtractor implements pagemd.MetadataExtractor at compile time.
var _ pagemd.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor wraps go-trafilatura to find the title, author and
// publish date of arbitrary pages from meta tags, JSON-LD and bylines.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata processes raw HTML and returns its metadata.
func (e *MetadataExtractor) ExtractMetadata(rawHTML string) (*pagemd.Metadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagemd.Errorf(pagemd.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, pagemd.Errorf(pagemd.ENOTFOUND, "metadata extraction failed: %v", err)
	}

	return &pagemd.Metadata{
		Title:  strings.TrimSpace(result.Metadata.Title),
		Author: strings.TrimSpace(result.Metadata.Author),
		Date:   result.Metadata.Date,
	}, nil
}

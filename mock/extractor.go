package mock

import "github.com/fwojciec/pagemd"

var _ pagemd.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagemd.Extractor.
type Extractor struct {
	ExtractFn func(origin pagemd.Origin, html string) (*pagemd.Article, error)
}

func (e *Extractor) Extract(origin pagemd.Origin, html string) (*pagemd.Article, error) {
	return e.ExtractFn(origin, html)
}

var _ pagemd.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of pagemd.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*pagemd.Metadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*pagemd.Metadata, error) {
	return e.ExtractMetadataFn(html)
}

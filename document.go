package pagemd

import (
	"context"
	"time"
)

// Result describes a finished conversion.
type Result struct {
	OutputPath string
	Title      string
	Origin     Origin
	// Content is the full Markdown document written to OutputPath.
	Content string
	// MediaCount is the number of media references found in the article.
	MediaCount int
	// MediaFailed counts references that could not be downloaded and
	// kept their remote URL.
	MediaFailed int
}

// Conversion is a recorded conversion in the local history.
type Conversion struct {
	ID            string    `json:"id"`
	SourceURL     string    `json:"sourceUrl"`
	Origin        Origin    `json:"origin"`
	Title         string    `json:"title"`
	OutputPath    string    `json:"outputPath"`
	ContentHash   string    `json:"contentHash"`
	MediaCount    int       `json:"mediaCount"`
	MediaFailed   int       `json:"mediaFailed"`
	DownloadMedia bool      `json:"downloadMedia"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Validate returns an error if the conversion contains invalid fields.
func (c *Conversion) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "conversion source URL required")
	}
	if c.OutputPath == "" {
		return Errorf(EINVALID, "conversion output path required")
	}
	return nil
}

// ConversionService represents a service for recording conversions.
type ConversionService interface {
	// CreateConversion records a conversion. ID, CreatedAt and ContentHash
	// are set by the service; content is hashed but not stored.
	CreateConversion(ctx context.Context, c *Conversion, content string) error

	// FindConversionByID retrieves a conversion by ID.
	// Returns ENOTFOUND if the conversion does not exist.
	FindConversionByID(ctx context.Context, id string) (*Conversion, error)

	// FindConversions retrieves conversions matching the filter, newest first.
	FindConversions(ctx context.Context, filter ConversionFilter) ([]*Conversion, error)
}

// ConversionFilter represents a filter for FindConversions.
type ConversionFilter struct {
	SourceURL *string `json:"sourceUrl"`
	Origin    *Origin `json:"origin"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DocumentWriter persists conversion output.
type DocumentWriter interface {
	// WriteDocument writes content to path, creating parent directories.
	// A partially written document is never left at path.
	// Returns EWRITE on failure.
	WriteDocument(ctx context.Context, path, content string) error

	// WriteDebug saves the raw page HTML into dir for inspection after a
	// failed extraction and returns the file path.
	WriteDebug(ctx context.Context, dir, html string) (string, error)
}

package pagemd

import (
	"time"

	"golang.org/x/net/html"
)

// Article holds the parts of a page extracted by an Extractor.
// Empty strings mean the field could not be found.
type Article struct {
	Title       string
	Author      string
	PublishTime string
	Origin      Origin

	// Content is the root of the article body. It is never nil on a
	// successful extraction and belongs to the conversion that produced it;
	// later stages rewrite its attributes in place.
	Content *html.Node
}

// Extractor locates the article inside a page using origin-specific rules.
type Extractor interface {
	// Extract parses raw HTML and returns the article.
	// Returns ENOTFOUND if no content root can be located.
	// Script and style elements are removed from the content root.
	Extract(origin Origin, html string) (*Article, error)
}

// Metadata holds page metadata discovered outside of origin-specific rules.
type Metadata struct {
	Title  string
	Author string
	Date   time.Time
}

// MetadataExtractor reads metadata (meta tags, JSON+LD, bylines) from a page.
// It is used to fill fields the generic rules cannot find.
type MetadataExtractor interface {
	ExtractMetadata(html string) (*Metadata, error)
}

// Package goquery implements article extraction and media discovery with
// CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagemd.Extractor at compile time.
var _ pagemd.Extractor = (*Extractor)(nil)

// extractFunc extracts an article from a parsed page. It returns a nil
// Content when the page holds no recognizable article body.
type extractFunc func(e *Extractor, doc *goquery.Document, rawHTML string) (*pagemd.Article, error)

// extractors holds the rules for each origin. Origins without an entry,
// such as Xiaohongshu, use the generic rules.
var extractors = map[pagemd.Origin]extractFunc{
	pagemd.OriginWeChat:  extractWeChat,
	pagemd.OriginZhihu:   extractZhihu,
	pagemd.OriginJuejin:  extractJuejin,
	pagemd.OriginCSDN:    extractCSDN,
	pagemd.OriginGeneric: extractGeneric,
}

// Extractor selects extraction rules by origin and applies them to a page.
type Extractor struct {
	metadata pagemd.MetadataExtractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMetadataExtractor sets the collaborator used by the generic rules to
// find the author and publish time.
func WithMetadataExtractor(m pagemd.MetadataExtractor) Option {
	return func(e *Extractor) {
		e.metadata = m
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses raw HTML and returns the article using the rules for origin.
func (e *Extractor) Extract(origin pagemd.Origin, rawHTML string) (*pagemd.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagemd.Errorf(pagemd.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagemd.Errorf(pagemd.EINVALID, "failed to parse HTML: %v", err)
	}

	extract, ok := extractors[origin]
	if !ok {
		extract = extractGeneric
	}

	article, err := extract(e, doc, rawHTML)
	if err != nil {
		return nil, err
	}
	if article.Content == nil {
		return nil, pagemd.Errorf(pagemd.ENOTFOUND, "no %s content found; the page layout may have changed", origin.Label())
	}
	article.Origin = origin

	return article, nil
}

// firstText returns the trimmed text of the first selector whose first
// match has non-empty text.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstAttr returns the trimmed attribute value of the first selector
// whose first match has a non-empty value.
func firstAttr(doc *goquery.Document, attr string, selectors ...string) string {
	for _, selector := range selectors {
		if val := strings.TrimSpace(doc.Find(selector).First().AttrOr(attr, "")); val != "" {
			return val
		}
	}
	return ""
}

// firstContent returns the first element matching any selector, in
// selector order, with script and style subtrees removed.
func firstContent(doc *goquery.Document, selectors ...string) *goquery.Selection {
	for _, selector := range selectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return stripScripts(sel)
		}
	}
	return nil
}

func stripScripts(sel *goquery.Selection) *goquery.Selection {
	sel.Find("script, style").Remove()
	return sel
}

// contentNode returns the node of a selection, or nil for an empty one.
func contentNode(sel *goquery.Selection) *html.Node {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
	"golang.org/x/net/html"
)

// Ensure Locator implements pagemd.Locator at compile time.
var _ pagemd.Locator = (*Locator)(nil)

var (
	imageAttrs = []string{"data-src", "src", "data-original"}
	videoAttrs = []string{"data-src", "src"}
)

// Locator finds images and embedded videos in extracted content.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate returns media references in document order. Elements whose URL is
// missing or not absolute http(s) are skipped.
func (l *Locator) Locate(content *html.Node) []pagemd.MediaRef {
	if content == nil {
		return nil
	}

	var refs []pagemd.MediaRef
	goquery.NewDocumentFromNode(content).Find("img, video, iframe").Each(func(_ int, sel *goquery.Selection) {
		kind, attrs := pagemd.MediaImage, imageAttrs
		if goquery.NodeName(sel) != "img" {
			kind, attrs = pagemd.MediaVideo, videoAttrs
		}

		u := firstNonEmptyAttr(sel, attrs)
		if !isAbsoluteHTTP(u) {
			return
		}

		refs = append(refs, pagemd.MediaRef{
			Kind: kind,
			URL:  u,
			Node: sel.Get(0),
		})
	})

	return refs
}

func firstNonEmptyAttr(sel *goquery.Selection, attrs []string) string {
	for _, attr := range attrs {
		if v := strings.TrimSpace(sel.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}

func isAbsoluteHTTP(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

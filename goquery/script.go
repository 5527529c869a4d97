package goquery

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/fwojciec/pagemd"
)

// ErrScriptFormat is returned when inline script data does not have the
// expected shape.
var ErrScriptFormat = pagemd.Errorf(pagemd.ENOTFOUND, "inline script data format not recognized")

var (
	msgTitleRe    = regexp.MustCompile(`window\.msg_title\s*=\s*['"]([^'"]*)['"]`)
	pictureListRe = regexp.MustCompile(`(?s)window\.picture_page_info_list\s*=\s*\[(.*?)\];`)
	cdnURLRe      = regexp.MustCompile(`cdn_url:\s*['"]([^'"]+)['"]`)
)

// Carousel is the data of a WeChat image-carousel post as embedded in its
// inline scripts.
type Carousel struct {
	Title     string
	ImageURLs []string
}

// ParseCarousel reads the carousel title and image list from page source.
// It returns ErrScriptFormat when the picture list is missing or holds no
// image URLs.
func ParseCarousel(source string) (*Carousel, error) {
	c := &Carousel{}

	if m := msgTitleRe.FindStringSubmatch(source); m != nil {
		c.Title = strings.TrimSpace(html.UnescapeString(unescapeScript(m[1])))
	}

	list := pictureListRe.FindStringSubmatch(source)
	if list == nil {
		return nil, fmt.Errorf("picture list not found: %w", ErrScriptFormat)
	}

	for _, m := range cdnURLRe.FindAllStringSubmatch(list[1], -1) {
		c.ImageURLs = append(c.ImageURLs, unescapeScript(m[1]))
	}
	if len(c.ImageURLs) == 0 {
		return nil, fmt.Errorf("no image URLs in picture list: %w", ErrScriptFormat)
	}

	return c, nil
}

// unescapeScript decodes the hex escapes WeChat uses for '&' in script strings.
func unescapeScript(s string) string {
	s = strings.ReplaceAll(s, `\x26amp;`, "&")
	return strings.ReplaceAll(s, `\x26`, "&")
}

package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// extractWeChat handles WeChat official-account posts. Image-carousel posts
// carry no article body in the DOM and are rebuilt from inline script data.
func extractWeChat(_ *Extractor, doc *goquery.Document, rawHTML string) (*pagemd.Article, error) {
	if doc.Find("div.share_content_page").Length() > 0 {
		return extractWeChatCarousel(doc, rawHTML)
	}

	content := firstContent(doc, "div#js_content", "div.rich_media_content")

	return &pagemd.Article{
		Title: firstText(doc, "h1.rich_media_title", "#activity-name"),
		Author: firstText(doc,
			"a.rich_media_meta.rich_media_meta_link.rich_media_meta_nickname",
			"span.rich_media_meta.rich_media_meta_text",
			"#js_name",
		),
		PublishTime: firstText(doc, "em#publish_time"),
		Content:     contentNode(content),
	}, nil
}

func extractWeChatCarousel(doc *goquery.Document, rawHTML string) (*pagemd.Article, error) {
	carousel, err := ParseCarousel(rawHTML)
	if err != nil {
		return nil, fmt.Errorf("wechat carousel: %w", err)
	}

	return &pagemd.Article{
		Title:   carousel.Title,
		Author:  firstText(doc, "div.wx_follow_nickname"),
		Content: carouselContent(carousel.ImageURLs),
	}, nil
}

// carouselContent builds a content root holding one image per URL.
func carouselContent(urls []string) *html.Node {
	root := element(atom.Div, html.Attribute{Key: "class", Val: "carousel-content"})

	heading := element(atom.H2)
	heading.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: fmt.Sprintf("📷 Image carousel (%d images)", len(urls)),
	})
	root.AppendChild(heading)

	for i, u := range urls {
		p := element(atom.P)
		p.AppendChild(element(atom.Img,
			html.Attribute{Key: "src", Val: u},
			html.Attribute{Key: "alt", Val: fmt.Sprintf("Carousel image %d", i+1)},
		))
		root.AppendChild(p)
	}

	return root
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     strings.ToLower(a.String()),
		DataAtom: a,
		Attr:     attrs,
	}
}

package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
)

// genericContentSelectors are tried in order before falling back to the
// largest block of text.
var genericContentSelectors = []string{
	"article",
	"main",
	".post-content",
	".article-content",
	".content",
}

// extractGeneric handles any page without dedicated rules.
func extractGeneric(e *Extractor, doc *goquery.Document, rawHTML string) (*pagemd.Article, error) {
	article := &pagemd.Article{
		Title: firstText(doc, "h1", "title"),
	}
	if article.Title == "" {
		article.Title = firstAttr(doc, "content", "meta[property='og:title']")
	}

	content := firstContent(doc, genericContentSelectors...)
	if content == nil {
		content = largestBlock(doc)
	}
	article.Content = contentNode(content)

	if e.metadata != nil {
		// Metadata is best effort; a failure leaves the fields empty.
		if meta, err := e.metadata.ExtractMetadata(rawHTML); err == nil && meta != nil {
			article.Author = meta.Author
			if article.Title == "" {
				article.Title = meta.Title
			}
			if !meta.Date.IsZero() {
				article.PublishTime = meta.Date.Format("2006-01-02")
			}
		}
	}

	return article, nil
}

// largestBlock returns the div or section with the most text, ignoring
// script and style content. It returns nil when no block has any text.
func largestBlock(doc *goquery.Document) *goquery.Selection {
	doc.Find("script, style").Remove()

	var best *goquery.Selection
	bestLen := 0
	doc.Find("div, section").Each(func(_ int, sel *goquery.Selection) {
		n := len(strings.TrimSpace(sel.Text()))
		if n > bestLen {
			best = sel
			bestLen = n
		}
	})

	return best
}

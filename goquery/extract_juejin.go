package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
)

// extractJuejin handles Juejin posts.
func extractJuejin(_ *Extractor, doc *goquery.Document, _ string) (*pagemd.Article, error) {
	content := firstContent(doc, "article.article-content", "div.markdown-body")

	return &pagemd.Article{
		Title:   firstText(doc, "h1.article-title"),
		Author:  firstText(doc, "span.username"),
		Content: contentNode(content),
	}, nil
}

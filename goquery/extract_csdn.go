package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
)

// extractCSDN handles CSDN blog posts.
func extractCSDN(_ *Extractor, doc *goquery.Document, _ string) (*pagemd.Article, error) {
	content := firstContent(doc, "article.baidu_pl", "div#article_content")

	return &pagemd.Article{
		Title:   firstText(doc, "h1.title-article"),
		Author:  firstText(doc, "a.follow-nickName"),
		Content: contentNode(content),
	}, nil
}

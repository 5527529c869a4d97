package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemd"
)

// extractZhihu handles Zhihu column posts and answers.
func extractZhihu(_ *Extractor, doc *goquery.Document, _ string) (*pagemd.Article, error) {
	content := firstContent(doc, "div.RichContent-inner", "div.Post-RichTextContainer")

	return &pagemd.Article{
		Title:   firstText(doc, "h1.Post-Title", "h1.ArticleItem-title"),
		Author:  firstAttr(doc, "content", "meta[name='author']"),
		Content: contentNode(content),
	}, nil
}

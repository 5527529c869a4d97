// Package htmltomarkdown renders article content as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pagemd"
	"golang.org/x/net/html"
)

// Ensure Converter implements pagemd.Converter at compile time.
var _ pagemd.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	// Same-page anchors are meaningless outside the page; keep their text.
	conv.Register.RendererFor("a", converter.TagTypeInline, renderAnchor, converter.PriorityEarly)

	for _, tag := range []string{"video", "iframe"} {
		conv.Register.RendererFor(tag, converter.TagTypeBlock, renderVideo, converter.PriorityEarly)
	}

	return &Converter{conv: conv}
}

// Convert transforms the subtree rooted at n into Markdown.
func (c *Converter) Convert(n *html.Node) (string, error) {
	if n == nil {
		return "", pagemd.Errorf(pagemd.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertNode(n)
	if err != nil {
		return "", pagemd.Errorf(pagemd.EINTERNAL, "markdown conversion failed: %v", err)
	}

	return string(result), nil
}

// ConvertString parses and converts an HTML fragment.
func (c *Converter) ConvertString(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", pagemd.Errorf(pagemd.EINVALID, "empty HTML input")
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", pagemd.Errorf(pagemd.EINVALID, "failed to parse HTML: %v", err)
	}

	return c.Convert(doc)
}

func renderAnchor(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	href := strings.TrimSpace(dom.GetAttributeOr(n, "href", ""))
	if !strings.HasPrefix(href, "#") {
		return converter.RenderTryNext
	}

	ctx.RenderChildNodes(ctx, w, n)
	return converter.RenderSuccess
}

// renderVideo writes media players as a link on their own line. The
// destination is encoded the same way image sources are, so local paths
// with spaces stay valid links.
func renderVideo(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	src := strings.TrimSpace(dom.GetAttributeOr(n, "src", ""))
	if src == "" {
		return converter.RenderSuccess
	}

	w.WriteString("\n\n[video](")
	w.WriteString(ctx.AssembleAbsoluteURL(ctx, n.Data, src))
	w.WriteString(")\n\n")
	return converter.RenderSuccess
}

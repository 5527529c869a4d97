package pagemd

import "golang.org/x/net/html"

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert renders the subtree rooted at n as Markdown.
	// Links, images and emphasis are preserved and lines are not wrapped.
	Convert(n *html.Node) (string, error)
}

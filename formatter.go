package pagemd

import "strings"

// Assemble builds the final document: a title heading, a metadata block
// closed by a horizontal rule, and the body. Empty fields are omitted;
// the source line and original URL are always present.
func Assemble(article *Article, body, sourceURL string) string {
	var parts []string

	if article.Title != "" {
		parts = append(parts, "# "+article.Title+"\n")
	}

	var meta []string
	if article.Author != "" {
		meta = append(meta, "**Author:** "+article.Author)
	}
	if article.PublishTime != "" {
		meta = append(meta, "**Published:** "+article.PublishTime)
	}
	meta = append(meta, "**Source:** "+article.Origin.Label())
	meta = append(meta, "**Original URL:** "+sourceURL)

	parts = append(parts, strings.Join(meta, "\n"))
	parts = append(parts, "\n---\n")
	parts = append(parts, body)

	return strings.Join(parts, "\n")
}

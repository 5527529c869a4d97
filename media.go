package pagemd

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
)

// MediaKind is the type of an embedded media resource.
type MediaKind string

// Media kinds.
const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaRef points at a media element inside an article's content root.
type MediaRef struct {
	Kind MediaKind
	// URL is absolute and starts with http:// or https://.
	URL string
	// Node is the element the URL was found on. It is a locator for
	// rewriting, not an owner of the node.
	Node *html.Node
}

// Rewrite instructs the finalize pass to point a media element at Value.
type Rewrite struct {
	Ref   MediaRef
	Value string
}

// Resolution is the outcome of materializing a sequence of media references.
type Resolution struct {
	// Paths maps each remote URL to its local relative path, or to itself
	// when the download failed. A URL referenced more than once maps to
	// the path of its last occurrence.
	Paths map[string]string

	// Rewrites holds one instruction per reference, in reference order.
	Rewrites []Rewrite

	Downloaded int
	Failed     int
}

// RemoteRewrites returns rewrites pointing every reference at its remote URL.
// Used when media are not materialized so lazily-loaded elements still render.
func RemoteRewrites(refs []MediaRef) []Rewrite {
	rewrites := make([]Rewrite, len(refs))
	for i, ref := range refs {
		rewrites[i] = Rewrite{Ref: ref, Value: ref.URL}
	}
	return rewrites
}

// Locator finds media references inside a content root.
type Locator interface {
	// Locate returns media references in document order. References are
	// not deduplicated.
	Locate(content *html.Node) []MediaRef

	// Apply points each rewritten element at its new source.
	Apply(rewrites []Rewrite)
}

// Materializer downloads media references into a local folder.
type Materializer interface {
	// Materialize downloads refs into dir and returns how each reference
	// resolved. Individual download failures fall back to the remote URL
	// and never fail the call. Returns EWRITE if dir cannot be created.
	// An empty refs slice is a no-op that creates nothing.
	Materialize(ctx context.Context, refs []MediaRef, dir string) (*Resolution, error)
}

// knownMediaExts lists extensions kept from URL paths.
var knownMediaExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".mp4":  true,
	".mov":  true,
	".avi":  true,
}

// MediaExtension derives a file extension from the URL path, falling back
// to .jpg for images and .mp4 for videos.
func MediaExtension(rawURL string, kind MediaKind) string {
	if u, err := url.Parse(rawURL); err == nil {
		ext := strings.ToLower(path.Ext(u.Path))
		if knownMediaExts[ext] {
			return ext
		}
	}
	switch kind {
	case MediaImage:
		return ".jpg"
	case MediaVideo:
		return ".mp4"
	}
	return ""
}

// MediaFilename returns the local file name for the index-th (1-based)
// reference of a conversion, e.g. image_001.png.
func MediaFilename(ref MediaRef, index int) string {
	return fmt.Sprintf("%s_%03d%s", ref.Kind, index, MediaExtension(ref.URL, ref.Kind))
}

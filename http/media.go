package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pagemd"
)

// DefaultMediaTimeout bounds a single media download.
const DefaultMediaTimeout = 30 * time.Second

// Ensure MediaFetcher implements pagemd.MediaFetcher at compile time.
var _ pagemd.MediaFetcher = (*MediaFetcher)(nil)

// MediaFetcher downloads images and videos.
type MediaFetcher struct {
	client    *http.Client
	userAgent string
	referer   string
}

// MediaOption configures a MediaFetcher.
type MediaOption func(*MediaFetcher)

// WithMediaTimeout sets the timeout for each download.
func WithMediaTimeout(d time.Duration) MediaOption {
	return func(m *MediaFetcher) {
		m.client.Timeout = d
	}
}

// WithMediaUserAgent overrides DefaultUserAgent.
func WithMediaUserAgent(ua string) MediaOption {
	return func(m *MediaFetcher) {
		m.userAgent = ua
	}
}

// WithReferer sets the Referer header. Image CDNs such as WeChat's reject
// hotlinked requests without one.
func WithReferer(ref string) MediaOption {
	return func(m *MediaFetcher) {
		m.referer = ref
	}
}

// NewMediaFetcher creates a new MediaFetcher.
func NewMediaFetcher(opts ...MediaOption) *MediaFetcher {
	m := &MediaFetcher{
		client:    &http.Client{Timeout: DefaultMediaTimeout},
		userAgent: DefaultUserAgent,
		referer:   DefaultHeaders()["Referer"],
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FetchMedia streams the resource at url into w.
func (m *MediaFetcher) FetchMedia(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, pagemd.Errorf(pagemd.EINVALID, "invalid media URL %s: %v", url, err)
	}
	req.Header.Set("User-Agent", m.userAgent)
	if m.referer != "" {
		req.Header.Set("Referer", m.referer)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, pagemd.Errorf(pagemd.EFETCH, "failed to download %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return 0, pagemd.Errorf(pagemd.EFETCH, "failed to download %s: %v", url, err)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, pagemd.Errorf(pagemd.EFETCH, "failed to download %s: %v", url, err)
	}
	return n, nil
}

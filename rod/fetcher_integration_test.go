//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<div id="js_content">Loading...</div>
<script>
document.getElementById('js_content').textContent = 'JavaScript Rendered';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher := rod.NewFetcher(rod.WithRenderDelay(0))
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "JavaScript Rendered")
	assert.NotContains(t, html, "Loading...")
	assert.NotZero(t, fetcher.LauncherPID())
}

func TestFetcher_Fetch_SendsUserAgentAndHeaders(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var ua, referer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		if r.URL.Path == "/" {
			ua = r.Header.Get("User-Agent")
			referer = r.Header.Get("Referer")
		}
		mu.Unlock()
		_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer srv.Close()

	fetcher := rod.NewFetcher(
		rod.WithRenderDelay(0),
		rod.WithUserAgent("pagemd-browser-test"),
		rod.WithExtraHeaders(map[string]string{"Referer": "https://mp.weixin.qq.com/"}),
	)
	defer fetcher.Close()

	_, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "pagemd-browser-test", ua)
	assert.Equal(t, "https://mp.weixin.qq.com/", referer)
}

func TestFetcher_Fetch_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	fetcher := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
	defer fetcher.Close()

	_, err := fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, pagemd.EFETCH, pagemd.ErrorCode(err))
}

func TestBrowserManager_RecyclesAfterMaxPages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>page</body></html>`))
	}))
	defer srv.Close()

	manager := rod.NewBrowserManager(rod.WithMaxPages(1))
	fetcher := rod.NewFetcher(rod.WithManager(manager), rod.WithRenderDelay(0))
	defer fetcher.Close()

	_, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	first := manager.LauncherPID()

	_, err = fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.NotEqual(t, first, manager.LauncherPID())
}

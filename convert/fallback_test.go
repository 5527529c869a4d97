package convert_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/convert"
	"github.com/fwojciec/pagemd/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticFetcher(html string, err error, calls *int) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			if calls != nil {
				*calls++
			}
			return html, err
		},
		CloseFn: func() error { return nil },
	}
}

func TestNewChallengeFunc(t *testing.T) {
	t.Parallel()

	isChallenge := convert.NewChallengeFunc([]string{"验证", "未知错误"}, 100)

	t.Run("matches short page with marker", func(t *testing.T) {
		t.Parallel()
		assert.True(t, isChallenge("<html>环境异常，请完成验证</html>"))
	})

	t.Run("ignores page without marker", func(t *testing.T) {
		t.Parallel()
		assert.False(t, isChallenge("<html>hello</html>"))
	})

	t.Run("ignores large page with marker", func(t *testing.T) {
		t.Parallel()
		page := "<html>验证" + strings.Repeat("x", 200) + "</html>"
		assert.False(t, isChallenge(page))
	})

	t.Run("non-positive size matches any length", func(t *testing.T) {
		t.Parallel()
		fn := convert.NewChallengeFunc([]string{"未知错误"}, 0)
		assert.True(t, fn(strings.Repeat("x", 10000)+"未知错误"))
	})
}

func TestFallbackFetcher_Fetch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	challenge := convert.NewChallengeFunc([]string{"验证"}, 5000)

	t.Run("returns primary page without touching browser", func(t *testing.T) {
		t.Parallel()

		var browserCalls int
		f := convert.NewFallbackFetcher(
			staticFetcher("<p>article</p>", nil, nil),
			staticFetcher("", nil, &browserCalls),
			convert.WithChallengeFunc(challenge),
		)

		html, err := f.Fetch(ctx, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "<p>article</p>", html)
		assert.Zero(t, browserCalls)
	})

	t.Run("uses browser when primary fails", func(t *testing.T) {
		t.Parallel()

		f := convert.NewFallbackFetcher(
			staticFetcher("", pagemd.Errorf(pagemd.EFETCH, "boom"), nil),
			staticFetcher("<p>rendered</p>", nil, nil),
		)

		html, err := f.Fetch(ctx, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "<p>rendered</p>", html)
	})

	t.Run("returns primary error when browser also fails", func(t *testing.T) {
		t.Parallel()

		primaryErr := pagemd.Errorf(pagemd.EFETCH, "primary down")
		f := convert.NewFallbackFetcher(
			staticFetcher("", primaryErr, nil),
			staticFetcher("", errors.New("no chrome"), nil),
		)

		_, err := f.Fetch(ctx, "https://example.com/a")

		require.ErrorIs(t, err, primaryErr)
		assert.Equal(t, "primary down", pagemd.ErrorMessage(err))
	})

	t.Run("uses browser for verification page", func(t *testing.T) {
		t.Parallel()

		f := convert.NewFallbackFetcher(
			staticFetcher("<p>请完成验证</p>", nil, nil),
			staticFetcher("<p>real</p>", nil, nil),
			convert.WithChallengeFunc(challenge),
		)

		html, err := f.Fetch(ctx, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "<p>real</p>", html)
	})

	t.Run("keeps verification page when browser fails", func(t *testing.T) {
		t.Parallel()

		f := convert.NewFallbackFetcher(
			staticFetcher("<p>请完成验证</p>", nil, nil),
			staticFetcher("", errors.New("no chrome"), nil),
			convert.WithChallengeFunc(challenge),
		)

		html, err := f.Fetch(ctx, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "<p>请完成验证</p>", html)
	})

	t.Run("without browser returns primary result", func(t *testing.T) {
		t.Parallel()

		primaryErr := errors.New("down")
		f := convert.NewFallbackFetcher(staticFetcher("", primaryErr, nil), nil)

		_, err := f.Fetch(ctx, "https://example.com/a")

		require.ErrorIs(t, err, primaryErr)
	})

	t.Run("forced browser skips primary", func(t *testing.T) {
		t.Parallel()

		var primaryCalls int
		f := convert.NewFallbackFetcher(
			staticFetcher("<p>plain</p>", nil, &primaryCalls),
			staticFetcher("<p>rendered</p>", nil, nil),
			convert.WithForceBrowser(true),
		)

		html, err := f.Fetch(ctx, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "<p>rendered</p>", html)
		assert.Zero(t, primaryCalls)
	})

	t.Run("forced browser without browser is invalid", func(t *testing.T) {
		t.Parallel()

		f := convert.NewFallbackFetcher(staticFetcher("", nil, nil), nil, convert.WithForceBrowser(true))

		_, err := f.Fetch(ctx, "https://example.com/a")

		assert.Equal(t, pagemd.EINVALID, pagemd.ErrorCode(err))
	})
}

func TestFallbackFetcher_Close(t *testing.T) {
	t.Parallel()

	primaryErr := errors.New("primary close")
	browserErr := errors.New("browser close")
	f := convert.NewFallbackFetcher(
		&mock.Fetcher{CloseFn: func() error { return primaryErr }},
		&mock.Fetcher{CloseFn: func() error { return browserErr }},
	)

	err := f.Close()

	require.ErrorIs(t, err, primaryErr)
	require.ErrorIs(t, err, browserErr)
}

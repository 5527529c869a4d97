package goquery_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/pagemd/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCarousel(t *testing.T) {
	t.Parallel()

	t.Run("reads title and urls", func(t *testing.T) {
		t.Parallel()

		src := `window.msg_title = "Trip";
window.picture_page_info_list = [{cdn_url: 'https://a/1.jpg'}, {cdn_url:'https://a/2.jpg'}];`

		c, err := goquery.ParseCarousel(src)

		require.NoError(t, err)
		assert.Equal(t, "Trip", c.Title)
		assert.Equal(t, []string{"https://a/1.jpg", "https://a/2.jpg"}, c.ImageURLs)
	})

	t.Run("missing title is empty", func(t *testing.T) {
		t.Parallel()

		c, err := goquery.ParseCarousel(`window.picture_page_info_list = [{cdn_url: 'https://a/1.jpg'}];`)

		require.NoError(t, err)
		assert.Empty(t, c.Title)
	})

	t.Run("list spanning lines", func(t *testing.T) {
		t.Parallel()

		src := "window.picture_page_info_list = [\n {\n cdn_url: 'https://a/1.jpg'\n }\n];"

		c, err := goquery.ParseCarousel(src)

		require.NoError(t, err)
		assert.Len(t, c.ImageURLs, 1)
	})

	t.Run("missing list", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ParseCarousel(`window.msg_title = 'x';`)

		assert.True(t, errors.Is(err, goquery.ErrScriptFormat))
	})

	t.Run("list without urls", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ParseCarousel(`window.picture_page_info_list = [{width: 1}];`)

		assert.True(t, errors.Is(err, goquery.ErrScriptFormat))
	})
}

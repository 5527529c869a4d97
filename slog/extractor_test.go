package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/mock"
	pmslog "github.com/fwojciec/pagemd/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs origin and title", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(origin pagemd.Origin, html string) (*pagemd.Article, error) {
				return &pagemd.Article{Title: "Hello", Origin: origin}, nil
			},
		}

		article, err := pmslog.NewLoggingExtractor(inner, logger).Extract(pagemd.OriginZhihu, "<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "Hello", article.Title)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "origin=zhihu")
		assert.Contains(t, output, "title=Hello")
	})

	t.Run("logs error without article", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(pagemd.Origin, string) (*pagemd.Article, error) {
				return nil, pagemd.Errorf(pagemd.ENOTFOUND, "no content")
			},
		}

		_, err := pmslog.NewLoggingExtractor(inner, logger).Extract(pagemd.OriginGeneric, "<html></html>")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "no content")
	})
}

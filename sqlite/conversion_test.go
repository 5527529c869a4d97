package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionService_CreateConversion(t *testing.T) {
	t.Parallel()

	t.Run("creates conversion with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConversionService(db)
		ctx := context.Background()

		c := &pagemd.Conversion{
			SourceURL:     "https://mp.weixin.qq.com/s/abc",
			Origin:        pagemd.OriginWeChat,
			Title:         "Hello",
			OutputPath:    "output/Hello.md",
			MediaCount:    3,
			MediaFailed:   1,
			DownloadMedia: true,
		}

		err := svc.CreateConversion(ctx, c, "# Hello")
		require.NoError(t, err)

		assert.NotEmpty(t, c.ID)
		assert.Len(t, c.ContentHash, 16)
		assert.False(t, c.CreatedAt.IsZero())

		got, err := svc.FindConversionByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.SourceURL, got.SourceURL)
		assert.Equal(t, pagemd.OriginWeChat, got.Origin)
		assert.Equal(t, "Hello", got.Title)
		assert.Equal(t, "output/Hello.md", got.OutputPath)
		assert.Equal(t, c.ContentHash, got.ContentHash)
		assert.Equal(t, 3, got.MediaCount)
		assert.Equal(t, 1, got.MediaFailed)
		assert.True(t, got.DownloadMedia)
		assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("same content hashes the same", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConversionService(db)
		ctx := context.Background()

		a := &pagemd.Conversion{SourceURL: "https://a", OutputPath: "a.md"}
		b := &pagemd.Conversion{SourceURL: "https://b", OutputPath: "b.md"}
		require.NoError(t, svc.CreateConversion(ctx, a, "same"))
		require.NoError(t, svc.CreateConversion(ctx, b, "same"))

		assert.Equal(t, a.ContentHash, b.ContentHash)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("returns error for invalid conversion", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewConversionService(db)

		err := svc.CreateConversion(context.Background(), &pagemd.Conversion{}, "")
		require.Error(t, err)
		assert.Equal(t, pagemd.EINVALID, pagemd.ErrorCode(err))
	})
}

func TestConversionService_FindConversionByID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewConversionService(db)

	_, err := svc.FindConversionByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, pagemd.ENOTFOUND, pagemd.ErrorCode(err))
}

func TestConversionService_FindConversions(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.ConversionService {
		t.Helper()
		db := setupTestDB(t)
		svc := sqlite.NewConversionService(db)
		origins := []pagemd.Origin{pagemd.OriginWeChat, pagemd.OriginZhihu, pagemd.OriginWeChat, pagemd.OriginCSDN}
		for i, origin := range origins {
			c := &pagemd.Conversion{
				SourceURL:  fmt.Sprintf("https://example.com/%d", i),
				Origin:     origin,
				OutputPath: fmt.Sprintf("output/%d.md", i),
			}
			require.NoError(t, svc.CreateConversion(context.Background(), c, "x"))
		}
		return svc
	}

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)

		got, err := svc.FindConversions(context.Background(), pagemd.ConversionFilter{})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "https://example.com/3", got[0].SourceURL)
		assert.Equal(t, "https://example.com/0", got[3].SourceURL)
	})

	t.Run("filters by origin", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		origin := pagemd.OriginWeChat

		got, err := svc.FindConversions(context.Background(), pagemd.ConversionFilter{Origin: &origin})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, c := range got {
			assert.Equal(t, pagemd.OriginWeChat, c.Origin)
		}
	})

	t.Run("filters by source url", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		u := "https://example.com/1"

		got, err := svc.FindConversions(context.Background(), pagemd.ConversionFilter{SourceURL: &u})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, pagemd.OriginZhihu, got[0].Origin)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)

		got, err := svc.FindConversions(context.Background(), pagemd.ConversionFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "https://example.com/2", got[0].SourceURL)
		assert.Equal(t, "https://example.com/1", got[1].SourceURL)
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)

		got, err := svc.FindConversions(context.Background(), pagemd.ConversionFilter{Offset: 3})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "https://example.com/0", got[0].SourceURL)
	})
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fwojciec/pagemd"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagemd.ConversionService = (*ConversionService)(nil)

var conversionColumns = []string{
	"id", "source_url", "origin", "title", "output_path", "content_hash",
	"media_count", "media_failed", "download_media", "created_at",
}

// ConversionService implements pagemd.ConversionService using SQLite.
type ConversionService struct {
	db *DB
}

// NewConversionService creates a new ConversionService.
func NewConversionService(db *DB) *ConversionService {
	return &ConversionService{db: db}
}

// CreateConversion records a conversion.
func (s *ConversionService) CreateConversion(ctx context.Context, c *pagemd.Conversion, content string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC().Truncate(time.Second)
	c.ContentHash = hashContent(content)

	query, args, err := sq.Insert("conversions").
		Columns(conversionColumns...).
		Values(c.ID, c.SourceURL, string(c.Origin), c.Title, c.OutputPath, c.ContentHash,
			c.MediaCount, c.MediaFailed, c.DownloadMedia, c.CreatedAt.Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// FindConversionByID retrieves a conversion by ID.
func (s *ConversionService) FindConversionByID(ctx context.Context, id string) (*pagemd.Conversion, error) {
	query, args, err := sq.Select(conversionColumns...).
		From("conversions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanConversion(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagemd.Errorf(pagemd.ENOTFOUND, "conversion not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindConversions retrieves conversions matching the filter, newest first.
func (s *ConversionService) FindConversions(ctx context.Context, filter pagemd.ConversionFilter) ([]*pagemd.Conversion, error) {
	b := sq.Select(conversionColumns...).
		From("conversions").
		OrderBy("created_at DESC", "rowid DESC")

	if filter.SourceURL != nil {
		b = b.Where(sq.Eq{"source_url": *filter.SourceURL})
	}
	if filter.Origin != nil {
		b = b.Where(sq.Eq{"origin": string(*filter.Origin)})
	}

	// SQLite only accepts OFFSET after a LIMIT.
	switch {
	case filter.Limit > 0:
		b = b.Limit(uint64(filter.Limit))
	case filter.Offset > 0:
		b = b.Limit(math.MaxInt64)
	}
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversions []*pagemd.Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, c)
	}

	return conversions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversion(row scanner) (*pagemd.Conversion, error) {
	var c pagemd.Conversion
	var origin, createdAt string

	if err := row.Scan(&c.ID, &c.SourceURL, &origin, &c.Title, &c.OutputPath, &c.ContentHash,
		&c.MediaCount, &c.MediaFailed, &c.DownloadMedia, &createdAt); err != nil {
		return nil, err
	}
	c.Origin = pagemd.Origin(origin)

	var err error
	c.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &c, nil
}

package mock

import (
	"context"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.ConversionService = (*ConversionService)(nil)

// ConversionService is a mock implementation of pagemd.ConversionService.
type ConversionService struct {
	CreateConversionFn   func(ctx context.Context, c *pagemd.Conversion, content string) error
	FindConversionByIDFn func(ctx context.Context, id string) (*pagemd.Conversion, error)
	FindConversionsFn    func(ctx context.Context, filter pagemd.ConversionFilter) ([]*pagemd.Conversion, error)
}

func (s *ConversionService) CreateConversion(ctx context.Context, c *pagemd.Conversion, content string) error {
	return s.CreateConversionFn(ctx, c, content)
}

func (s *ConversionService) FindConversionByID(ctx context.Context, id string) (*pagemd.Conversion, error) {
	return s.FindConversionByIDFn(ctx, id)
}

func (s *ConversionService) FindConversions(ctx context.Context, filter pagemd.ConversionFilter) ([]*pagemd.Conversion, error) {
	return s.FindConversionsFn(ctx, filter)
}

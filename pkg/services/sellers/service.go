package sellers

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/seller-atlas/pkg/adapters"
	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/de-tools/seller-atlas/pkg/services/aggregation"
	"github.com/de-tools/seller-atlas/pkg/store/duckdb/orderline"
	"github.com/rs/zerolog"
)

// ErrNoData is returned when the store holds no approved order lines.
var ErrNoData = errors.New("no approved order lines")

type Service interface {
	// Period is the span of approval days available in the store.
	Period(ctx context.Context) (domain.DateRange, error)
	// Summary runs the aggregation pipeline over the lines approved in rng.
	Summary(ctx context.Context, rng domain.DateRange) (*aggregation.Result, error)
}

type sellerService struct {
	store    orderline.Store
	pipeline *aggregation.Pipeline
}

func NewService(store orderline.Store, opts aggregation.Options) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("order line store is nil")
	}
	return &sellerService{
		store:    store,
		pipeline: aggregation.NewPipeline(opts),
	}, nil
}

func (s *sellerService) Period(ctx context.Context) (domain.DateRange, error) {
	table, err := s.load(ctx)
	if err != nil {
		return domain.DateRange{}, err
	}
	rng, ok := table.Bounds()
	if !ok {
		return domain.DateRange{}, ErrNoData
	}
	return rng, nil
}

func (s *sellerService) Summary(ctx context.Context, rng domain.DateRange) (*aggregation.Result, error) {
	table, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.pipeline.Run(ctx, table, rng)
}

func (s *sellerService) load(ctx context.Context) (domain.Table, error) {
	records, err := s.store.GetOrderLines(ctx)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to load order lines: %w", err)
	}

	table, err := adapters.MapStoreOrderLinesToDomainTable(records)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to build order line table: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Int("lines", table.Len()).Msg("order lines loaded")
	return table, nil
}

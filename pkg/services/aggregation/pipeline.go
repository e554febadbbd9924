package aggregation

import (
	"context"
	"time"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const DefaultTopSellers = 3

type Options struct {
	// TopSellers is how many of the best-ranked sellers get a monthly series.
	TopSellers int
}

// Result holds every derived table computed from one filtered view.
type Result struct {
	Range      domain.DateRange
	Lines      int
	ByCity     []domain.SellerGeoCount
	ByState    []domain.SellerGeoCount
	Revenue    []domain.SellerRevenueSummary
	TopSellers []string
	Monthly    []domain.SellerSeries
	RFM        []domain.RFMRecord
	RFMSummary domain.RFMSummary
}

// Pipeline derives all seller tables from an order-line table. It keeps no
// state between runs and is safe for concurrent use.
type Pipeline struct {
	opts Options
}

func NewPipeline(opts Options) *Pipeline {
	if opts.TopSellers <= 0 {
		opts.TopSellers = DefaultTopSellers
	}
	return &Pipeline{opts: opts}
}

// Run filters the table once by approval date and aggregates that view.
func (p *Pipeline) Run(ctx context.Context, table domain.Table, rng domain.DateRange) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	started := time.Now()

	view, err := table.FilterByApprovalDate(rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	res := &Result{Range: rng, Lines: view.Len()}
	if view.Len() == 0 {
		logger.Warn().
			Str("start", rng.Start.String()).
			Str("end", rng.End.String()).
			Msg("no order lines in range")
	}

	// Each goroutine owns a distinct field of res.
	var g errgroup.Group
	g.Go(func() error {
		res.ByCity = ByCity(view)
		return nil
	})
	g.Go(func() error {
		res.ByState = ByState(view)
		return nil
	})
	g.Go(func() error {
		res.RFM = ComputeRFM(view)
		res.RFMSummary = SummarizeRFM(res.RFM)
		return nil
	})
	g.Go(func() error {
		res.Revenue = RankByRevenue(view)
		res.TopSellers = TopN(res.Revenue, p.opts.TopSellers)
		res.Monthly = p.monthly(view, res.TopSellers)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("lines", res.Lines).
		Int("sellers", len(res.Revenue)).
		Dur("elapsed", time.Since(started)).
		Msg("seller tables computed")
	return res, nil
}

func (p *Pipeline) monthly(view domain.Table, sellers []string) []domain.SellerSeries {
	series := make([]domain.SellerSeries, len(sellers))

	var g errgroup.Group
	for i, id := range sellers {
		g.Go(func() error {
			series[i] = domain.SellerSeries{SellerID: id, Buckets: MonthlySeries(view, id)}
			return nil
		})
	}
	_ = g.Wait()
	return series
}

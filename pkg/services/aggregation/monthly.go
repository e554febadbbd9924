package aggregation

import (
	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// MonthlySeries buckets a seller's lines by approval month. The series runs
// from the seller's first to last active month with empty months zero-filled.
// A seller without lines gets an empty series.
func MonthlySeries(t domain.Table, sellerID string) []domain.MonthlyBucket {
	byMonth := make(map[domain.MonthKey]*sellerTotals)
	var (
		first, last domain.MonthKey
		seen        bool
	)

	t.FilterBySeller(sellerID).Each(func(l domain.OrderLine) {
		m := domain.MonthOf(l.ApprovalDate())
		st, ok := byMonth[m]
		if !ok {
			st = newSellerTotals()
			byMonth[m] = st
		}
		st.add(l)

		switch {
		case !seen:
			first, last, seen = m, m, true
		case m.Before(first):
			first = m
		case last.Before(m):
			last = m
		}
	})

	if !seen {
		return []domain.MonthlyBucket{}
	}

	series := make([]domain.MonthlyBucket, 0, first.MonthsUntil(last)+1)
	for m := first; !last.Before(m); m = m.Next() {
		bucket := domain.MonthlyBucket{Month: m, Revenue: decimal.Zero}
		if st, ok := byMonth[m]; ok {
			bucket.OrderCount = len(st.orders)
			bucket.Revenue = st.revenue
		}
		series = append(series, bucket)
	}
	return series
}

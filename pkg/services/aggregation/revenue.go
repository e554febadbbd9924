package aggregation

import (
	"sort"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// sellerTotals accumulates distinct orders and revenue for one group.
type sellerTotals struct {
	orders  map[string]struct{}
	revenue decimal.Decimal
}

func newSellerTotals() *sellerTotals {
	return &sellerTotals{orders: make(map[string]struct{}), revenue: decimal.Zero}
}

func (s *sellerTotals) add(l domain.OrderLine) {
	s.orders[l.OrderID] = struct{}{}
	s.revenue = s.revenue.Add(l.Price)
}

func totalsBySeller(t domain.Table) map[string]*sellerTotals {
	totals := make(map[string]*sellerTotals)
	t.Each(func(l domain.OrderLine) {
		st, ok := totals[l.SellerID]
		if !ok {
			st = newSellerTotals()
			totals[l.SellerID] = st
		}
		st.add(l)
	})
	return totals
}

// RankByRevenue summarizes every seller, highest revenue first and ties
// broken by seller id.
func RankByRevenue(t domain.Table) []domain.SellerRevenueSummary {
	totals := totalsBySeller(t)

	ranked := make([]domain.SellerRevenueSummary, 0, len(totals))
	for id, st := range totals {
		ranked = append(ranked, domain.SellerRevenueSummary{
			SellerID:   id,
			OrderCount: len(st.orders),
			Revenue:    st.revenue,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].Revenue.Cmp(ranked[j].Revenue); c != 0 {
			return c > 0
		}
		return ranked[i].SellerID < ranked[j].SellerID
	})
	return ranked
}

// Best returns the first k sellers of a ranking.
func Best(ranked []domain.SellerRevenueSummary, k int) []domain.SellerRevenueSummary {
	out := make([]domain.SellerRevenueSummary, clamp(k, len(ranked)))
	copy(out, ranked)
	return out
}

// Worst returns the last k sellers of a ranking, lowest revenue first.
func Worst(ranked []domain.SellerRevenueSummary, k int) []domain.SellerRevenueSummary {
	n := clamp(k, len(ranked))
	out := make([]domain.SellerRevenueSummary, n)
	copy(out, ranked[len(ranked)-n:])
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c < 0
		}
		return out[i].SellerID < out[j].SellerID
	})
	return out
}

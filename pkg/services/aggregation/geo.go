package aggregation

import (
	"sort"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
)

// ByCity counts distinct sellers per seller city.
func ByCity(t domain.Table) []domain.SellerGeoCount {
	return countSellersBy(t, func(l domain.OrderLine) string { return l.SellerCity })
}

// ByState counts distinct sellers per seller state.
func ByState(t domain.Table) []domain.SellerGeoCount {
	return countSellersBy(t, func(l domain.OrderLine) string { return l.SellerState })
}

func countSellersBy(t domain.Table, location func(domain.OrderLine) string) []domain.SellerGeoCount {
	sellers := make(map[string]map[string]struct{})
	t.Each(func(l domain.OrderLine) {
		loc := location(l)
		set, ok := sellers[loc]
		if !ok {
			set = make(map[string]struct{})
			sellers[loc] = set
		}
		set[l.SellerID] = struct{}{}
	})

	counts := make([]domain.SellerGeoCount, 0, len(sellers))
	for loc, set := range sellers {
		counts = append(counts, domain.SellerGeoCount{Location: loc, SellerCount: len(set)})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Location < counts[j].Location
	})
	return counts
}

// TopLocations returns the k locations with the most sellers, ties by name.
func TopLocations(counts []domain.SellerGeoCount, k int) []domain.SellerGeoCount {
	ranked := make([]domain.SellerGeoCount, len(counts))
	copy(ranked, counts)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].SellerCount != ranked[j].SellerCount {
			return ranked[i].SellerCount > ranked[j].SellerCount
		}
		return ranked[i].Location < ranked[j].Location
	})
	return ranked[:clamp(k, len(ranked))]
}

func clamp(k, n int) int {
	if k < 0 {
		return 0
	}
	if k > n {
		return n
	}
	return k
}

package aggregation

import "github.com/de-tools/seller-atlas/pkg/models/domain"

// TopN returns the ids of the first n ranked sellers.
func TopN(ranked []domain.SellerRevenueSummary, n int) []string {
	ids := make([]string, 0, clamp(n, len(ranked)))
	for _, s := range ranked[:clamp(n, len(ranked))] {
		ids = append(ids, s.SellerID)
	}
	return ids
}

package aggregation

import (
	"sort"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// ComputeRFM scores every seller by recency, frequency and monetary value.
// Recency is measured against the latest approval day of the whole table,
// so the most recent seller always has a recency of zero. Records are
// returned by seller id; an empty table yields no records.
func ComputeRFM(t domain.Table) []domain.RFMRecord {
	reference, ok := t.Bounds()
	if !ok {
		return []domain.RFMRecord{}
	}

	totals := make(map[string]*sellerTotals)
	latest := make(map[string]domain.Date)
	t.Each(func(l domain.OrderLine) {
		st, ok := totals[l.SellerID]
		if !ok {
			st = newSellerTotals()
			totals[l.SellerID] = st
		}
		st.add(l)

		d := l.ApprovalDate()
		if prev, ok := latest[l.SellerID]; !ok || d.After(prev) {
			latest[l.SellerID] = d
		}
	})

	records := make([]domain.RFMRecord, 0, len(totals))
	for id, st := range totals {
		records = append(records, domain.RFMRecord{
			SellerID:    id,
			RecencyDays: latest[id].DaysUntil(reference.End),
			Frequency:   len(st.orders),
			Monetary:    st.revenue,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].SellerID < records[j].SellerID
	})
	return records
}

// SummarizeRFM averages recency (1 decimal), frequency and monetary
// (2 decimals). The zero summary is returned for no records.
func SummarizeRFM(records []domain.RFMRecord) domain.RFMSummary {
	if len(records) == 0 {
		return domain.RFMSummary{
			AvgRecencyDays: decimal.Zero,
			AvgFrequency:   decimal.Zero,
			AvgMonetary:    decimal.Zero,
		}
	}

	var recency, frequency int64
	monetary := decimal.Zero
	for _, r := range records {
		recency += int64(r.RecencyDays)
		frequency += int64(r.Frequency)
		monetary = monetary.Add(r.Monetary)
	}

	n := decimal.NewFromInt(int64(len(records)))
	return domain.RFMSummary{
		Sellers:        len(records),
		AvgRecencyDays: decimal.NewFromInt(recency).DivRound(n, 1),
		AvgFrequency:   decimal.NewFromInt(frequency).DivRound(n, 2),
		AvgMonetary:    monetary.DivRound(n, 2),
	}
}

// RFMLeaders picks the k best sellers along each axis: most recent, most
// frequent and highest monetary value. Ties go to the lower seller id.
func RFMLeaders(records []domain.RFMRecord, k int) domain.RFMLeaders {
	return domain.RFMLeaders{
		ByRecency: leading(records, k, func(a, b domain.RFMRecord) int {
			return b.RecencyDays - a.RecencyDays
		}),
		ByFrequency: leading(records, k, func(a, b domain.RFMRecord) int {
			return a.Frequency - b.Frequency
		}),
		ByMonetary: leading(records, k, func(a, b domain.RFMRecord) int {
			return a.Monetary.Cmp(b.Monetary)
		}),
	}
}

// leading sorts a copy so that records with a positive better(a, b) come first.
func leading(records []domain.RFMRecord, k int, better func(a, b domain.RFMRecord) int) []domain.RFMRecord {
	sorted := make([]domain.RFMRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if c := better(sorted[i], sorted[j]); c != 0 {
			return c > 0
		}
		return sorted[i].SellerID < sorted[j].SellerID
	})
	return sorted[:clamp(k, len(sorted))]
}

package adapters

import (
	"fmt"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/de-tools/seller-atlas/pkg/services/aggregation"
	"github.com/shopspring/decimal"
)

// MapResultToDomainReport lays out the pipeline result as report sections.
func MapResultToDomainReport(res *aggregation.Result, limits Limits, currency string) *domain.Report {
	total := decimal.Zero
	for _, s := range res.Revenue {
		total = total.Add(s.Revenue)
	}

	return &domain.Report{
		Title:       "Sellers Dashboard",
		Period:      res.Range,
		Lines:       res.Lines,
		TotalAmount: total,
		Currency:    currency,
		Sections: []domain.ReportSection{
			locationSection(fmt.Sprintf("Top %d States with the Most Sellers", limits.States), res.ByState, limits.States),
			locationSection(fmt.Sprintf("Top %d Cities with the Most Sellers", limits.Cities), res.ByCity, limits.Cities),
			revenueSection("Best Sellers by Revenue", aggregation.Best(res.Revenue, limits.BestWorst), currency),
			revenueSection("Worst Sellers by Revenue", aggregation.Worst(res.Revenue, limits.BestWorst), currency),
			monthlySection(res.Monthly, currency),
			rfmSection(res.RFM, res.RFMSummary, limits.RFMLeaders, currency),
		},
	}
}

func locationSection(title string, counts []domain.SellerGeoCount, k int) domain.ReportSection {
	section := domain.ReportSection{
		Title:   title,
		Summary: map[string]interface{}{"Locations": len(counts)},
	}
	for _, c := range aggregation.TopLocations(counts, k) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:  c.Location,
			Value: c.SellerCount,
			Unit:  "sellers",
		})
	}
	return section
}

func revenueSection(title string, summaries []domain.SellerRevenueSummary, currency string) domain.ReportSection {
	section := domain.ReportSection{Title: title}
	for _, s := range summaries {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        s.SellerID,
			Value:       s.Revenue.StringFixed(2),
			Unit:        currency,
			Description: fmt.Sprintf("%d orders", s.OrderCount),
		})
	}
	return section
}

func monthlySection(series []domain.SellerSeries, currency string) domain.ReportSection {
	section := domain.ReportSection{
		Title:   fmt.Sprintf("Monthly Revenue and Approved Orders of the Top %d Sellers", len(series)),
		Summary: map[string]interface{}{"Sellers": len(series)},
	}
	for _, s := range series {
		for _, b := range s.Buckets {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        fmt.Sprintf("%s %s", s.SellerID, b.Month),
				Value:       b.Revenue.StringFixed(2),
				Unit:        currency,
				Description: fmt.Sprintf("%d orders approved", b.OrderCount),
			})
		}
	}
	return section
}

func rfmSection(records []domain.RFMRecord, summary domain.RFMSummary, k int, currency string) domain.ReportSection {
	section := domain.ReportSection{
		Title: "Best Sellers Based on RFM Parameters",
		Summary: map[string]interface{}{
			"Sellers":                summary.Sellers,
			"Average Recency (days)": summary.AvgRecencyDays.StringFixed(1),
			"Average Frequency":      summary.AvgFrequency.StringFixed(2),
			"Average Monetary":       fmt.Sprintf("%s %s", currency, summary.AvgMonetary.StringFixed(2)),
		},
	}

	leaders := aggregation.RFMLeaders(records, k)
	for _, r := range leaders.ByRecency {
		section.Details = append(section.Details, domain.ReportDetail{
			Name: r.SellerID, Value: r.RecencyDays, Unit: "days", Description: "by recency",
		})
	}
	for _, r := range leaders.ByFrequency {
		section.Details = append(section.Details, domain.ReportDetail{
			Name: r.SellerID, Value: r.Frequency, Unit: "orders", Description: "by frequency",
		})
	}
	for _, r := range leaders.ByMonetary {
		section.Details = append(section.Details, domain.ReportDetail{
			Name: r.SellerID, Value: r.Monetary.StringFixed(2), Unit: currency, Description: "by monetary",
		})
	}
	return section
}

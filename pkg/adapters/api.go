package adapters

import (
	"github.com/de-tools/seller-atlas/pkg/models/api"
	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/de-tools/seller-atlas/pkg/services/aggregation"
)

func MapDomainPeriodToAPI(rng domain.DateRange) api.Period {
	return api.Period{
		Start: rng.Start.String(),
		End:   rng.End.String(),
		Days:  rng.Days(),
	}
}

func MapLocationsToAPI(rng domain.DateRange, counts []domain.SellerGeoCount, k int) api.Locations {
	top := aggregation.TopLocations(counts, k)
	out := make([]api.LocationCount, 0, len(top))
	for _, c := range top {
		out = append(out, api.LocationCount{Location: c.Location, SellerCount: c.SellerCount})
	}
	return api.Locations{Period: MapDomainPeriodToAPI(rng), Locations: out}
}

func MapRevenueToAPI(rng domain.DateRange, ranked []domain.SellerRevenueSummary, k int) api.RevenueRanking {
	return api.RevenueRanking{
		Period: MapDomainPeriodToAPI(rng),
		Best:   mapSellerRevenue(aggregation.Best(ranked, k)),
		Worst:  mapSellerRevenue(aggregation.Worst(ranked, k)),
	}
}

func mapSellerRevenue(summaries []domain.SellerRevenueSummary) []api.SellerRevenue {
	out := make([]api.SellerRevenue, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, api.SellerRevenue{SellerID: s.SellerID, OrderCount: s.OrderCount, Revenue: s.Revenue})
	}
	return out
}

func MapMonthlyToAPI(rng domain.DateRange, series []domain.SellerSeries) api.MonthlyReport {
	out := make([]api.SellerSeries, 0, len(series))
	for _, s := range series {
		months := make([]api.MonthlyPoint, 0, len(s.Buckets))
		for _, b := range s.Buckets {
			months = append(months, api.MonthlyPoint{
				Month:      b.Month.String(),
				OrderCount: b.OrderCount,
				Revenue:    b.Revenue,
			})
		}
		out = append(out, api.SellerSeries{SellerID: s.SellerID, Months: months})
	}
	return api.MonthlyReport{Period: MapDomainPeriodToAPI(rng), Series: out}
}

func MapRFMToAPI(rng domain.DateRange, records []domain.RFMRecord, summary domain.RFMSummary, k int) api.RFMReport {
	leaders := aggregation.RFMLeaders(records, k)
	return api.RFMReport{
		Period:         MapDomainPeriodToAPI(rng),
		Sellers:        summary.Sellers,
		AvgRecencyDays: summary.AvgRecencyDays,
		AvgFrequency:   summary.AvgFrequency,
		AvgMonetary:    summary.AvgMonetary,
		ByRecency:      mapRFMRecords(leaders.ByRecency),
		ByFrequency:    mapRFMRecords(leaders.ByFrequency),
		ByMonetary:     mapRFMRecords(leaders.ByMonetary),
	}
}

func mapRFMRecords(records []domain.RFMRecord) []api.RFMRecord {
	out := make([]api.RFMRecord, 0, len(records))
	for _, r := range records {
		out = append(out, api.RFMRecord{
			SellerID:    r.SellerID,
			RecencyDays: r.RecencyDays,
			Frequency:   r.Frequency,
			Monetary:    r.Monetary,
		})
	}
	return out
}

func MapResultToAPISummary(res *aggregation.Result, limits Limits) api.Summary {
	return api.Summary{
		Period:  MapDomainPeriodToAPI(res.Range),
		Lines:   res.Lines,
		States:  MapLocationsToAPI(res.Range, res.ByState, limits.States),
		Cities:  MapLocationsToAPI(res.Range, res.ByCity, limits.Cities),
		Revenue: MapRevenueToAPI(res.Range, res.Revenue, limits.BestWorst),
		Monthly: MapMonthlyToAPI(res.Range, res.Monthly),
		RFM:     MapRFMToAPI(res.Range, res.RFM, res.RFMSummary, limits.RFMLeaders),
	}
}

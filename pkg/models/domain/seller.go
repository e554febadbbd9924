package domain

import "github.com/shopspring/decimal"

// SellerGeoCount is the number of distinct sellers observed at a location.
type SellerGeoCount struct {
	Location    string
	SellerCount int
}

// SellerRevenueSummary aggregates all lines of one seller.
type SellerRevenueSummary struct {
	SellerID   string
	OrderCount int             // distinct orders
	Revenue    decimal.Decimal // sum of line prices
}

// MonthlyBucket holds one month of a seller's activity.
type MonthlyBucket struct {
	Month      MonthKey
	OrderCount int
	Revenue    decimal.Decimal
}

// SellerSeries is a gap-free monthly series for one seller.
type SellerSeries struct {
	SellerID string
	Buckets  []MonthlyBucket
}

type RFMRecord struct {
	SellerID    string
	RecencyDays int
	Frequency   int
	Monetary    decimal.Decimal
}

// RFMSummary averages RFM records. Sellers == 0 means there was nothing to
// average and every average is zero.
type RFMSummary struct {
	Sellers        int
	AvgRecencyDays decimal.Decimal
	AvgFrequency   decimal.Decimal
	AvgMonetary    decimal.Decimal
}

// RFMLeaders are the top sellers along each RFM axis.
type RFMLeaders struct {
	ByRecency   []RFMRecord
	ByFrequency []RFMRecord
	ByMonetary  []RFMRecord
}

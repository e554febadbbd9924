package api

import "github.com/shopspring/decimal"

type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

type LocationCount struct {
	Location    string `json:"location"`
	SellerCount int    `json:"seller_count"`
}

type SellerRevenue struct {
	SellerID   string          `json:"seller_id"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type RevenueRanking struct {
	Period Period          `json:"period"`
	Best   []SellerRevenue `json:"best"`
	Worst  []SellerRevenue `json:"worst"`
}

type MonthlyPoint struct {
	Month      string          `json:"month"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type SellerSeries struct {
	SellerID string         `json:"seller_id"`
	Months   []MonthlyPoint `json:"months"`
}

type RFMRecord struct {
	SellerID    string          `json:"seller_id"`
	RecencyDays int             `json:"recency_days"`
	Frequency   int             `json:"frequency"`
	Monetary    decimal.Decimal `json:"monetary"`
}

type RFMReport struct {
	Period         Period          `json:"period"`
	Sellers        int             `json:"sellers"`
	AvgRecencyDays decimal.Decimal `json:"avg_recency_days"`
	AvgFrequency   decimal.Decimal `json:"avg_frequency"`
	AvgMonetary    decimal.Decimal `json:"avg_monetary"`
	ByRecency      []RFMRecord     `json:"by_recency"`
	ByFrequency    []RFMRecord     `json:"by_frequency"`
	ByMonetary     []RFMRecord     `json:"by_monetary"`
}

type Locations struct {
	Period    Period          `json:"period"`
	Locations []LocationCount `json:"locations"`
}

type MonthlyReport struct {
	Period Period         `json:"period"`
	Series []SellerSeries `json:"series"`
}

type Summary struct {
	Period  Period         `json:"period"`
	Lines   int            `json:"lines"`
	States  Locations      `json:"states"`
	Cities  Locations      `json:"cities"`
	Revenue RevenueRanking `json:"revenue"`
	Monthly MonthlyReport  `json:"monthly"`
	RFM     RFMReport      `json:"rfm"`
}

type Error struct {
	Error string `json:"error"`
}

package domain

import "github.com/shopspring/decimal"

// Report represents a complete seller performance report
type Report struct {
	Title       string
	Period      DateRange
	Lines       int
	Sections    []ReportSection
	TotalAmount decimal.Decimal
	Currency    string
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents one row of a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}

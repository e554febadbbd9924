package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// OrderLine is one (order, item, seller) row of the marketplace dataset.
type OrderLine struct {
	OrderID     string
	SellerID    string
	SellerCity  string
	SellerState string
	Price       decimal.Decimal
	ApprovedAt  time.Time
}

// ApprovalDate is the calendar day the order was approved.
func (l OrderLine) ApprovalDate() Date {
	return DateOf(l.ApprovedAt)
}

// Table is a validated, read-only set of order lines.
// The zero value is an empty table.
type Table struct {
	lines []OrderLine
}

// NewTable copies lines into a Table, rejecting rows that break the input
// contract. Every offending row is reported in the returned error.
func NewTable(lines []OrderLine) (Table, error) {
	var errs error
	for i, l := range lines {
		errs = multierr.Append(errs, validateLine(i, l))
	}
	if errs != nil {
		return Table{}, errs
	}

	owned := make([]OrderLine, len(lines))
	copy(owned, lines)
	return Table{lines: owned}, nil
}

func validateLine(i int, l OrderLine) error {
	var errs error
	if l.OrderID == "" {
		errs = multierr.Append(errs, &InvalidRecordError{Index: i, Field: "order_id", Reason: "is empty"})
	}
	if l.SellerID == "" {
		errs = multierr.Append(errs, &InvalidRecordError{Index: i, Field: "seller_id", Reason: "is empty"})
	}
	if l.Price.IsNegative() {
		errs = multierr.Append(errs, &InvalidRecordError{Index: i, Field: "price", Reason: "is negative"})
	}
	if l.ApprovedAt.IsZero() {
		errs = multierr.Append(errs, &InvalidRecordError{Index: i, Field: "order_approved_at", Reason: "is missing"})
	}
	return errs
}

func (t Table) Len() int {
	return len(t.lines)
}

// Lines returns a copy of the table rows.
func (t Table) Lines() []OrderLine {
	out := make([]OrderLine, len(t.lines))
	copy(out, t.lines)
	return out
}

// Each calls fn for every row in table order.
func (t Table) Each(fn func(OrderLine)) {
	for _, l := range t.lines {
		fn(l)
	}
}

// FilterByApprovalDate keeps rows approved on a day within [start, end].
func (t Table) FilterByApprovalDate(start, end Date) (Table, error) {
	rng, err := NewDateRange(start, end)
	if err != nil {
		return Table{}, err
	}
	return t.Filter(func(l OrderLine) bool {
		return rng.Contains(l.ApprovalDate())
	}), nil
}

// FilterBySeller keeps the rows of a single seller.
func (t Table) FilterBySeller(sellerID string) Table {
	return t.Filter(func(l OrderLine) bool {
		return l.SellerID == sellerID
	})
}

// Filter returns a new table with the rows matching keep.
func (t Table) Filter(keep func(OrderLine) bool) Table {
	out := make([]OrderLine, 0, len(t.lines))
	for _, l := range t.lines {
		if keep(l) {
			out = append(out, l)
		}
	}
	return Table{lines: out}
}

// Bounds returns the first and last approval day; ok is false for an empty table.
func (t Table) Bounds() (rng DateRange, ok bool) {
	if len(t.lines) == 0 {
		return DateRange{}, false
	}
	first := t.lines[0].ApprovalDate()
	last := first
	for _, l := range t.lines[1:] {
		d := l.ApprovalDate()
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	return DateRange{Start: first, End: last}, true
}

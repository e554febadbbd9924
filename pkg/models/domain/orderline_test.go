package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(order, seller string, price string, approved time.Time) OrderLine {
	return OrderLine{
		OrderID:     order,
		SellerID:    seller,
		SellerCity:  "sao paulo",
		SellerState: "SP",
		Price:       decimal.RequireFromString(price),
		ApprovedAt:  approved,
	}
}

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 30, 0, 0, time.UTC)
}

func day(y int, m time.Month, d int) Date {
	return Date{Year: y, Month: m, Day: d}
}

func TestNewTable(t *testing.T) {
	t.Run("success - copies input", func(t *testing.T) {
		lines := []OrderLine{line("o1", "s1", "10", at(2017, 1, 5, 10))}
		table, err := NewTable(lines)
		require.NoError(t, err)

		lines[0].SellerID = "mutated"
		assert.Equal(t, "s1", table.Lines()[0].SellerID)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("success - empty input", func(t *testing.T) {
		table, err := NewTable(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, table.Len())
	})

	t.Run("error - reports every invalid row", func(t *testing.T) {
		lines := []OrderLine{
			line("o1", "s1", "10", at(2017, 1, 5, 10)),
			line("", "s1", "10", at(2017, 1, 5, 10)),
			line("o3", "s3", "-1", time.Time{}),
		}
		_, err := NewTable(lines)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRecord))

		var recErr *InvalidRecordError
		require.True(t, errors.As(err, &recErr))
		assert.Equal(t, 1, recErr.Index)
		assert.Contains(t, err.Error(), "order line 2: price is negative")
		assert.Contains(t, err.Error(), "order line 2: order_approved_at is missing")
	})
}

func TestTable_FilterByApprovalDate(t *testing.T) {
	table, err := NewTable([]OrderLine{
		line("o1", "s1", "10", at(2017, 1, 31, 23)),
		line("o2", "s1", "20", at(2017, 2, 1, 0)),
		line("o3", "s2", "30", at(2017, 2, 28, 23)),
		line("o4", "s2", "40", at(2017, 3, 1, 0)),
	})
	require.NoError(t, err)

	t.Run("inclusive on both bounds by calendar day", func(t *testing.T) {
		filtered, err := table.FilterByApprovalDate(day(2017, 2, 1), day(2017, 2, 28))
		require.NoError(t, err)

		var ids []string
		filtered.Each(func(l OrderLine) { ids = append(ids, l.OrderID) })
		assert.Equal(t, []string{"o2", "o3"}, ids)
		assert.Equal(t, 4, table.Len(), "source table must not change")
	})

	t.Run("single day range", func(t *testing.T) {
		filtered, err := table.FilterByApprovalDate(day(2017, 1, 31), day(2017, 1, 31))
		require.NoError(t, err)
		assert.Equal(t, 1, filtered.Len())
	})

	t.Run("empty window is not an error", func(t *testing.T) {
		filtered, err := table.FilterByApprovalDate(day(2016, 1, 1), day(2016, 12, 31))
		require.NoError(t, err)
		assert.Equal(t, 0, filtered.Len())
	})

	t.Run("error - start after end", func(t *testing.T) {
		_, err := table.FilterByApprovalDate(day(2017, 3, 1), day(2017, 2, 1))
		var rangeErr *InvalidRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, day(2017, 3, 1), rangeErr.Start)
		assert.Equal(t, "invalid date range: start 2017-03-01 is after end 2017-02-01", err.Error())
	})
}

func TestTable_Bounds(t *testing.T) {
	_, ok := Table{}.Bounds()
	assert.False(t, ok)

	table, err := NewTable([]OrderLine{
		line("o1", "s1", "10", at(2017, 6, 15, 1)),
		line("o2", "s1", "20", at(2017, 1, 1, 9)),
		line("o3", "s2", "30", at(2017, 3, 3, 3)),
	})
	require.NoError(t, err)

	rng, ok := table.Bounds()
	require.True(t, ok)
	assert.Equal(t, day(2017, 1, 1), rng.Start)
	assert.Equal(t, day(2017, 6, 15), rng.End)
	assert.Equal(t, 166, rng.Days())
}

func TestTable_FilterBySeller(t *testing.T) {
	table, err := NewTable([]OrderLine{
		line("o1", "s1", "10", at(2017, 6, 15, 1)),
		line("o2", "s2", "20", at(2017, 1, 1, 9)),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, table.FilterBySeller("s2").Len())
	assert.Equal(t, 0, table.FilterBySeller("missing").Len())
}

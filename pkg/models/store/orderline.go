package store

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type OrderLineRecord struct {
	OrderID     string
	OrderItemID int64
	SellerID    string
	SellerCity  string
	SellerState string
	Price       decimal.Decimal
	ApprovedAt  sql.NullTime
}

type OrderLineStats struct {
	RecordsCount    int64
	MissingApproval int64
	FirstApproval   *time.Time
	LastApproval    *time.Time
}

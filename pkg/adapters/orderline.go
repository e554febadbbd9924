package adapters

import (
	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/de-tools/seller-atlas/pkg/models/store"
)

// MapStoreOrderLinesToDomainTable drops lines without an approval time and
// validates the rest into a table.
func MapStoreOrderLinesToDomainTable(records []store.OrderLineRecord) (domain.Table, error) {
	lines := make([]domain.OrderLine, 0, len(records))
	for _, record := range records {
		if !record.ApprovedAt.Valid {
			continue
		}
		lines = append(lines, MapStoreOrderLineToDomain(record))
	}
	return domain.NewTable(lines)
}

func MapStoreOrderLineToDomain(record store.OrderLineRecord) domain.OrderLine {
	return domain.OrderLine{
		OrderID:     record.OrderID,
		SellerID:    record.SellerID,
		SellerCity:  record.SellerCity,
		SellerState: record.SellerState,
		Price:       record.Price,
		ApprovedAt:  record.ApprovedAt.Time,
	}
}

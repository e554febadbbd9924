package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const OrderLinesTableSchema = `
	CREATE TABLE IF NOT EXISTS order_lines (
		order_id VARCHAR NOT NULL,
		order_item_id INTEGER,
		seller_id VARCHAR NOT NULL,
		seller_city VARCHAR,
		seller_state VARCHAR,
		price DECIMAL(18, 2),
		order_approved_at TIMESTAMP
	);
`

const OrderLinesApprovalIndex = `
	CREATE INDEX IF NOT EXISTS order_lines_approved_idx ON order_lines (order_approved_at);
`

var bootQueries = []string{
	OrderLinesTableSchema,
	OrderLinesApprovalIndex,
}

type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}

package orderline

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/seller-atlas/pkg/models/store"
	"github.com/de-tools/seller-atlas/pkg/store/duckdb"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Store supports ingestion (ImportCSV, Add) and read (Get*) operations for
// order lines kept in DuckDB.
type Store interface {
	ImportCSV(ctx context.Context, path string) (int64, error)
	Add(ctx context.Context, records []store.OrderLineRecord) error
	GetOrderLines(ctx context.Context) ([]store.OrderLineRecord, error)
	GetStats(ctx context.Context) (*store.OrderLineStats, error)
	Truncate(ctx context.Context) error
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type orderLineStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &orderLineStore{
		db: db,
	}, nil
}

func (s *orderLineStore) execer(ctx context.Context) execer {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

// ImportCSV appends the rows of an order-items export. Only the columns the
// order_lines table needs are read; rows without approval time are kept and
// filtered out on read.
func (s *orderLineStore) ImportCSV(ctx context.Context, path string) (int64, error) {
	if path == "" {
		return 0, fmt.Errorf("csv path is empty")
	}

	query := fmt.Sprintf(`
		INSERT INTO order_lines (
			order_id, order_item_id, seller_id, seller_city, seller_state, price, order_approved_at
		)
		SELECT
			CAST(order_id AS VARCHAR),
			CAST(order_item_id AS INTEGER),
			CAST(seller_id AS VARCHAR),
			CAST(seller_city AS VARCHAR),
			CAST(seller_state AS VARCHAR),
			CAST(price AS DECIMAL(18, 2)),
			TRY_CAST(order_approved_at AS TIMESTAMP)
		FROM read_csv_auto(%s, header = true)
		WHERE order_id IS NOT NULL AND seller_id IS NOT NULL
	`, quoteLiteral(path))

	res, err := s.execer(ctx).ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("import csv %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("import csv %s: rows affected: %w", path, err)
	}

	zerolog.Ctx(ctx).Info().Str("path", path).Int64("rows", n).Msg("order lines imported")
	return n, nil
}

func (s *orderLineStore) Add(ctx context.Context, records []store.OrderLineRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_lines (
			order_id, order_item_id, seller_id, seller_city, seller_state, price, order_approved_at
		) VALUES (
			?, ?, ?, ?, ?, CAST(? AS DECIMAL(18, 2)), ?
		)`

	stmt, err := s.execer(ctx).PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		var approved any
		if record.ApprovedAt.Valid {
			approved = record.ApprovedAt.Time
		}

		_, err = stmt.ExecContext(ctx,
			record.OrderID,
			record.OrderItemID,
			record.SellerID,
			record.SellerCity,
			record.SellerState,
			record.Price.String(),
			approved,
		)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	return nil
}

// GetOrderLines returns every approved line, oldest approval first.
func (s *orderLineStore) GetOrderLines(ctx context.Context) ([]store.OrderLineRecord, error) {
	query := `
		SELECT order_id, COALESCE(order_item_id, 0), seller_id,
		       COALESCE(seller_city, ''), COALESCE(seller_state, ''),
		       CAST(COALESCE(price, 0) AS VARCHAR), order_approved_at
		FROM order_lines
		WHERE order_approved_at IS NOT NULL
		ORDER BY order_approved_at ASC, order_id ASC, order_item_id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close order lines rows")
		}
	}(rows)

	return scanOrderLineRows(rows)
}

func (s *orderLineStore) GetStats(ctx context.Context) (*store.OrderLineStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE order_approved_at IS NULL),
		       MIN(order_approved_at),
		       MAX(order_approved_at)
		FROM order_lines
	`
	var (
		total, missing int64
		first, last    sql.NullTime
	)
	if err := s.db.QueryRowContext(ctx, query).Scan(&total, &missing, &first, &last); err != nil {
		return nil, fmt.Errorf("get order line stats: %w", err)
	}

	stats := &store.OrderLineStats{RecordsCount: total, MissingApproval: missing}
	if first.Valid {
		t := first.Time
		stats.FirstApproval = &t
	}
	if last.Valid {
		t := last.Time
		stats.LastApproval = &t
	}
	return stats, nil
}

func (s *orderLineStore) Truncate(ctx context.Context) error {
	if _, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM order_lines`); err != nil {
		return fmt.Errorf("truncate order lines: %w", err)
	}
	return nil
}

func scanOrderLineRows(rows *sql.Rows) ([]store.OrderLineRecord, error) {
	records := make([]store.OrderLineRecord, 0)
	for rows.Next() {
		var (
			orderID, sellerID, city, state, price string
			itemID                                int64
			approved                              time.Time
		)
		if err := rows.Scan(&orderID, &itemID, &sellerID, &city, &state, &price, &approved); err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("order %s: parse price %q: %w", orderID, price, err)
		}
		records = append(records, store.OrderLineRecord{
			OrderID:     orderID,
			OrderItemID: itemID,
			SellerID:    sellerID,
			SellerCity:  city,
			SellerState: state,
			Price:       amount,
			ApprovedAt:  sql.NullTime{Time: approved, Valid: true},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

package orderline

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/seller-atlas/pkg/models/store"
	"github.com/de-tools/seller-atlas/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: s,
	}
}

func approvedAt(ts time.Time) sql.NullTime {
	return sql.NullTime{Time: ts, Valid: true}
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestOrderLineStore_AddAndGet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	records := []store.OrderLineRecord{
		{
			OrderID:     "o2",
			OrderItemID: 1,
			SellerID:    "s1",
			SellerCity:  "campinas",
			SellerState: "SP",
			Price:       decimal.RequireFromString("19.90"),
			ApprovedAt:  approvedAt(time.Date(2017, 3, 2, 10, 0, 0, 0, time.UTC)),
		},
		{
			OrderID:     "o1",
			OrderItemID: 1,
			SellerID:    "s2",
			SellerCity:  "curitiba",
			SellerState: "PR",
			Price:       decimal.RequireFromString("5"),
			ApprovedAt:  approvedAt(time.Date(2017, 1, 9, 8, 0, 0, 0, time.UTC)),
		},
		{
			OrderID:     "o3",
			OrderItemID: 1,
			SellerID:    "s2",
			SellerCity:  "curitiba",
			SellerState: "PR",
			Price:       decimal.RequireFromString("7"),
		},
	}

	require.NoError(t, f.store.Add(ctx, records))
	require.NoError(t, f.store.Add(ctx, nil))

	t.Run("approved lines oldest first", func(t *testing.T) {
		lines, err := f.store.GetOrderLines(ctx)
		require.NoError(t, err)
		require.Len(t, lines, 2)

		assert.Equal(t, "o1", lines[0].OrderID)
		assert.Equal(t, "o2", lines[1].OrderID)
		assert.True(t, decimal.RequireFromString("19.90").Equal(lines[1].Price))
		assert.Equal(t, "campinas", lines[1].SellerCity)
		assert.True(t, lines[1].ApprovedAt.Valid)
	})

	t.Run("stats count missing approvals", func(t *testing.T) {
		stats, err := f.store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.RecordsCount)
		assert.Equal(t, int64(1), stats.MissingApproval)
		require.NotNil(t, stats.FirstApproval)
		assert.Equal(t, 2017, stats.FirstApproval.Year())
		require.NotNil(t, stats.LastApproval)
		assert.Equal(t, time.March, stats.LastApproval.Month())
	})

	t.Run("truncate", func(t *testing.T) {
		require.NoError(t, f.store.Truncate(ctx))
		stats, err := f.store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.RecordsCount)
		assert.Nil(t, stats.FirstApproval)
	})
}

func TestOrderLineStore_AddWithinTransaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tx, err := f.db.BeginTx(ctx, nil)
	require.NoError(t, err)

	err = f.store.Add(duckdb.WithTransaction(ctx, tx), []store.OrderLineRecord{{
		OrderID:    "o1",
		SellerID:   "s1",
		Price:      decimal.RequireFromString("1"),
		ApprovedAt: approvedAt(time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)),
	}})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	lines, err := f.store.GetOrderLines(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestOrderLineStore_ImportCSV(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	content := `order_id,order_item_id,product_id,seller_id,price,order_approved_at,seller_city,seller_state
o1,1,p1,s1,58.90,2017-09-13 09:45:35,volta redonda,SP
o1,2,p2,s1,10.00,2017-09-13 09:45:35,volta redonda,SP
o2,1,p3,s2,239.90,2017-04-26 11:05:13,sao paulo,SP
o3,1,p4,s3,199.00,,borda da mata,MG
`
	path := filepath.Join(t.TempDir(), "all_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	n, err := f.store.ImportCSV(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	lines, err := f.store.GetOrderLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "o2", lines[0].OrderID)
	assert.Equal(t, "sao paulo", lines[0].SellerCity)
	assert.True(t, decimal.RequireFromString("239.9").Equal(lines[0].Price))
	assert.Equal(t, int64(2), lines[2].OrderItemID)

	t.Run("error - missing file", func(t *testing.T) {
		_, err := f.store.ImportCSV(ctx, filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("error - empty path", func(t *testing.T) {
		_, err := f.store.ImportCSV(ctx, "")
		assert.Error(t, err)
	})
}

func TestOrderLineStore_GetOrderLines_Query(t *testing.T) {
	// Given: a sqlmock DB with one approved order line
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	approved := time.Date(2018, 8, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{"order_id", "order_item_id", "seller_id", "seller_city", "seller_state", "price", "order_approved_at"}
	rows := sqlmock.NewRows(cols).
		AddRow("o9", int64(1), "s9", "rio de janeiro", "RJ", "120.50", approved)

	mock.ExpectQuery(regexp.QuoteMeta("FROM order_lines WHERE order_approved_at IS NOT NULL")).
		WillReturnRows(rows)

	s, err := NewStore(db)
	require.NoError(t, err)

	// When
	lines, err := s.GetOrderLines(context.Background())

	// Then
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "RJ", lines[0].SellerState)
	assert.True(t, decimal.RequireFromString("120.5").Equal(lines[0].Price))
	assert.Equal(t, approved, lines[0].ApprovedAt.Time)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestOrderLineStore_GetOrderLines_BadPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"order_id", "order_item_id", "seller_id", "seller_city", "seller_state", "price", "order_approved_at"}
	mock.ExpectQuery("FROM order_lines").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("o1", int64(1), "s1", "", "", "n/a", time.Now()))

	s, err := NewStore(db)
	require.NoError(t, err)

	_, err = s.GetOrderLines(context.Background())
	assert.ErrorContains(t, err, `parse price "n/a"`)
}

func TestOrderLineStore_Add_Query(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	approved := time.Date(2017, 5, 5, 5, 5, 5, 0, time.UTC)
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO order_lines")).
		ExpectExec().
		WithArgs("o1", int64(2), "s1", "ijui", "RS", "12.3", approved).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s, err := NewStore(db)
	require.NoError(t, err)

	err = s.Add(context.Background(), []store.OrderLineRecord{{
		OrderID:     "o1",
		OrderItemID: 2,
		SellerID:    "s1",
		SellerCity:  "ijui",
		SellerState: "RS",
		Price:       decimal.RequireFromString("12.30"),
		ApprovedAt:  approvedAt(approved),
	}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

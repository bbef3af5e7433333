package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	_ "modernc.org/sqlite"

	"emabill/m/internal/migrations"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	migrations.Run(db)
	t.Cleanup(func() { db.Close() })
	return db
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "opening_stock.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOpeningStock(t *testing.T) {
	db := newTestDB(t)
	logger := zaptest.NewLogger(t)

	path := writeCSV(t, `productName,hsnCode,gst,sellingPrice,quantity
LED Panel Light 18W,94054090,18,450.00,120
Copper Wire 1.5sqmm 90m,85444920,18,1650.00,40
,85362030,18,185.50,200
MCB 16A Single Pole,85362030,18,0,200
`)

	LoadOpeningStock(db, logger, path)

	var itemCount int
	require.NoError(t, db.Get(&itemCount, `SELECT COUNT(*) FROM purchase_items`))
	assert.Equal(t, 2, itemCount, "blank names and zero prices are skipped")

	var supplier string
	require.NoError(t, db.Get(&supplier, `SELECT supplier_name FROM purchases`))
	assert.Equal(t, "Opening Stock", supplier)

	var qty int64
	require.NoError(t, db.Get(&qty, `SELECT sales_quantity FROM purchase_items WHERE product_name = ?`, "LED Panel Light 18W"))
	assert.Equal(t, int64(120), qty)
}

func TestLoadOpeningStockIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	logger := zaptest.NewLogger(t)

	path := writeCSV(t, `productName,hsnCode,gst,sellingPrice,quantity
Ceiling Fan 1200mm,84145120,18,2350.00,35
`)

	LoadOpeningStock(db, logger, path)
	LoadOpeningStock(db, logger, path)

	var purchaseCount int
	require.NoError(t, db.Get(&purchaseCount, `SELECT COUNT(*) FROM purchases`))
	assert.Equal(t, 1, purchaseCount)
}

func TestLoadOpeningStockMissingFile(t *testing.T) {
	db := newTestDB(t)

	LoadOpeningStock(db, zaptest.NewLogger(t), filepath.Join(t.TempDir(), "absent.csv"))

	var purchaseCount int
	require.NoError(t, db.Get(&purchaseCount, `SELECT COUNT(*) FROM purchases`))
	assert.Zero(t, purchaseCount)
}

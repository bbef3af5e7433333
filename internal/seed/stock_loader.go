package seed

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const openingStockSupplier = "Opening Stock"

// LoadOpeningStock ingests the CSV into a single opening-stock purchase so
// a fresh database has sellable inventory. Columns: productName, hsnCode,
// gst, sellingPrice, quantity. Runs once; a missing file is not an error.
func LoadOpeningStock(db *sqlx.DB, logger *zap.Logger, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		logger.Info("no opening stock file, skipping seed", zap.String("path", csvPath))
		return
	}
	defer file.Close()

	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM purchases WHERE supplier_name = ?)`, openingStockSupplier); err != nil {
		logger.Error("unable to check opening stock", zap.Error(err))
		return
	}
	if exists {
		return
	}

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		logger.Error("unable to read opening stock header", zap.Error(err))
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		logger.Error("unable to start opening stock transaction", zap.Error(err))
		return
	}

	purchaseID := uuid.NewString()
	if _, err := tx.Exec(`INSERT INTO purchases (id, supplier_name, despatched_through) VALUES (?, ?, ?)`,
		purchaseID, openingStockSupplier, ""); err != nil {
		logger.Error("unable to create opening stock purchase", zap.Error(err))
		_ = tx.Rollback()
		return
	}

	stmt, err := tx.Preparex(`INSERT INTO purchase_items (id, purchase_id, product_name, hsn_code, gst, selling_price, sales_quantity) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		logger.Error("unable to prepare opening stock insert", zap.Error(err))
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("unable to read opening stock row", zap.Error(err))
			continue
		}
		if len(record) < 5 {
			continue
		}
		productName := strings.TrimSpace(record[0])
		hsnCode := strings.TrimSpace(record[1])
		gst, _ := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		sellingPrice, _ := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		quantity, _ := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)

		if productName == "" || sellingPrice <= 0 || quantity < 0 {
			continue
		}

		if _, err := stmt.Exec(uuid.NewString(), purchaseID, productName, hsnCode, gst, sellingPrice, quantity); err != nil {
			logger.Warn("unable to insert opening stock item", zap.String("product", productName), zap.Error(err))
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("unable to commit opening stock", zap.Error(err))
	} else {
		logger.Info("seeded opening stock", zap.Int("items", rows))
	}
}

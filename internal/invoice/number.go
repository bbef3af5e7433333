// Package invoice derives invoice numbers and the money arithmetic used
// when a sale is recorded.
//
// Numbers look like EMA24/25-26/08/07: a fixed prefix, the financial-year
// label, the calendar month and a per-financial-year sequence. The sequence
// comes from a counter row incremented atomically inside the caller's
// transaction, so concurrent creations cannot observe the same value.
package invoice

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Prefix is the fixed invoice-number prefix.
const Prefix = "EMA24"

// FinancialYear returns the two-digit/two-digit label of the financial
// year containing t. The year starts April 1: April through December of
// year Y belong to "Y-(Y+1)", January through March to "(Y-1)-Y".
func FinancialYear(t time.Time) string {
	y := t.Year()
	if t.Month() >= time.April {
		return fmt.Sprintf("%02d-%02d", y%100, (y+1)%100)
	}
	return fmt.Sprintf("%02d-%02d", (y-1)%100, y%100)
}

// MonthCode returns the zero-padded calendar month of t.
func MonthCode(t time.Time) string {
	return fmt.Sprintf("%02d", int(t.Month()))
}

// Format assembles a full invoice number from its parts. The sequence is
// padded to two digits and grows naturally past 99.
func Format(financialYear, monthCode string, seq int64) string {
	return fmt.Sprintf("%s/%s/%s/%02d", Prefix, financialYear, monthCode, seq)
}

// Next reserves the next sequence number for the financial year containing
// now and returns the formatted invoice number. It must run inside the
// same transaction as the sale insert: the reservation is rolled back with
// the sale, keeping sequences gapless per successful creation.
func Next(tx *sqlx.Tx, now time.Time) (string, error) {
	fy := FinancialYear(now)

	var seq int64
	err := tx.Get(&seq, `INSERT INTO invoice_counters (financial_year, seq) VALUES (?, 1)
		ON CONFLICT (financial_year) DO UPDATE SET seq = seq + 1
		RETURNING seq`, fy)
	if err != nil {
		return "", fmt.Errorf("reserve invoice sequence for FY %s: %w", fy, err)
	}

	return Format(fy, MonthCode(now), seq), nil
}

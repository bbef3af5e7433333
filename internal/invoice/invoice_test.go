package invoice

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestFinancialYear(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"april start", date(2025, time.April, 1), "25-26"},
		{"mid year", date(2025, time.August, 15), "25-26"},
		{"december", date(2025, time.December, 31), "25-26"},
		{"january rolls back", date(2026, time.January, 1), "25-26"},
		{"march end", date(2026, time.March, 31), "25-26"},
		{"previous cycle", date(2024, time.February, 29), "23-24"},
		{"new cycle", date(2024, time.April, 30), "24-25"},
		{"century wrap", date(2099, time.May, 1), "99-00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinancialYear(tt.date))
		})
	}
}

func TestMonthCode(t *testing.T) {
	assert.Equal(t, "01", MonthCode(date(2026, time.January, 5)))
	assert.Equal(t, "08", MonthCode(date(2025, time.August, 5)))
	assert.Equal(t, "12", MonthCode(date(2025, time.December, 5)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "EMA24/25-26/08/07", Format("25-26", "08", 7))
	assert.Equal(t, "EMA24/25-26/01/42", Format("25-26", "01", 42))
	// Sequence keeps growing past two digits.
	assert.Equal(t, "EMA24/25-26/03/100", Format("25-26", "03", 100))
}

func TestNextIncrementsPerFinancialYear(t *testing.T) {
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`CREATE TABLE invoice_counters (financial_year TEXT PRIMARY KEY, seq INTEGER NOT NULL)`)
	require.NoError(t, err)

	now := date(2025, time.August, 20)

	for i, want := range []string{"EMA24/25-26/08/01", "EMA24/25-26/08/02", "EMA24/25-26/08/03"} {
		tx, err := db.Beginx()
		require.NoError(t, err)
		got, err := Next(tx, now)
		require.NoError(t, err, "creation %d", i+1)
		assert.Equal(t, want, got)
		require.NoError(t, tx.Commit())
	}

	// A different financial year counts independently from 1.
	tx, err := db.Beginx()
	require.NoError(t, err)
	got, err := Next(tx, date(2026, time.April, 2))
	require.NoError(t, err)
	assert.Equal(t, "EMA24/26-27/04/01", got)
	require.NoError(t, tx.Commit())
}

func TestNextRollsBackWithTransaction(t *testing.T) {
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`CREATE TABLE invoice_counters (financial_year TEXT PRIMARY KEY, seq INTEGER NOT NULL)`)
	require.NoError(t, err)

	now := date(2025, time.June, 1)

	tx, err := db.Beginx()
	require.NoError(t, err)
	got, err := Next(tx, now)
	require.NoError(t, err)
	assert.Equal(t, "EMA24/25-26/06/01", got)
	require.NoError(t, tx.Rollback())

	// The aborted creation releases its sequence number.
	tx, err = db.Beginx()
	require.NoError(t, err)
	got, err = Next(tx, now)
	require.NoError(t, err)
	assert.Equal(t, "EMA24/25-26/06/01", got)
	require.NoError(t, tx.Commit())
}

func TestLineAmount(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		rate     float64
		discount float64
		want     float64
	}{
		{"no discount", 4, 100, 0, 400},
		{"ten percent off", 2, 100, 10, 180},
		{"fractional rate", 3, 33.33, 0, 99.99},
		{"rounds half away from zero", 1, 10.005, 0, 10.01},
		{"discount produces fraction", 1, 100, 33.33, 66.67},
		{"zero quantity", 0, 250, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round2(LineAmount(tt.quantity, tt.rate, tt.discount)))
		})
	}
}

func TestGrandTotal(t *testing.T) {
	sub := LineAmount(2, 100, 10).Add(LineAmount(3, 33.33, 0))
	assert.Equal(t, 279.99, Round2(sub))
	assert.Equal(t, 280.0, GrandTotal(sub, 0.01))
	assert.Equal(t, 279.49, GrandTotal(sub, -0.5))
	assert.Equal(t, 0.0, GrandTotal(decimal.Zero, 0))
}

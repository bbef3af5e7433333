package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the billing backend.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS companies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			address TEXT,
			email TEXT,
			phone TEXT,
			gstin TEXT,
			state TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS purchases (
			id TEXT PRIMARY KEY,
			supplier_name TEXT,
			despatched_through TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS purchase_items (
			id TEXT PRIMARY KEY,
			purchase_id TEXT NOT NULL REFERENCES purchases(id),
			product_name TEXT NOT NULL,
			hsn_code TEXT,
			gst REAL DEFAULT 0,
			selling_price REAL NOT NULL,
			sales_quantity INTEGER CHECK (sales_quantity IS NULL OR sales_quantity >= 0)
		);`,
		`CREATE TABLE IF NOT EXISTS sales (
			id TEXT PRIMARY KEY,
			user_id INTEGER REFERENCES users(id),
			invoice_number TEXT NOT NULL,
			invoice_date TEXT,
			billing_date TEXT,
			due_date TEXT,
			mode_of_payment TEXT NOT NULL CHECK (mode_of_payment IN ('Cash', 'Credit')),
			other_ref TEXT,
			gr_no_date TEXT,
			delivery_note TEXT,
			supplier_ref TEXT,
			buyer_order_no TEXT,
			delivery_note_date TEXT,
			despatched_through TEXT,
			destination TEXT,
			terms_of_delivery TEXT,
			seller_name TEXT,
			seller_address TEXT,
			buyer_name TEXT,
			buyer_email TEXT,
			buyer_phone TEXT,
			buyer_address TEXT,
			buyer_state TEXT,
			sub_total REAL NOT NULL DEFAULT 0,
			round_off REAL NOT NULL DEFAULT 0,
			grand_total REAL NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sale_id TEXT NOT NULL REFERENCES sales(id),
			purchase_id TEXT REFERENCES purchases(id),
			purchase_item_id TEXT REFERENCES purchase_items(id),
			product_name TEXT NOT NULL,
			hsn_code TEXT,
			quantity INTEGER NOT NULL,
			rate REAL NOT NULL,
			discount_percentage REAL NOT NULL DEFAULT 0,
			amount REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS invoice_counters (
			financial_year TEXT PRIMARY KEY,
			seq INTEGER NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}

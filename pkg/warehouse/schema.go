// pkg/warehouse/schema.go
package warehouse

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// The warehouse holds two dimension tables and one fact table. The DDL
// sticks to types portable between SQLite and PostgreSQL.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id INTEGER PRIMARY KEY,
		name TEXT,
		region TEXT,
		join_date TEXT,
		loyalty_points INTEGER,
		customer_segment TEXT,
		standard_datetime TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY,
		product_name TEXT,
		category TEXT,
		unit_price REAL,
		stock_quantity INTEGER,
		supplier TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		transaction_id INTEGER PRIMARY KEY,
		sale_date TEXT,
		customer_id INTEGER REFERENCES customers(customer_id),
		product_id INTEGER REFERENCES products(product_id),
		store_id INTEGER,
		campaign_id INTEGER,
		sale_amount REAL,
		discount_percent INTEGER,
		payment_type TEXT
	)`,
}

// EnsureSchema creates the warehouse tables if they do not exist
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create warehouse schema: %w", err)
		}
	}
	return nil
}

// pkg/warehouse/loader.go
package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/retailworks/salesprep/pkg/model"
)

// valueKind declares how a warehouse column's value is coerced on insert
type valueKind int

const (
	kindText valueKind = iota
	kindInt
	kindFloat
)

// columnSpec maps a cleaned CSV column onto a warehouse column
type columnSpec struct {
	db   string
	csv  string
	kind valueKind
}

// Column mappings follow the warehouse schema; columns beyond the
// validated set ride along from the source data when present.
var (
	customerColumns = []columnSpec{
		{db: "customer_id", csv: "CustomerID", kind: kindInt},
		{db: "name", csv: "Name", kind: kindText},
		{db: "region", csv: "Region", kind: kindText},
		{db: "join_date", csv: "JoinDate", kind: kindText},
		{db: "loyalty_points", csv: "LoyaltyPoints", kind: kindInt},
		{db: "customer_segment", csv: "CustomerSegment", kind: kindText},
		{db: "standard_datetime", csv: "StandardDateTime", kind: kindText},
	}

	productColumns = []columnSpec{
		{db: "product_id", csv: "ProductID", kind: kindInt},
		{db: "product_name", csv: "ProductName", kind: kindText},
		{db: "category", csv: "Category", kind: kindText},
		{db: "unit_price", csv: "UnitPrice", kind: kindFloat},
		{db: "stock_quantity", csv: "StockQuantity", kind: kindInt},
		{db: "supplier", csv: "Supplier", kind: kindText},
	}

	saleColumns = []columnSpec{
		{db: "transaction_id", csv: "TransactionID", kind: kindInt},
		{db: "sale_date", csv: "SaleDate", kind: kindText},
		{db: "customer_id", csv: "CustomerID", kind: kindInt},
		{db: "product_id", csv: "ProductID", kind: kindInt},
		{db: "store_id", csv: "StoreID", kind: kindInt},
		{db: "campaign_id", csv: "CampaignID", kind: kindInt},
		{db: "sale_amount", csv: "SaleAmount", kind: kindFloat},
		{db: "discount_percent", csv: "DiscountPercent", kind: kindInt},
		{db: "payment_type", csv: "PaymentType", kind: kindText},
	}
)

// Loader performs the full-refresh warehouse load
type Loader struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewLoader creates a warehouse loader
func NewLoader(db *sqlx.DB, logger *zap.Logger) (*Loader, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Loader{db: db, logger: logger}, nil
}

// Load replaces the warehouse contents with the given validated rows in a
// single transaction: delete sales, then the dimension tables, insert
// customers and products, then sales, and commit only when every insert
// succeeded. Any failure rolls the whole load back, so the warehouse is
// never left in a mixed old/new state.
func (l *Loader) Load(
	ctx context.Context,
	customers, products, sales []model.Row,
) (rowsLoaded int64, err error) {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				l.logger.Error("Failed to rollback load transaction",
					zap.Error(rbErr),
					zap.NamedError("cause", err))
			}
		}
	}()

	// Sales reference both dimension tables, so it empties first
	for _, table := range []string{"sales", "products", "customers"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return 0, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	inserts := []struct {
		table   string
		columns []columnSpec
		rows    []model.Row
	}{
		{"customers", customerColumns, customers},
		{"products", productColumns, products},
		{"sales", saleColumns, sales},
	}

	for _, ins := range inserts {
		var n int64
		n, err = l.insertRows(ctx, tx, ins.table, ins.columns, ins.rows)
		if err != nil {
			return 0, fmt.Errorf("failed to load %s: %w", ins.table, err)
		}
		rowsLoaded += n
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit load: %w", err)
	}

	l.logger.Info("Warehouse load committed",
		zap.Int("customers", len(customers)),
		zap.Int("products", len(products)),
		zap.Int("sales", len(sales)),
		zap.Int64("rows_loaded", rowsLoaded))
	return rowsLoaded, nil
}

// insertRows inserts all rows of one table through a prepared statement
func (l *Loader) insertRows(
	ctx context.Context,
	tx *sqlx.Tx,
	table string,
	columns []columnSpec,
	rows []model.Row,
) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	names := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.db
		placeholders[i] = "?"
	}

	query := l.db.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	))

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	args := make([]interface{}, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			args[i] = bindValue(row, col)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return inserted, fmt.Errorf("insert failed: %w", err)
		}
		inserted++
	}

	return inserted, nil
}

// bindValue coerces a row value for its warehouse column. Absent columns
// and unparseable optional values become NULL; values typed by the rule
// engine pass through directly.
func bindValue(row model.Row, col columnSpec) interface{} {
	v, ok := row[col.csv]
	if !ok || v == nil {
		return nil
	}

	switch val := v.(type) {
	case time.Time:
		return val.Format("2006-01-02")
	case int64:
		if col.kind == kindFloat {
			return float64(val)
		}
		return val
	case float64:
		return val
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil
		}
		switch col.kind {
		case kindInt:
			n, err := cast.ToInt64E(trimmed)
			if err != nil {
				return nil
			}
			return n
		case kindFloat:
			f, err := cast.ToFloat64E(trimmed)
			if err != nil {
				return nil
			}
			return f
		default:
			return val
		}
	default:
		return cast.ToString(val)
	}
}

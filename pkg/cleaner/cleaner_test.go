package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailworks/salesprep/pkg/model"
)

var customerHeader = []string{"CustomerID", "Name", "Region", "JoinDate"}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(zap.NewNop())
	require.NoError(t, err)
	return engine
}

func customerRecord(id, name, region, joinDate string) model.Record {
	return model.Record{
		"CustomerID": id,
		"Name":       name,
		"Region":     region,
		"JoinDate":   joinDate,
	}
}

func dropCount(drops []model.RuleDrop, rule string) int {
	for _, d := range drops {
		if d.Rule == rule {
			return d.Count
		}
	}
	return -1
}

func TestApplyKeepsValidRecords(t *testing.T) {
	engine := newTestEngine(t)

	records := []model.Record{
		customerRecord("1000", "Alice", "East", "1/15/2020"),
		customerRecord("1100", "Bob", "West", "2020-03-01"),
	}

	rows, drops, err := engine.Apply(EntityCustomers, customerHeader, records, CustomerRules(DefaultLimits()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, d := range drops {
		assert.Zero(t, d.Count, "rule %s should not drop", d.Rule)
	}

	assert.Equal(t, int64(1000), rows[0].Int("CustomerID"))
	assert.Equal(t, "Alice", rows[0].String("Name"))
	assert.Equal(t, "East", rows[0].String("Region"))
	assert.Equal(t, 2020, rows[0].Time("JoinDate").Year())
}

func TestApplyAttributesDropToEarliestFailingRule(t *testing.T) {
	engine := newTestEngine(t)

	// Non-numeric ID must short-circuit before the Region rule ever runs,
	// even though " east " would also need normalizing.
	records := []model.Record{
		customerRecord("ABC", "Mallory", " east ", "1/1/2020"),
	}

	rows, drops, err := engine.Apply(EntityCustomers, customerHeader, records, CustomerRules(DefaultLimits()))
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.Equal(t, 1, dropCount(drops, "non_numeric_customer_id"))
	assert.Equal(t, 0, dropCount(drops, "customer_id_out_of_range"))
	assert.Equal(t, 0, dropCount(drops, "invalid_region"))
	assert.Equal(t, 0, dropCount(drops, "invalid_join_date"))
}

func TestApplyNormalizesCategoricalValues(t *testing.T) {
	engine := newTestEngine(t)

	records := []model.Record{
		customerRecord("1010", "Ada", " east ", "1/1/2020"),
		customerRecord("1011", "Grace", "EAST", "1/1/2020"),
		customerRecord("1012", "Lin", "Outlier", "1/1/2020"),
	}

	rows, drops, err := engine.Apply(EntityCustomers, customerHeader, records, CustomerRules(DefaultLimits()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "East", rows[0].String("Region"))
	assert.Equal(t, "East", rows[1].String("Region"))
	assert.Equal(t, 1, dropCount(drops, "invalid_region"))
}

func TestApplyDropCountsSumToInput(t *testing.T) {
	engine := newTestEngine(t)

	records := []model.Record{
		customerRecord("1000", "Alice", "East", "1/15/2020"),
		customerRecord("ABC", "Bob", "West", "1/1/2020"),      // non-numeric ID
		customerRecord("99999", "Cara", "North", "1/1/2020"),  // ID out of range
		customerRecord("1001", "   ", "South", "1/1/2020"),    // empty name
		customerRecord("1002", "Dan", "Mars", "1/1/2020"),     // invalid region
		customerRecord("1003", "Eve", "East", "notadate"),     // invalid date
		customerRecord("1004", "Fay", "West", "13-13-2020"),   // invalid date
	}

	rows, drops, err := engine.Apply(EntityCustomers, customerHeader, records, CustomerRules(DefaultLimits()))
	require.NoError(t, err)

	total := len(rows)
	for _, d := range drops {
		total += d.Count
	}
	assert.Equal(t, len(records), total)

	assert.Equal(t, 1, dropCount(drops, "non_numeric_customer_id"))
	assert.Equal(t, 1, dropCount(drops, "customer_id_out_of_range"))
	assert.Equal(t, 1, dropCount(drops, "empty_name"))
	assert.Equal(t, 1, dropCount(drops, "invalid_region"))
	assert.Equal(t, 2, dropCount(drops, "invalid_join_date"))
}

func TestApplyMissingColumnIsStructuralFailure(t *testing.T) {
	engine := newTestEngine(t)

	header := []string{"CustomerID", "Name", "Region"} // no JoinDate
	records := []model.Record{
		{"CustomerID": "1000", "Name": "Alice", "Region": "East"},
	}

	rows, drops, err := engine.Apply(EntityCustomers, header, records, CustomerRules(DefaultLimits()))
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.Nil(t, drops)

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, EntityCustomers, missing.Entity)
	assert.Equal(t, []string{"JoinDate"}, missing.Columns)
}

func TestApplyEmptyCellNeverCoercesToZero(t *testing.T) {
	engine := newTestEngine(t)

	records := []model.Record{
		customerRecord("", "Alice", "East", "1/1/2020"),
	}

	rows, drops, err := engine.Apply(EntityCustomers, customerHeader, records, CustomerRules(DefaultLimits()))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 1, dropCount(drops, "non_numeric_customer_id"))
}

func TestApplyIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)

	records := []model.Record{
		customerRecord("1000", "Alice", "East", "1/15/2020"),
		customerRecord("ABC", "Bob", "West", "1/1/2020"),
		customerRecord("1002", "Cara", "south", "3/3/2021"),
	}

	rows1, drops1, err := engine.Apply(EntityCustomers, customerHeader, records, CustomerRules(DefaultLimits()))
	require.NoError(t, err)
	rows2, drops2, err := engine.Apply(EntityCustomers, customerHeader, records, CustomerRules(DefaultLimits()))
	require.NoError(t, err)

	assert.Equal(t, drops1, drops2)
	assert.Equal(t, rows1, rows2)
}

func TestProductRulesScenario(t *testing.T) {
	engine := newTestEngine(t)

	header := []string{"ProductID", "ProductName", "Category", "UnitPrice"}
	records := []model.Record{
		{"ProductID": "150", "ProductName": "Racket", "Category": "sports", "UnitPrice": "abc"},
	}

	// Passes the ID and Category rules, dies at the UnitPrice parse.
	rows, drops, err := engine.Apply(EntityProducts, header, records, ProductRules(DefaultLimits()))
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.Equal(t, 0, dropCount(drops, "non_numeric_product_id"))
	assert.Equal(t, 0, dropCount(drops, "invalid_category"))
	assert.Equal(t, 1, dropCount(drops, "invalid_unit_price"))
}

func TestSaleRulesRejectImpossibleCalendarDate(t *testing.T) {
	engine := newTestEngine(t)

	header := []string{"TransactionID", "SaleDate", "CustomerID", "ProductID", "SaleAmount"}
	records := []model.Record{
		{
			"TransactionID": "600",
			"SaleDate":      "2020/02/30",
			"CustomerID":    "1000",
			"ProductID":     "150",
			"SaleAmount":    "50.0",
		},
	}

	rows, drops, err := engine.Apply(EntitySales, header, records, SaleRules(DefaultLimits()))
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.Equal(t, 1, dropCount(drops, "invalid_sale_date"))
	assert.Equal(t, 0, dropCount(drops, "invalid_sale_amount"))
}

func TestSaleRulesBoundaryAmounts(t *testing.T) {
	engine := newTestEngine(t)

	header := []string{"TransactionID", "SaleDate", "SaleAmount"}
	records := []model.Record{
		{"TransactionID": "500", "SaleDate": "1/1/2021", "SaleAmount": "0.1"},
		{"TransactionID": "501", "SaleDate": "1/1/2021", "SaleAmount": "10000"},
		{"TransactionID": "502", "SaleDate": "1/1/2021", "SaleAmount": "0.09"},
		{"TransactionID": "503", "SaleDate": "1/1/2021", "SaleAmount": "10000.01"},
	}

	rows, drops, err := engine.Apply(EntitySales, header, records, SaleRules(DefaultLimits()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 0.1, rows[0].Float("SaleAmount"))
	assert.Equal(t, float64(10000), rows[1].Float("SaleAmount"))
	assert.Equal(t, 2, dropCount(drops, "invalid_sale_amount"))
}

func TestApplyPreservesPassthroughColumns(t *testing.T) {
	engine := newTestEngine(t)

	header := []string{"CustomerID", "Name", "Region", "JoinDate", "LoyaltyPoints"}
	records := []model.Record{
		{
			"CustomerID":    "1000",
			"Name":          "Alice",
			"Region":        "East",
			"JoinDate":      "1/15/2020",
			"LoyaltyPoints": "150",
		},
	}

	rows, _, err := engine.Apply(EntityCustomers, header, records, CustomerRules(DefaultLimits()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "150", rows[0].String("LoyaltyPoints"))
}

// pkg/cleaner/entities.go
package cleaner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entity names used for drop attribution and reporting
const (
	EntityCustomers = "customers"
	EntityProducts  = "products"
	EntitySales     = "sales"
)

// IDLimits bounds an entity's identifier column
type IDLimits struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// AmountLimits bounds a numeric measure column
type AmountLimits struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Limits carries the valid ranges and sets the entity rule lists are built
// from. Defaults match the declared domains of the source datasets; an
// optional YAML file can override them without touching the rule lists.
type Limits struct {
	CustomerID IDLimits     `yaml:"customer_id"`
	Regions    []string     `yaml:"regions"`
	ProductID  IDLimits     `yaml:"product_id"`
	Categories []string     `yaml:"categories"`
	UnitPrice  AmountLimits `yaml:"unit_price"`
	SaleID     IDLimits     `yaml:"transaction_id"`
	SaleAmount AmountLimits `yaml:"sale_amount"`
}

// DefaultLimits returns the declared valid domains for all three entities
func DefaultLimits() Limits {
	return Limits{
		CustomerID: IDLimits{Min: 1000, Max: 1100},
		Regions:    []string{"East", "West", "North", "South"},
		ProductID:  IDLimits{Min: 100, Max: 200},
		Categories: []string{"Electronics", "Clothing", "Sports"},
		UnitPrice:  AmountLimits{Min: 0.1, Max: 10000},
		SaleID:     IDLimits{Min: 500, Max: 1000},
		SaleAmount: AmountLimits{Min: 0.1, Max: 10000},
	}
}

// LoadLimits reads limit overrides from a YAML file layered over the
// defaults. A missing path returns the defaults unchanged.
func LoadLimits(path string) (Limits, error) {
	limits := DefaultLimits()
	if path == "" {
		return limits, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return limits, nil
		}
		return limits, fmt.Errorf("failed to read limits file: %w", err)
	}

	if err := yaml.Unmarshal(data, &limits); err != nil {
		return limits, fmt.Errorf("failed to parse limits file: %w", err)
	}
	return limits, nil
}

// CustomerRules returns the ordered rule list for the customers dataset.
// The order is deliberate: the ID must parse before it is range-checked,
// and structural text/category checks run before the date parse so each
// drop is attributed to the earliest failing cause.
func CustomerRules(l Limits) []ColumnRule {
	return []ColumnRule{
		{Name: "non_numeric_customer_id", Column: "CustomerID", Check: IntValue()},
		{Name: "customer_id_out_of_range", Column: "CustomerID", Check: IntRange("CustomerID", l.CustomerID.Min, l.CustomerID.Max)},
		{Name: "empty_name", Column: "Name", Check: RequiredText()},
		{Name: "invalid_region", Column: "Region", Check: OneOf(l.Regions)},
		{Name: "invalid_join_date", Column: "JoinDate", Check: DateValue()},
	}
}

// ProductRules returns the ordered rule list for the products dataset
func ProductRules(l Limits) []ColumnRule {
	return []ColumnRule{
		{Name: "non_numeric_product_id", Column: "ProductID", Check: IntValue()},
		{Name: "product_id_out_of_range", Column: "ProductID", Check: IntRange("ProductID", l.ProductID.Min, l.ProductID.Max)},
		{Name: "empty_product_name", Column: "ProductName", Check: RequiredText()},
		{Name: "invalid_category", Column: "Category", Check: OneOf(l.Categories)},
		{Name: "invalid_unit_price", Column: "UnitPrice", Check: FloatRange(l.UnitPrice.Min, l.UnitPrice.Max)},
	}
}

// SaleRules returns the ordered rule list for the sales dataset
func SaleRules(l Limits) []ColumnRule {
	return []ColumnRule{
		{Name: "non_numeric_transaction_id", Column: "TransactionID", Check: IntValue()},
		{Name: "transaction_id_out_of_range", Column: "TransactionID", Check: IntRange("TransactionID", l.SaleID.Min, l.SaleID.Max)},
		{Name: "invalid_sale_date", Column: "SaleDate", Check: DateValue()},
		{Name: "invalid_sale_amount", Column: "SaleAmount", Check: FloatRange(l.SaleAmount.Min, l.SaleAmount.Max)},
	}
}

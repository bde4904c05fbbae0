// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/retailworks/salesprep/pkg/model"
)

// CheckFunc validates one column of one record. It receives the raw cell
// value and the typed values produced by earlier rules for the same record,
// and returns the typed value to store for the column, or an error to drop
// the record. An error here is a normal drop outcome, never fatal.
type CheckFunc func(raw string, typed model.Row) (interface{}, error)

// ColumnRule is a single ordered validation step scoped to one column
type ColumnRule struct {
	Name   string // Drop attribution key, e.g. "non_numeric_customer_id"
	Column string // Column the rule reads
	Check  CheckFunc
}

// MissingColumnsError is the structural failure raised when an entity's
// input header lacks columns its rules require. It is fatal for that
// entity's run, unlike per-row drops.
type MissingColumnsError struct {
	Entity  string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s input is missing required columns: %s",
		e.Entity, strings.Join(e.Columns, ", "))
}

// Engine applies an ordered rule list to a batch of raw records
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a rule engine with the given logger
func NewEngine(logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Engine{logger: logger}, nil
}

// Apply runs the rules in declaration order over the records and returns
// the surviving typed rows plus the per-rule drop counts. A record dropped
// by rule i is never evaluated against any later rule, so every removal is
// attributed to exactly one rule. Only a structural failure (a required
// column absent from the header) returns a non-nil error.
func (e *Engine) Apply(
	entity string,
	header []string,
	records []model.Record,
	rules []ColumnRule,
) ([]model.Row, []model.RuleDrop, error) {
	if err := checkRequiredColumns(entity, header, rules); err != nil {
		return nil, nil, err
	}

	// Seed each row with the raw values so pass-through columns survive
	// cleaning untouched. Rules overwrite their column with a typed value.
	survivors := make([]model.Row, 0, len(records))
	for _, rec := range records {
		row := make(model.Row, len(rec))
		for col, val := range rec {
			row[col] = val
		}
		survivors = append(survivors, row)
	}

	drops := make([]model.RuleDrop, 0, len(rules))
	for _, rule := range rules {
		passed := make([]model.Row, 0, len(survivors))
		dropped := 0

		for _, row := range survivors {
			// Yields "" when the column is absent or already typed by an
			// earlier rule; range checks read the typed value instead.
			raw, _ := row[rule.Column].(string)

			value, err := rule.Check(raw, row)
			if err != nil {
				dropped++
				continue
			}
			row[rule.Column] = value
			passed = append(passed, row)
		}

		drops = append(drops, model.RuleDrop{Rule: rule.Name, Count: dropped})
		survivors = passed

		if dropped > 0 {
			e.logger.Info("Rule dropped rows",
				zap.String("entity", entity),
				zap.String("rule", rule.Name),
				zap.String("column", rule.Column),
				zap.Int("dropped", dropped),
				zap.Int("surviving", len(survivors)))
		}
	}

	return survivors, drops, nil
}

// checkRequiredColumns verifies every rule's column exists in the header
func checkRequiredColumns(entity string, header []string, rules []ColumnRule) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}

	missing := make(map[string]bool)
	for _, rule := range rules {
		if !present[rule.Column] {
			missing[rule.Column] = true
		}
	}
	if len(missing) == 0 {
		return nil
	}

	columns := make([]string, 0, len(missing))
	for col := range missing {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	return &MissingColumnsError{Entity: entity, Columns: columns}
}

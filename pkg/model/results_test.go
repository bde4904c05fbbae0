package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntityResultAccounting(t *testing.T) {
	r := NewEntityResult("customers")
	r.RowsRead = 20
	r.Duplicates = 3
	r.RuleDrops = []RuleDrop{
		{Rule: "non_numeric_customer_id", Count: 2},
		{Rule: "invalid_region", Count: 1},
	}
	r.RowsKept = 14
	r.Complete(true)

	assert.Equal(t, 6, r.TotalDropped())
	assert.Equal(t, 6, r.Difference())
	assert.Equal(t, r.RowsRead, r.TotalDropped()+r.RowsKept)
	assert.True(t, r.Success)
	assert.False(t, r.EndTime.IsZero())
}

func TestRunSummarySuccessStates(t *testing.T) {
	s := NewRunSummary("run-1")
	assert.False(t, s.CleanedAll(), "no entities means nothing cleaned")

	ok := NewEntityResult("customers")
	ok.Complete(true)
	s.AddEntityResult(ok)
	assert.True(t, s.CleanedAll())
	assert.False(t, s.FullSuccess(), "load not attempted yet")

	s.LoadAttempted = true
	assert.True(t, s.FullSuccess())

	failed := NewEntityResult("products")
	failed.Complete(false)
	s.AddEntityResult(failed)
	assert.False(t, s.CleanedAll())
	assert.False(t, s.FullSuccess())
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1000", FormatValue(int64(1000)))
	assert.Equal(t, "19.99", FormatValue(19.99))
	assert.Equal(t, "10000", FormatValue(float64(10000)))
	assert.Equal(t, "2020-01-15", FormatValue(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "East", FormatValue("East"))
	assert.Equal(t, "", FormatValue(nil))
}

// pkg/model/record.go
package model

import (
	"strconv"
	"time"

	"github.com/spf13/cast"
)

// Record is a raw CSV record: column name to raw string value.
// A column absent from the map is distinct from a column holding "".
type Record map[string]string

// Clone returns a copy of the record
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Row is a validated record: column name to typed value.
// Validated columns hold int64, float64, time.Time or a trimmed string;
// pass-through columns keep their raw string value.
type Row map[string]interface{}

// Int returns the int64 value of a column, or 0 if absent or untyped
func (r Row) Int(column string) int64 {
	v, _ := r[column].(int64)
	return v
}

// Float returns the float64 value of a column, or 0 if absent or untyped
func (r Row) Float(column string) float64 {
	v, _ := r[column].(float64)
	return v
}

// Time returns the time.Time value of a column, or the zero time
func (r Row) Time(column string) time.Time {
	v, _ := r[column].(time.Time)
	return v
}

// String returns the string value of a column, or "" if absent or untyped
func (r Row) String(column string) string {
	v, _ := r[column].(string)
	return v
}

// FormatValue serializes a typed value for CSV output: integers unquoted,
// dates as ISO YYYY-MM-DD, floats at full precision, strings verbatim.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return cast.ToString(val)
	}
}

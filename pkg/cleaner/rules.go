// pkg/cleaner/rules.go
package cleaner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/retailworks/salesprep/pkg/model"
)

// Date formats accepted by date rules, tried in order. The source data
// writes dates as M/D/YYYY; ISO forms are accepted for already-normalized
// inputs. time.Parse rejects impossible calendar dates like 2020/02/30.
var dateFormats = []string{
	"1/2/2006",
	"1-2-2006",
	"2006-01-02",
	"2006/01/02",
}

// IntValue returns a check that parses the raw cell as a base-10 integer.
// Empty or absent cells always fail; nothing is coerced to zero.
func IntValue() CheckFunc {
	return func(raw string, _ model.Row) (interface{}, error) {
		return parseInt(raw)
	}
}

// IntRange returns a check that the typed integer produced by a preceding
// parse rule on the same column falls within [min, max] inclusive.
func IntRange(column string, min, max int64) CheckFunc {
	return func(_ string, typed model.Row) (interface{}, error) {
		v, ok := typed[column].(int64)
		if !ok {
			return nil, fmt.Errorf("column %s has no typed integer value", column)
		}
		if v < min || v > max {
			return nil, fmt.Errorf("value %d outside range [%d, %d]", v, min, max)
		}
		return v, nil
	}
}

// RequiredText returns a check that the cell is non-empty after trimming.
// The trimmed form is stored.
func RequiredText() CheckFunc {
	return func(raw string, _ model.Row) (interface{}, error) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil, errors.New("empty after trim")
		}
		return trimmed, nil
	}
}

// OneOf returns a check that the cell, after trimming and capitalization,
// is a member of the valid set. " east " and "EAST" both match "East"; a
// normalized value still outside the set is dropped, never defaulted.
func OneOf(valid []string) CheckFunc {
	set := make(map[string]bool, len(valid))
	for _, v := range valid {
		set[v] = true
	}
	return func(raw string, _ model.Row) (interface{}, error) {
		normalized := capitalize(strings.TrimSpace(raw))
		if !set[normalized] {
			return nil, fmt.Errorf("%q not in valid set", normalized)
		}
		return normalized, nil
	}
}

// DateValue returns a check that parses the cell against the pinned date
// formats. Empty cells and impossible calendar dates fail.
func DateValue() CheckFunc {
	return func(raw string, _ model.Row) (interface{}, error) {
		return parseDate(raw)
	}
}

// FloatRange returns a check that parses the cell as a float and verifies
// it falls within [min, max] inclusive. Parse and range failures are one
// drop cause, matching how the source attributes invalid amounts.
func FloatRange(min, max float64) CheckFunc {
	return func(raw string, _ model.Row) (interface{}, error) {
		v, err := parseFloat(raw)
		if err != nil {
			return nil, err
		}
		if v < min || v > max {
			return nil, fmt.Errorf("value %g outside range [%g, %g]", v, min, max)
		}
		return v, nil
	}
}

// parseInt converts a raw cell to int64, rejecting empty strings
func parseInt(raw string) (int64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as integer", raw)
	}
	return v, nil
}

// parseFloat converts a raw cell to float64, rejecting empty strings
func parseFloat(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as float", raw)
	}
	return v, nil
}

// parseDate converts a raw cell to time.Time using the pinned formats
func parseDate(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, errors.New("empty value")
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date from %q", raw)
}

// capitalize upper-cases the first rune and lower-cases the rest,
// mirroring how categorical values are standardized before comparison
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

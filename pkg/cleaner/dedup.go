// pkg/cleaner/dedup.go
package cleaner

import (
	"sort"
	"strings"

	"github.com/retailworks/salesprep/pkg/model"
)

// Deduplicate removes exact full-row duplicates from the input, keeping
// the first occurrence and preserving relative order. Two records are
// duplicates only when every column's raw value matches, including the
// absent-vs-present distinction. It never fails; malformed rows are
// ordinary data for comparison purposes.
func Deduplicate(records []model.Record) ([]model.Record, int) {
	seen := make(map[string]bool, len(records))
	kept := make([]model.Record, 0, len(records))
	removed := 0

	for _, rec := range records {
		key := recordKey(rec)
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		kept = append(kept, rec)
	}

	return kept, removed
}

// recordKey builds a canonical encoding of a record over its present
// columns. Absent columns are excluded, so an absent column never
// collides with a present empty one.
func recordKey(rec model.Record) string {
	columns := make([]string, 0, len(rec))
	for col := range rec {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	var sb strings.Builder
	for _, col := range columns {
		sb.WriteString(col)
		sb.WriteByte(0x1f)
		sb.WriteString(rec[col])
		sb.WriteByte(0x1e)
	}
	return sb.String()
}

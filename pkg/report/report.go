// pkg/report/report.go
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retailworks/salesprep/pkg/model"
)

// WriteDifferences renders the per-entity record-count report: rows read
// from the dirty source, rows kept after cleaning, and the difference,
// with the per-rule drop breakdown underneath.
func WriteDifferences(w io.Writer, results []*model.EntityResult) error {
	var sb strings.Builder
	sb.WriteString("Record Count Differences Report\n")

	for _, r := range results {
		sb.WriteString(fmt.Sprintf("\n%s:\n", titleCase(r.Entity)))
		sb.WriteString(fmt.Sprintf("  Raw records count: %d\n", r.RowsRead))
		sb.WriteString(fmt.Sprintf("  Prepared records count: %d\n", r.RowsKept))
		sb.WriteString(fmt.Sprintf("  Difference: %d records removed\n", r.Difference()))

		if !r.Success {
			sb.WriteString(fmt.Sprintf("  Cleaning failed: %v\n", r.StructuralErr))
			continue
		}

		if r.Duplicates > 0 {
			sb.WriteString(fmt.Sprintf("    duplicates: %d\n", r.Duplicates))
		}
		for _, drop := range r.RuleDrops {
			if drop.Count > 0 {
				sb.WriteString(fmt.Sprintf("    %s: %d\n", drop.Rule, drop.Count))
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteDifferencesFile writes the report to a file, creating the parent
// directory if needed
func WriteDifferencesFile(path string, results []*model.EntityResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := WriteDifferences(f, results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// titleCase upper-cases the first letter of an entity name for display
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

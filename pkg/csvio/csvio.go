// pkg/csvio/csvio.go
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retailworks/salesprep/pkg/model"
)

// ReadFile reads a header-addressed CSV file into raw records. Cells are
// kept as raw strings; a row shorter than the header leaves the trailing
// columns absent rather than empty.
func ReadFile(path string) ([]string, []model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	header, records, err := Read(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return header, records, nil
}

// Read reads header-addressed CSV data from a reader
func Read(r io.Reader) ([]string, []model.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may be ragged in dirty data

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("input has no header row")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []model.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row: %w", err)
		}

		rec := make(model.Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}

	return header, records, nil
}

// WriteFile writes validated rows to a CSV file, creating the parent
// directory if needed. Column order follows the given header; output is
// deterministic for identical input.
func WriteFile(path string, header []string, rows []model.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, header, rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Write serializes validated rows as CSV: integers unquoted, dates in ISO
// form, floats at full precision, strings verbatim.
func Write(w io.Writer, header []string, rows []model.Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			record[i] = model.FormatValue(row[col])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Package dataset handles the flat-file inputs and the results CSV.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Row represents a single CSV row as a column name → value mapping.
type Row map[string]string

// LoadCSV reads a CSV file whose first row is the header and returns the
// remaining rows as maps.
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headers := records[0]
	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("csv: %s row %d has %d columns, expected %d", path, i+2, len(record), len(headers))
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// FromCSV renders CSV data as readable lines, one record per line with
// fields joined by " | ". Ragged rows are tolerated.
func FromCSV(data []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("csv file is empty")
	}

	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = strings.Join(rec, " | ")
	}
	return strings.Join(lines, "\n"), nil
}

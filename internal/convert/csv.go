package convert

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
)

// RecordsToCSV writes records as CSV: the wkt column first, then every
// property key seen in any record, sorted. Missing values are empty cells.
func RecordsToCSV(records []Record) (string, error) {
	columns := make(map[string]struct{})
	for _, r := range records {
		for _, k := range r.keys {
			if k != WKTKey {
				columns[k] = struct{}{}
			}
		}
	}
	headers := append([]string{WKTKey}, sortedKeys(columns)...)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return "", errors.Wrap(err, "failed to write CSV header")
	}

	for i, r := range records {
		row := make([]string, len(headers))
		for j, h := range headers {
			v, ok := r.values[h]
			if !ok {
				continue
			}
			cell, err := csvCell(v)
			if err != nil {
				return "", errors.Wrapf(err, "record %d field %q", i, h)
			}
			row[j] = cell
		}
		if err := w.Write(row); err != nil {
			return "", errors.Wrap(err, "failed to write row to CSV")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, "error during CSV writing")
	}
	return buf.String(), nil
}

func csvCell(v interface{}) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(v)
		return string(data), err
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

package figure

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/ec-intl/chartly/pkg/errors"
)

// loadCSV reads a data file and returns one series per column. A
// non-numeric first record is treated as a header and skipped; every
// other cell must parse as a float.
func loadCSV(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "open data file %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "read data file %s", path)
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFigure, "data file %s is empty", path)
	}

	start := 0
	if isHeader(records[0]) {
		start = 1
	}
	if start == len(records) {
		return nil, errors.New(errors.ErrCodeInvalidFigure, "data file %s has no data rows", path)
	}

	cols := len(records[start])
	series := make([][]float64, cols)
	for i := range series {
		series[i] = make([]float64, 0, len(records)-start)
	}
	for rowIdx, record := range records[start:] {
		if len(record) != cols {
			return nil, errors.New(errors.ErrCodeInvalidFigure,
				"data file %s row %d has %d columns, want %d", path, rowIdx+start+1, len(record), cols)
		}
		for col, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err,
					"data file %s row %d column %d", path, rowIdx+start+1, col+1)
			}
			series[col] = append(series[col], v)
		}
	}
	return series, nil
}

func isHeader(record []string) bool {
	for _, cell := range record {
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return true
		}
	}
	return false
}

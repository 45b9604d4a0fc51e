package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrColumnNotFound is returned when a named column does not exist in the
// dataset header. Callers can use errors.Is() to distinguish a missing
// column from other failures.
var ErrColumnNotFound = errors.New("column not found in dataset")

// SurveyDataset is the in-memory tabular representation of a loaded survey CSV.
//
// Invariant: a SurveyDataset is either fully loaded (header present, every row
// holding at least one cell per header column) or absent (a nil pointer).
// NewSurveyDataset establishes the row shape, so downstream code only has to
// check for nil.
type SurveyDataset struct {
	// Path is the file the dataset was loaded from.
	Path string `json:"path"`

	// Name is the base filename without extension, used as the dataset key
	// in the history database.
	Name string `json:"name"`

	// Header holds the column names in file order.
	Header []string `json:"header"`

	// Rows holds the data records in file order. Rows[i][j] is the value of
	// column Header[j] in record i. Cells are stored as raw strings; type
	// interpretation happens in the analysis package.
	Rows [][]string `json:"-"`
}

// NewSurveyDataset creates a dataset for the given source path.
// The dataset name is derived from the path's base filename.
// Rows shorter than the header are padded with empty cells so that every
// stored row has at least one cell per column. CSV exporters commonly drop
// trailing blank cells, so short rows are valid input rather than a defect.
func NewSurveyDataset(path string, header []string, rows [][]string) *SurveyDataset {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) >= len(header) {
			padded[i] = row
			continue
		}
		full := make([]string, len(header))
		copy(full, row)
		padded[i] = full
	}

	return &SurveyDataset{
		Path:   path,
		Name:   name,
		Header: header,
		Rows:   padded,
	}
}

// RowCount returns the number of data records (excluding the header).
func (d *SurveyDataset) RowCount() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of the named column in the header,
// or -1 if the column does not exist.
func (d *SurveyDataset) ColumnIndex(name string) int {
	for i, h := range d.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns all values of the named column in row order.
// Returns an error wrapping ErrColumnNotFound if the column does not exist.
func (d *SurveyDataset) Column(name string) ([]string, error) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			ErrColumnNotFound, name, strings.Join(d.Header, ", "))
	}

	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// NumericColumn returns the named column parsed as float64 values.
// Empty cells are skipped, matching how spreadsheet tools treat blanks.
// The second return value reports whether the column is numeric: it is false
// when the column does not exist, contains no parseable values, or contains
// a non-empty cell that is not a number.
func (d *SurveyDataset) NumericColumn(name string) ([]float64, bool) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}

	values := make([]float64, 0, len(d.Rows))
	for _, row := range d.Rows {
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, false
	}
	return values, true
}

// NumericColumnNames returns the names of all columns whose non-empty cells
// all parse as numbers, in header order.
func (d *SurveyDataset) NumericColumnNames() []string {
	var names []string
	for _, h := range d.Header {
		if _, ok := d.NumericColumn(h); ok {
			names = append(names, h)
		}
	}
	return names
}

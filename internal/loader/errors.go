package loader

import "errors"

var (
	// ErrEmptyCSV is returned when a CSV file exists but contains no
	// header row.
	ErrEmptyCSV = errors.New("csv file is empty")
	// ErrMalformedCSV is returned when a CSV file cannot be parsed.
	ErrMalformedCSV = errors.New("malformed csv file")
)

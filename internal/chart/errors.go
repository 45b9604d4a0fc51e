package chart

import "errors"

var (
	// ErrRenderChart is returned when a chart cannot be built from a
	// frequency table.
	ErrRenderChart = errors.New("failed to render chart")
	// ErrSaveChart is returned when a rendered chart cannot be written
	// to disk.
	ErrSaveChart = errors.New("failed to save chart")
)

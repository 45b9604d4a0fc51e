package model

// ColumnSummary holds descriptive statistics for one numeric column.
// Values are stored at full precision; report writers round to three
// decimal places when rendering.
type ColumnSummary struct {
	// Column is the name of the summarized column.
	Column string `json:"column"`

	// Count is the number of non-empty cells that contributed to the
	// statistics.
	Count int `json:"count"`

	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stdDev"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
}

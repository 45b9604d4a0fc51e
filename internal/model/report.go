package model

import "time"

// SurveyReport is the result of one analysis run over a survey dataset.
// It accumulates as pipeline steps execute and is the unit of storage in
// the history database.
type SurveyReport struct {
	// DatasetName identifies the dataset (CSV base filename without
	// extension). It is the lookup key for historical comparison.
	DatasetName string `json:"datasetName"`

	// DatasetPath is the CSV file the run was started for. Set even when
	// the file turned out to be missing.
	DatasetPath string `json:"datasetPath"`

	// AnalyzedAt is when the run started.
	AnalyzedAt time.Time `json:"analyzedAt"`

	// DatasetAbsent reports that the CSV could not be loaded (missing or
	// unreadable file). When true, all analysis fields stay empty and no
	// artifacts are produced.
	DatasetAbsent bool `json:"datasetAbsent"`

	// RowCount is the number of data records in the dataset.
	RowCount int `json:"rowCount"`

	// Columns holds the dataset header in file order.
	Columns []string `json:"columns,omitempty"`

	// ExistingBrand counts the brands respondents currently own.
	ExistingBrand *FrequencyTable `json:"existingBrand,omitempty"`

	// PreferredBrand counts the brands respondents would rather own.
	PreferredBrand *FrequencyTable `json:"preferredBrand,omitempty"`

	// NumericSummaries holds descriptive statistics for every numeric
	// column, in header order.
	NumericSummaries []ColumnSummary `json:"numericSummaries,omitempty"`

	// ReportFile is the path the text report was written to, empty if the
	// report step did not run.
	ReportFile string `json:"reportFile,omitempty"`

	// ChartFile is the path the preferred-brand chart PNG was written to,
	// empty if the chart step did not run.
	ChartFile string `json:"chartFile,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performedSteps,omitempty"`

	// ErrorMessage holds the failure text when a pipeline step failed.
	ErrorMessage string `json:"errorMessage,omitempty"`

	// Error holds the failure for programmatic use. Not serialized;
	// ErrorMessage carries the text across process boundaries.
	Error error `json:"-"`
}

// NewSurveyReport creates an empty report for the given CSV path.
func NewSurveyReport(path string) *SurveyReport {
	return &SurveyReport{
		DatasetPath: path,
		AnalyzedAt:  time.Now(),
	}
}

// TopPreferredBrand returns the most preferred brand, or false when the
// preferred-brand table is missing or empty.
func (r *SurveyReport) TopPreferredBrand() (string, bool) {
	if r.PreferredBrand == nil {
		return "", false
	}
	return r.PreferredBrand.Top()
}

// HasData reports whether the run produced any analysis output.
func (r *SurveyReport) HasData() bool {
	return !r.DatasetAbsent && (r.ExistingBrand != nil || r.PreferredBrand != nil)
}

// Package model defines the core data structures used throughout surveyscan.
//
// This package contains the following main types:
//   - SurveyDataset: The in-memory tabular form of a loaded survey CSV
//   - FrequencyTable: Occurrence counts per distinct category value
//   - ColumnSummary: Descriptive statistics for a numeric column
//   - SurveyReport: The result of one analysis run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (loader, analysis, chart, report, database)
// need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model

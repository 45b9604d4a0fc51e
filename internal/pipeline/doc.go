// Package pipeline orchestrates the analysis of survey datasets.
//
// An analysis run is a sequence of steps executed in order: load the CSV,
// count brand frequencies, describe numeric columns, render charts, and
// write the report. Each step receives the accumulated run state and adds
// its results to the report.
//
// The package provides:
//   - Step: interface implemented by all analysis steps
//   - Pipeline: sequential step executor with cancellation support
//   - BatchProcessor: concurrent execution of one pipeline per CSV file
//
// Design decision: We use a step-based pipeline rather than one monolithic
// function because steps can be composed per invocation (for example the
// chart step is dropped when chart output is disabled) and each step is
// testable in isolation.
package pipeline

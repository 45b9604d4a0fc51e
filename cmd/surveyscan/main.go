// Package main provides the entry point for the surveyscan CLI.
//
// Surveyscan analyzes mobile brand survey CSV files. It computes
// descriptive statistics and brand preference counts, renders bar charts,
// and writes a text report.
//
// Usage:
//
//	surveyscan analyze <csv-file>
//	surveyscan analyze file1.csv file2.csv
//
// See --help for all available options.
package main

// main is the entry point for surveyscan.
func main() {
	Execute()
}

// Package analysis computes the statistics of a survey dataset.
//
// It provides two operations. Frequencies counts how often each label
// appears in a categorical column, which drives the brand counts in the
// report and the bars in the chart. Describe summarizes every numeric
// column with count, mean, spread, and quartiles, matching the basic
// statistics block of the text report.
//
// Both operations treat an absent dataset as a no-op rather than an
// error, so a run whose CSV file was missing still produces a report
// stating that nothing was analyzed.
package analysis

// Package database provides SQLite-based storage for analysis history.
//
// Every analysis run can be saved with its full report, keyed by dataset
// name and timestamp. The compare command reads this history to show how
// brand preferences moved between two runs over the same dataset.
//
// Design decision: We store the full report as JSON beside a few indexed
// columns rather than normalizing it into tables. The report shape
// evolves with the tool, and history queries only ever need whole
// reports plus cheap metadata listings.
package database

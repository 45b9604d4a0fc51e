// Package loader reads survey CSV files from disk into model.SurveyDataset
// values.
//
// The loader distinguishes between a missing file and a malformed one. A
// missing or unreadable file is reported as a diagnostic and yields an
// absent dataset, so a run over several files can continue past the ones
// that do not exist. A file that exists but cannot be parsed as CSV is an
// error.
//
// Files are expected to be UTF-8. When a file contains bytes that are not
// valid UTF-8 it is re-decoded as Latin-1 before parsing, which covers the
// spreadsheet exports that carry accented names in legacy encodings.
package loader

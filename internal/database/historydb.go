package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lowmax205/surveyscan/internal/model"
)

// HistoryDB provides SQLite-based storage for analysis runs.
// It manages the connection and provides methods for saving and
// retrieving survey reports.
//
// Design decision: We use a single database file for all datasets rather
// than one file per dataset. This keeps the compare command a single
// query and simplifies backup/restore operations.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "surveyscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer, so a single connection avoids
	// lock contention.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the location of the database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Analysis runs store complete survey reports as JSON
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		dataset_name TEXT NOT NULL,
		analyzed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		row_count INTEGER DEFAULT 0,
		top_brand TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_dataset ON analysis_runs(dataset_name);
	CREATE INDEX IF NOT EXISTS idx_runs_analyzed_at ON analysis_runs(analyzed_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReport stores an analysis run and returns its database ID.
func (hdb *HistoryDB) SaveReport(ctx context.Context, report *model.SurveyReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	topBrand, _ := report.TopPreferredBrand()

	query := `
	INSERT INTO analysis_runs (dataset_name, analyzed_at, row_count, top_brand, report_json)
	VALUES (?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		report.DatasetName,
		report.AnalyzedAt.UTC().Format("2006-01-02 15:04:05"),
		report.RowCount,
		topBrand,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save analysis run: %w", err)
	}

	return result.LastInsertId()
}

// GetRun retrieves an analysis run by its database ID.
// Returns nil without error when no run has that ID.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*model.SurveyReport, error) {
	query := `
	SELECT report_json FROM analysis_runs
	WHERE id = ?
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	var report model.SurveyReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// LatestRunID returns the database ID of the most recent run for a dataset,
// or 0 when the dataset has no runs.
func (hdb *HistoryDB) LatestRunID(ctx context.Context, datasetName string) (int64, error) {
	query := `
	SELECT id FROM analysis_runs
	WHERE dataset_name = ?
	ORDER BY analyzed_at DESC, id DESC
	LIMIT 1
	`

	var id int64
	err := hdb.db.QueryRowContext(ctx, query, datasetName).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}

	return id, nil
}

// LatestRuns retrieves up to limit most recent runs for a dataset,
// newest first.
func (hdb *HistoryDB) LatestRuns(ctx context.Context, datasetName string, limit int) ([]*model.SurveyReport, error) {
	query := `
	SELECT report_json FROM analysis_runs
	WHERE dataset_name = ?
	ORDER BY analyzed_at DESC, id DESC
	LIMIT ?
	`

	rows, err := hdb.db.QueryContext(ctx, query, datasetName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get run history: %w", err)
	}
	defer rows.Close()

	var reports []*model.SurveyReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		var report model.SurveyReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// RunMetadata contains summary information about a stored analysis run.
// This is used for listing history without loading full reports.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// DatasetName identifies the analyzed dataset.
	DatasetName string

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time

	// RowCount is the number of survey responses in the run.
	RowCount int

	// TopBrand is the most preferred brand of the run.
	TopBrand string
}

// ListRuns retrieves run metadata for a dataset, newest first.
func (hdb *HistoryDB) ListRuns(ctx context.Context, datasetName string) ([]RunMetadata, error) {
	query := `
	SELECT id, dataset_name, analyzed_at, row_count, top_brand
	FROM analysis_runs
	WHERE dataset_name = ?
	ORDER BY analyzed_at DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, datasetName)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var analyzedAt string
		var topBrand sql.NullString

		if err := rows.Scan(&meta.ID, &meta.DatasetName, &analyzedAt, &meta.RowCount, &topBrand); err != nil {
			return nil, fmt.Errorf("failed to scan run metadata: %w", err)
		}

		meta.AnalyzedAt = parseTimestamp(analyzedAt)
		meta.TopBrand = topBrand.String

		results = append(results, meta)
	}

	return results, rows.Err()
}

// ListDatasets returns the names of all datasets with stored runs.
func (hdb *HistoryDB) ListDatasets(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT dataset_name FROM analysis_runs
	ORDER BY dataset_name
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan dataset name: %w", err)
		}
		datasets = append(datasets, name)
	}

	return datasets, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

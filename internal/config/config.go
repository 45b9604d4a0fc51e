package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the survey analysis workflow the tool was built around:
// one CSV of questionnaire responses producing a text report and a chart.
const (
	// DefaultReportFile is the filename of the text report artifact.
	DefaultReportFile = "survey_report.txt"

	// DefaultChartFile is the filename of the preferred-brand chart PNG.
	DefaultChartFile = "brand_count_plot.png"

	// DefaultExistingColumn is the column holding the brand each
	// respondent currently owns.
	DefaultExistingColumn = "Exst_brand"

	// DefaultPreferredColumn is the column holding the brand each
	// respondent would rather own.
	DefaultPreferredColumn = "Prefer_brand"

	// DefaultBatchSize of 4 concurrent file analyses balances throughput
	// with resource usage. Chart rendering is the heavy part of a run,
	// and a handful in flight keeps memory predictable.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "surveyscan"
)

// ExpectedColumns is the header layout the survey questionnaires use.
// Only the brand columns are required; the rest inform the help text so
// users can check their export against the expected shape.
var ExpectedColumns = []string{
	"Name", "Age", "Gender",
	"Exst_brand", "Exst_model",
	"Prefer_brand", "Prefer_model",
}

// Config holds all configuration options for surveyscan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., AnalyzeConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// CSVFiles is the list of survey CSV files to analyze.
	// Must contain at least one path.
	CSVFiles []string

	// OutputDir is the directory artifacts are written to.
	// Empty means the current working directory.
	OutputDir string

	// ReportFile is the filename of the text report artifact.
	ReportFile string

	// ChartFile is the filename of the preferred-brand chart artifact.
	ChartFile string

	// ExistingColumn is the CSV column counted as the existing brand.
	ExistingColumn string

	// PreferredColumn is the CSV column counted as the preferred brand.
	PreferredColumn string

	// JSONReport enables JSON report output on stdout instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output on stdout instead of
	// the human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// NoSave disables saving analysis runs to the history database.
	NoSave bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of concurrent analyses when processing
	// multiple CSV files.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .surveyscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Datasets holds dataset-specific configuration loaded from the
	// config file. Populated by LoadConfigFile.
	Datasets *File

	// DBDir is the directory path for storing the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (filenames, column
// names). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		ReportFile:      DefaultReportFile,
		ChartFile:       DefaultChartFile,
		ExistingColumn:  DefaultExistingColumn,
		PreferredColumn: DefaultPreferredColumn,
		BatchSize:       DefaultBatchSize,
		DBDir:           XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for surveyscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/surveyscan
// On macOS: ~/Library/Application Support/surveyscan
// On Windows: %LOCALAPPDATA%\surveyscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for surveyscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/surveyscan
// On macOS: ~/Library/Application Support/surveyscan
// On Windows: %APPDATA%\surveyscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any analysis begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.CSVFiles) == 0 {
		return ErrNoInput
	}

	if c.ReportFile == "" {
		return ErrEmptyReportFile
	}

	if c.ChartFile == "" {
		return ErrEmptyChartFile
	}

	if c.ExistingColumn == "" || c.PreferredColumn == "" {
		return ErrEmptyBrandColumn
	}

	// BatchSize must be positive; zero would mean no analysis
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// ColumnsFor resolves the brand columns for one dataset, applying any
// per-dataset override from the config file on top of the flag values.
func (c *Config) ColumnsFor(datasetName string) (existing, preferred string) {
	existing = c.ExistingColumn
	preferred = c.PreferredColumn

	if c.Datasets == nil {
		return existing, preferred
	}
	dc := c.Datasets.GetDatasetConfig(datasetName)
	if dc.ExistingColumn != "" {
		existing = dc.ExistingColumn
	}
	if dc.PreferredColumn != "" {
		preferred = dc.PreferredColumn
	}
	return existing, preferred
}

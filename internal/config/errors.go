package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoInput is returned when no CSV file is specified.
	// This error occurs when the analyze command gets no positional arguments.
	ErrNoInput = errors.New("no input specified: provide at least one survey CSV file")

	// ErrEmptyReportFile is returned when the report filename is blank.
	// The text report is the primary artifact and always has a name.
	ErrEmptyReportFile = errors.New("empty report filename: --report requires a filename")

	// ErrEmptyChartFile is returned when the chart filename is blank.
	ErrEmptyChartFile = errors.New("empty chart filename: --chart requires a filename")

	// ErrEmptyBrandColumn is returned when either brand column name is blank.
	// The frequency counts need both the existing and preferred columns.
	ErrEmptyBrandColumn = errors.New("empty brand column: existing and preferred column names are required")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent analyses, effectively
	// stopping the run.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)

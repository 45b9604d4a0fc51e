package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lowmax205/surveyscan/internal/config"
	"github.com/lowmax205/surveyscan/internal/database"
	"github.com/lowmax205/surveyscan/internal/loader"
	"github.com/lowmax205/surveyscan/internal/log"
	"github.com/lowmax205/surveyscan/internal/model"
	"github.com/lowmax205/surveyscan/internal/pipeline"
	"github.com/lowmax205/surveyscan/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [csv-file]...",
		Short: "Analyze survey CSV files and produce reports",
		Long: `Analyze reads survey CSV files and produces for each one:
- Descriptive statistics for every numeric column
- Occurrence counts for the existing and preferred brand columns
- A bar chart of preferred brand counts (PNG)
- A text report summarizing all of the above

The expected CSV header is:
  ` + strings.Join(config.ExpectedColumns, ", ") + `

Only the brand columns are required; their names can be changed with a
.surveyscan configuration file.

Examples:
  # Analyze a single survey file
  surveyscan analyze survey.csv

  # Analyze several files concurrently
  surveyscan analyze west.csv east.csv north.csv

  # Write artifacts to a specific directory
  surveyscan analyze -o results/ survey.csv

  # Print the report as JSON instead of text
  surveyscan analyze --json survey.csv

  # Use a custom configuration file
  surveyscan analyze -c myconfig.yaml survey.csv

Configuration file (.surveyscan) example:
  datasets:
    campus:
      existingColumn: Current_brand
      preferredColumn: Wanted_brand
  defaults:
    chartFile: brand_count_plot.png`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Artifact flags
	cmd.Flags().StringP("output-dir", "o", "",
		"Directory for report and chart artifacts (default: current directory)")
	cmd.Flags().StringP("report", "r", config.DefaultReportFile,
		"Filename of the text report artifact")
	cmd.Flags().StringP("chart", "p", config.DefaultChartFile,
		"Filename of the preferred-brand chart artifact")

	// Batch analysis flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses for multiple files")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .surveyscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Print the report as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print the report as Markdown (mutually exclusive with --json)")
	cmd.Flags().BoolP("no-save", "n", false,
		"Do not save the analysis run to the history database")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("report")
	if err != nil {
		return nil, err
	}

	cfg.ChartFile, err = cmd.Flags().GetString("chart")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load dataset-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Datasets, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Datasets = &config.File{
			Datasets: make(map[string]config.DatasetConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.NoSave, err = cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}

	// Get positional arguments (CSV files)
	cfg.CSVFiles = args

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Respondent identities are redacted from all log output.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewPrivacyLogger(os.Stderr, verbose)
}

// runAnalyze executes the analysis.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"files", cfg.CSVFiles,
		"batchSize", cfg.BatchSize,
		"saveToDB", !cfg.NoSave,
	)

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Open database connection unless saving is disabled
	var db *database.HistoryDB
	if !cfg.NoSave {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Use batch processor for parallel analysis if multiple files
	if len(cfg.CSVFiles) > 1 && cfg.BatchSize > 1 {
		return runBatchAnalyze(ctx, cfg, db, logger)
	}

	return runSequentialAnalyze(ctx, cfg, db, logger)
}

// runSequentialAnalyze analyzes files one at a time.
func runSequentialAnalyze(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	multiple := len(cfg.CSVFiles) > 1
	for _, path := range cfg.CSVFiles {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := createPipelineForFile(cfg, logger, path, multiple)
		analysis := pipeline.NewAnalysis(path)

		fmt.Printf("Analyzing %s...\n", path)
		startTime := time.Now()

		if err := p.Execute(ctx, analysis); err != nil {
			logger.Error("analysis failed", "path", path, "error", err)
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %v\n", path, err)
			printColumnHint(err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Analysis completed in %s\n\n", elapsed.Round(time.Millisecond))

		if err := outputReport(cfg, analysis.Report); err != nil {
			logger.Error("report output failed", "path", path, "error", err)
		}

		if err := saveReport(ctx, db, analysis.Report, logger); err != nil {
			logger.Error("failed to save analysis run", "path", path, "error", err)
		}
	}

	return nil
}

// runBatchAnalyze analyzes multiple files concurrently using BatchProcessor.
func runBatchAnalyze(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch analysis of %d files (concurrency: %d)...\n\n",
		len(cfg.CSVFiles), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func(path string) *pipeline.Pipeline {
			return createPipelineForFile(cfg, logger, path, true)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	reports, err := bp.ProcessBatch(ctx, cfg.CSVFiles)
	if err != nil {
		return err
	}

	for i, rep := range reports {
		fmt.Printf("[%d/%d] Analysis completed: %s\n", i+1, len(reports), rep.DatasetPath)

		if err := outputReport(cfg, rep); err != nil {
			logger.Error("report output failed", "path", rep.DatasetPath, "error", err)
		}

		if err := saveReport(ctx, db, rep, logger); err != nil {
			logger.Error("failed to save analysis run", "path", rep.DatasetPath, "error", err)
		}
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch analysis completed in %s\n", elapsed.Round(time.Millisecond))

	return nil
}

// createPipelineForFile creates a pipeline for one CSV file. When several
// files are analyzed together, artifact filenames are prefixed with the
// dataset name so runs don't overwrite each other.
func createPipelineForFile(cfg *config.Config, logger *slog.Logger, path string, multiple bool) *pipeline.Pipeline {
	name := datasetNameFromPath(path)
	existing, preferred := cfg.ColumnsFor(name)
	reportPath, chartPath := artifactPaths(cfg, name, multiple)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewLoadStep(loader.NewLoader(loader.WithLogger(logger))),
		pipeline.NewFrequencyStep(existing, preferred),
		pipeline.NewDescribeStep(),
		pipeline.NewChartStep(chartPath, pipeline.WithChartLogger(logger)),
		pipeline.NewReportStep(reportPath, pipeline.WithReportLogger(logger)),
	)
	return p
}

// artifactPaths resolves the report and chart file paths for a dataset,
// applying config file overrides and the output directory.
func artifactPaths(cfg *config.Config, datasetName string, multiple bool) (reportPath, chartPath string) {
	reportFile := cfg.ReportFile
	chartFile := cfg.ChartFile

	if cfg.Datasets != nil {
		dc := cfg.Datasets.GetDatasetConfig(datasetName)
		if dc.ReportFile != "" {
			reportFile = dc.ReportFile
		}
		if dc.ChartFile != "" {
			chartFile = dc.ChartFile
		}
	}

	if multiple {
		reportFile = datasetName + "_" + reportFile
		chartFile = datasetName + "_" + chartFile
	}

	return filepath.Join(cfg.OutputDir, reportFile), filepath.Join(cfg.OutputDir, chartFile)
}

// datasetNameFromPath derives the dataset name from a CSV path.
func datasetNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// printColumnHint points the user at the expected CSV layout when a
// brand column was not found.
func printColumnHint(err error) {
	if errors.Is(err, model.ErrColumnNotFound) {
		fmt.Fprintf(os.Stderr, "Expected CSV columns: %s\n",
			strings.Join(config.ExpectedColumns, ", "))
	}
}

// outputReport prints the report to stdout in the requested format.
func outputReport(cfg *config.Config, rep *model.SurveyReport) error {
	if rep.DatasetAbsent {
		fmt.Printf("Skipped %s: file not found\n\n", rep.DatasetPath)
		return nil
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(os.Stdout, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(os.Stdout)
	default:
		w = report.NewTextWriter(os.Stdout)
	}

	_, err := w.Write(rep)
	return err
}

// saveReport saves the analysis run to the database if enabled.
// If db is nil, this function is a no-op. Absent datasets are not saved
// because they carry no analysis results.
func saveReport(ctx context.Context, db *database.HistoryDB, rep *model.SurveyReport, logger *slog.Logger) error {
	if db == nil || rep.DatasetAbsent {
		return nil
	}

	id, err := db.SaveReport(ctx, rep)
	if err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}

	logger.Info("analysis run saved to database",
		"dataset", rep.DatasetName,
		"runID", id,
	)
	return nil
}

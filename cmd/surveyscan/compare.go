package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lowmax205/surveyscan/internal/config"
	"github.com/lowmax205/surveyscan/internal/database"
	"github.com/lowmax205/surveyscan/internal/model"
)

// Constants for preference shift direction.
const (
	shiftDirectionShifted   = "shifted"
	shiftDirectionUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares analysis runs stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [dataset-name]",
		Short: "Compare analysis runs of a survey dataset",
		Long: `Compare displays differences between two analysis runs of a dataset.

This command retrieves historical runs from the database and shows:
- Per-brand changes in preferred brand counts
- Brands that appeared or disappeared between runs
- Changes in respondent counts and the top preferred brand

The comparison requires at least two runs in the database for the
specified dataset. Use 'surveyscan analyze' to run analyses and save
results.

Examples:
  # Compare the latest two runs of a dataset
  surveyscan compare survey

  # List all run history for a dataset
  surveyscan compare --list survey

  # Compare with a specific historical run by ID
  surveyscan compare --with-run-id 5 survey

  # Output comparison in JSON format
  surveyscan compare --json survey

  # List all datasets in the database
  surveyscan compare --list-datasets`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List run history for the specified dataset")
	cmd.Flags().BoolP("list-datasets", "L", false,
		"List all datasets in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific run by ID (use --list to see available IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listDatasets, err := cmd.Flags().GetBool("list-datasets")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database. This prevents
	// database lock issues when validation fails.
	var datasetName string
	if !listDatasets {
		if len(args) == 0 {
			return errors.New("dataset name is required (use --list-datasets to see available datasets)")
		}
		datasetName = args[0]
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listDatasets {
		return listStoredDatasets(ctx, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listRunHistory(ctx, db, datasetName)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, datasetName, withRunID, jsonOutput)
}

// listStoredDatasets lists all datasets with runs in the database.
func listStoredDatasets(ctx context.Context, db *database.HistoryDB) error {
	datasets, err := db.ListDatasets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}

	if len(datasets) == 0 {
		fmt.Println("No analysis runs found in the database.")
		fmt.Println("\nUse 'surveyscan analyze <csv-file>' to analyze a survey.")
		return nil
	}

	fmt.Printf("Datasets (%d):\n\n", len(datasets))
	for _, dataset := range datasets {
		fmt.Printf("  • %s\n", dataset)
	}
	fmt.Println("\nUse 'surveyscan compare --list <dataset>' to see run history for a dataset.")

	return nil
}

// listRunHistory lists all analysis runs for a specific dataset.
func listRunHistory(ctx context.Context, db *database.HistoryDB, datasetName string) error {
	runs, err := db.ListRuns(ctx, datasetName)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No run history found for %s\n", datasetName)
		fmt.Println("\nUse 'surveyscan analyze' to analyze this dataset.")
		return nil
	}

	fmt.Printf("Run history for %s (%d runs):\n\n", datasetName, len(runs))
	fmt.Printf("  %-6s  %-20s  %-12s  %s\n", "ID", "Date", "Respondents", "Top Brand")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range runs {
		topBrand := meta.TopBrand
		if topBrand == "" {
			topBrand = "N/A"
		}
		fmt.Printf("  %-6d  %-20s  %-12d  %s\n",
			meta.ID,
			meta.AnalyzedAt.Format("2006-01-02 15:04:05"),
			meta.RowCount,
			topBrand,
		)
	}

	fmt.Println("\nUse 'surveyscan compare <dataset>' to compare the latest two runs.")
	fmt.Println("Use 'surveyscan compare --with-run-id <id> <dataset>' to compare with a specific run.")

	return nil
}

// runComparison performs the actual comparison between analysis runs.
func runComparison(ctx context.Context, db *database.HistoryDB, datasetName string, withRunID int64, jsonOutput bool) error {
	latest, err := db.LatestRuns(ctx, datasetName, 2)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(latest) == 0 {
		return fmt.Errorf("no run history found for %s", datasetName)
	}
	if len(latest) < 2 && withRunID == 0 {
		return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(latest))
	}

	// Latest run is always the current one
	currentReport := latest[0]

	var previousReport *model.SurveyReport
	if withRunID > 0 {
		// The latest run is always the comparison target, so naming it
		// with --with-run-id would compare the run against itself.
		latestID, err := db.LatestRunID(ctx, datasetName)
		if err != nil {
			return fmt.Errorf("failed to get run history: %w", err)
		}
		if withRunID == latestID {
			return fmt.Errorf("run ID %d is the latest run; pick an earlier run to compare against (use --list to see run IDs)", withRunID)
		}

		previousReport, err = db.GetRun(ctx, withRunID)
		if err != nil {
			return fmt.Errorf("failed to get run with ID %d: %w", withRunID, err)
		}
		if previousReport == nil {
			return fmt.Errorf("run with ID %d not found", withRunID)
		}
		// Validate that the run belongs to the same dataset
		if previousReport.DatasetName != datasetName {
			return fmt.Errorf("run ID %d belongs to %s, not %s", withRunID, previousReport.DatasetName, datasetName)
		}
	} else {
		previousReport = latest[1]
	}

	comparison := compareReports(previousReport, currentReport)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two analysis runs.
type ComparisonResult struct {
	// DatasetName is the compared dataset.
	DatasetName string `json:"dataset_name"`

	// PreviousRun contains metadata about the previous run.
	PreviousRun RunInfo `json:"previous_run"`

	// CurrentRun contains metadata about the current run.
	CurrentRun RunInfo `json:"current_run"`

	// BrandChanges lists per-brand preferred count changes for brands
	// present in both runs.
	BrandChanges []BrandChange `json:"brand_changes,omitempty"`

	// NewBrands lists brands preferred in the current run but not the previous.
	NewBrands []string `json:"new_brands,omitempty"`

	// DroppedBrands lists brands preferred in the previous run but not the current.
	DroppedBrands []string `json:"dropped_brands,omitempty"`

	// RowCountDelta is the change in respondent count.
	RowCountDelta int `json:"row_count_delta"`

	// PreferenceShift describes whether the preference distribution moved.
	PreferenceShift string `json:"preference_shift"`
}

// RunInfo contains metadata about a run for comparison display.
type RunInfo struct {
	// AnalyzedAt is when the run was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// RowCount is the number of respondents in the run.
	RowCount int `json:"row_count"`

	// TopBrand is the most preferred brand of the run.
	TopBrand string `json:"top_brand"`
}

// BrandChange describes the preferred-count change of one brand.
type BrandChange struct {
	// Brand is the brand label.
	Brand string `json:"brand"`

	// Previous is the count in the previous run.
	Previous int `json:"previous"`

	// Current is the count in the current run.
	Current int `json:"current"`

	// Delta is Current minus Previous.
	Delta int `json:"delta"`
}

// compareReports compares two analysis runs and generates a comparison result.
func compareReports(previous, current *model.SurveyReport) *ComparisonResult {
	result := &ComparisonResult{
		DatasetName: current.DatasetName,
		PreviousRun: runInfo(previous),
		CurrentRun:  runInfo(current),
	}
	result.RowCountDelta = current.RowCount - previous.RowCount

	previousCounts := brandCounts(previous.PreferredBrand)
	currentCounts := brandCounts(current.PreferredBrand)

	// Per-brand changes for brands in both runs, in current display order.
	if current.PreferredBrand != nil {
		for _, entry := range current.PreferredBrand.Entries {
			prev, existed := previousCounts[entry.Label]
			if !existed {
				result.NewBrands = append(result.NewBrands, entry.Label)
				continue
			}
			result.BrandChanges = append(result.BrandChanges, BrandChange{
				Brand:    entry.Label,
				Previous: prev,
				Current:  entry.Count,
				Delta:    entry.Count - prev,
			})
		}
	}

	// Brands gone from the current run, in previous display order.
	if previous.PreferredBrand != nil {
		for _, entry := range previous.PreferredBrand.Entries {
			if _, exists := currentCounts[entry.Label]; !exists {
				result.DroppedBrands = append(result.DroppedBrands, entry.Label)
			}
		}
	}

	result.PreferenceShift = shiftDirectionUnchanged
	if len(result.NewBrands) > 0 || len(result.DroppedBrands) > 0 {
		result.PreferenceShift = shiftDirectionShifted
	} else {
		for _, change := range result.BrandChanges {
			if change.Delta != 0 {
				result.PreferenceShift = shiftDirectionShifted
				break
			}
		}
	}

	return result
}

// runInfo extracts display metadata from a report.
func runInfo(rep *model.SurveyReport) RunInfo {
	info := RunInfo{
		AnalyzedAt: rep.AnalyzedAt,
		RowCount:   rep.RowCount,
	}
	info.TopBrand, _ = rep.TopPreferredBrand()
	return info
}

// brandCounts flattens a frequency table into a label-to-count map.
func brandCounts(freq *model.FrequencyTable) map[string]int {
	counts := make(map[string]int)
	if freq == nil {
		return counts
	}
	for _, entry := range freq.Entries {
		counts[entry.Label] = entry.Count
	}
	return counts
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Run Comparison: %s\n", result.DatasetName)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nPreference Status: %s\n", formatShiftDirection(result.PreferenceShift))

	fmt.Printf("\nPrevious run: %s (%d respondents, top brand: %s)\n",
		result.PreviousRun.AnalyzedAt.Format("2006-01-02 15:04:05"),
		result.PreviousRun.RowCount,
		orNA(result.PreviousRun.TopBrand))
	fmt.Printf("Current run:  %s (%d respondents, top brand: %s)\n",
		result.CurrentRun.AnalyzedAt.Format("2006-01-02 15:04:05"),
		result.CurrentRun.RowCount,
		orNA(result.CurrentRun.TopBrand))

	if result.RowCountDelta != 0 {
		fmt.Printf("\nRespondent count change: %s\n", formatDelta(result.RowCountDelta))
	}

	if len(result.BrandChanges) > 0 {
		fmt.Println("\nPreferred Brand Changes:")
		fmt.Printf("  %-16s  %-10s  %-10s  %-10s\n", "Brand", "Previous", "Current", "Change")
		fmt.Println("  " + strings.Repeat("-", 50))
		for _, change := range result.BrandChanges {
			fmt.Printf("  %-16s  %-10d  %-10d  %-10s\n",
				change.Brand, change.Previous, change.Current, formatDelta(change.Delta))
		}
	}

	if len(result.NewBrands) > 0 {
		fmt.Printf("\nNew Brands (%d):\n", len(result.NewBrands))
		for _, brand := range result.NewBrands {
			fmt.Printf("  [+] %s\n", brand)
		}
	}

	if len(result.DroppedBrands) > 0 {
		fmt.Printf("\nDropped Brands (%d):\n", len(result.DroppedBrands))
		for _, brand := range result.DroppedBrands {
			fmt.Printf("  [-] %s\n", brand)
		}
	}

	return nil
}

// formatShiftDirection formats the preference shift for display.
func formatShiftDirection(direction string) string {
	if direction == shiftDirectionShifted {
		return "SHIFTED (brand preferences changed)"
	}
	return "UNCHANGED"
}

// orNA substitutes N/A for empty values.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lowmax205/surveyscan/internal/config"
)

const analyzeTestCSV = `Name,Age,Gender,Exst_brand,Exst_model,Prefer_brand,Prefer_model
Alice,21,F,Acme,A1,Bolt,B2
Bob,23,M,Bolt,B1,Bolt,B3
Carol,22,F,Acme,A2,Acme,A3
`

func TestNewAnalyzeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAnalyzeCmd()
	if cmd.Use != "analyze [csv-file]..." {
		t.Errorf("expected use 'analyze [csv-file]...', got %q", cmd.Use)
	}

	tests := []struct {
		name      string
		flag      string
		shorthand string
		defValue  string
	}{
		{name: "output-dir flag", flag: "output-dir", shorthand: "o", defValue: ""},
		{name: "report flag", flag: "report", shorthand: "r", defValue: config.DefaultReportFile},
		{name: "chart flag", flag: "chart", shorthand: "p", defValue: config.DefaultChartFile},
		{name: "batch flag", flag: "batch", shorthand: "b", defValue: "4"},
		{name: "config flag", flag: "config", shorthand: "c", defValue: ""},
		{name: "json flag", flag: "json", shorthand: "j", defValue: "false"},
		{name: "markdown flag", flag: "markdown", shorthand: "m", defValue: "false"},
		{name: "no-save flag", flag: "no-save", shorthand: "n", defValue: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			flag := cmd.Flags().Lookup(tt.flag)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.flag)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("expected default %q, got %q", tt.defValue, flag.DefValue)
			}
		})
	}
}

func TestBuildConfig(t *testing.T) {
	t.Run("uses flag values", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cmd := NewAnalyzeCmd()
		if err := cmd.Flags().Set("output-dir", "results"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("report", "out.txt"); err != nil {
			t.Fatal(err)
		}
		if err := cmd.Flags().Set("no-save", "true"); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"survey.csv"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.OutputDir != "results" {
			t.Errorf("expected output dir 'results', got %q", cfg.OutputDir)
		}
		if cfg.ReportFile != "out.txt" {
			t.Errorf("expected report file 'out.txt', got %q", cfg.ReportFile)
		}
		if !cfg.NoSave {
			t.Error("expected NoSave to be true")
		}
		if len(cfg.CSVFiles) != 1 || cfg.CSVFiles[0] != "survey.csv" {
			t.Errorf("expected csv files [survey.csv], got %v", cfg.CSVFiles)
		}
	})

	t.Run("errors when explicit config file is missing", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cmd := NewAnalyzeCmd()
		if err := cmd.Flags().Set("config", "does-not-exist.yaml"); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd, []string{"survey.csv"}); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("loads config file from current directory", func(t *testing.T) {
		dir := t.TempDir()
		configContent := `datasets:
  campus:
    existingColumn: Current_brand
`
		if err := os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte(configContent), 0600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		cmd := NewAnalyzeCmd()
		cfg, err := buildConfig(cmd, []string{"campus.csv"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		existing, _ := cfg.ColumnsFor("campus")
		if existing != "Current_brand" {
			t.Errorf("expected existing column 'Current_brand', got %q", existing)
		}
	})
}

func TestArtifactPaths(t *testing.T) {
	t.Parallel()

	baseConfig := func() *config.Config {
		cfg := config.NewConfig()
		cfg.Datasets = &config.File{Datasets: make(map[string]config.DatasetConfig)}
		return cfg
	}

	t.Run("uses defaults for a single dataset", func(t *testing.T) {
		t.Parallel()

		cfg := baseConfig()
		reportPath, chartPath := artifactPaths(cfg, "survey", false)
		if reportPath != config.DefaultReportFile {
			t.Errorf("expected %q, got %q", config.DefaultReportFile, reportPath)
		}
		if chartPath != config.DefaultChartFile {
			t.Errorf("expected %q, got %q", config.DefaultChartFile, chartPath)
		}
	})

	t.Run("prefixes filenames with the dataset name for multiple files", func(t *testing.T) {
		t.Parallel()

		cfg := baseConfig()
		reportPath, chartPath := artifactPaths(cfg, "west", true)
		if reportPath != "west_"+config.DefaultReportFile {
			t.Errorf("unexpected report path %q", reportPath)
		}
		if chartPath != "west_"+config.DefaultChartFile {
			t.Errorf("unexpected chart path %q", chartPath)
		}
	})

	t.Run("joins the output directory", func(t *testing.T) {
		t.Parallel()

		cfg := baseConfig()
		cfg.OutputDir = "results"
		reportPath, _ := artifactPaths(cfg, "survey", false)
		if reportPath != filepath.Join("results", config.DefaultReportFile) {
			t.Errorf("unexpected report path %q", reportPath)
		}
	})

	t.Run("applies dataset config overrides", func(t *testing.T) {
		t.Parallel()

		cfg := baseConfig()
		cfg.Datasets.Datasets["campus"] = config.DatasetConfig{
			ReportFile: "campus_report.txt",
			ChartFile:  "campus_chart.png",
		}
		reportPath, chartPath := artifactPaths(cfg, "campus", false)
		if reportPath != "campus_report.txt" {
			t.Errorf("unexpected report path %q", reportPath)
		}
		if chartPath != "campus_chart.png" {
			t.Errorf("unexpected chart path %q", chartPath)
		}
	})
}

func TestDatasetNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "plain filename", path: "survey.csv", want: "survey"},
		{name: "nested path", path: "data/west.csv", want: "west"},
		{name: "no extension", path: "survey", want: "survey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := datasetNameFromPath(tt.path); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRunAnalyzeCmd(t *testing.T) {
	t.Run("writes report and chart artifacts", func(t *testing.T) {
		dir := t.TempDir()
		csvPath := filepath.Join(dir, "survey.csv")
		if err := os.WriteFile(csvPath, []byte(analyzeTestCSV), 0600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"analyze", "--no-save", "-o", dir, csvPath})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		reportData, err := os.ReadFile(filepath.Join(dir, config.DefaultReportFile))
		if err != nil {
			t.Fatalf("expected report artifact: %v", err)
		}
		if !strings.Contains(string(reportData), "Survey Report") {
			t.Error("expected report to contain 'Survey Report'")
		}

		chartInfo, err := os.Stat(filepath.Join(dir, config.DefaultChartFile))
		if err != nil {
			t.Fatalf("expected chart artifact: %v", err)
		}
		if chartInfo.Size() == 0 {
			t.Error("expected non-empty chart artifact")
		}
	})

	t.Run("missing input file is skipped without error", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"analyze", "--no-save", "-o", dir, filepath.Join(dir, "absent.csv")})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, config.DefaultReportFile)); !os.IsNotExist(err) {
			t.Error("expected no report artifact for a missing input file")
		}
	})

	t.Run("fails without input files", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"analyze", "--no-save"})
		if err := cmd.Execute(); err == nil {
			t.Error("expected error when no csv files are given")
		}
	})
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lowmax205/surveyscan/internal/analysis"
	"github.com/lowmax205/surveyscan/internal/chart"
	"github.com/lowmax205/surveyscan/internal/loader"
	"github.com/lowmax205/surveyscan/internal/model"
	"github.com/lowmax205/surveyscan/internal/report"
)

// LoadStep reads the CSV file into the run state.
//
// A missing file is not a failure. The loader reports it as a diagnostic
// and the step marks the dataset absent, which turns every later step
// into a no-op. The run still ends successfully so a batch over several
// files is not stopped by one bad path.
type LoadStep struct {
	loader *loader.Loader
}

// NewLoadStep creates a load step using the given loader.
func NewLoadStep(l *loader.Loader) *LoadStep {
	return &LoadStep{loader: l}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load_csv"
}

// Do executes the load step.
func (s *LoadStep) Do(_ context.Context, a *Analysis) error {
	rep := a.Report
	rep.DatasetName = datasetName(rep.DatasetPath)

	dataset, err := s.loader.Load(rep.DatasetPath)
	if err != nil {
		return err
	}
	if dataset == nil {
		rep.DatasetAbsent = true
		return nil
	}

	a.Dataset = dataset
	rep.RowCount = dataset.RowCount()
	rep.Columns = dataset.Header
	return nil
}

// datasetName derives the dataset name from a CSV path.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FrequencyStep counts the existing and preferred brand columns.
type FrequencyStep struct {
	existingColumn  string
	preferredColumn string
}

// NewFrequencyStep creates a frequency step counting the two brand columns.
func NewFrequencyStep(existingColumn, preferredColumn string) *FrequencyStep {
	return &FrequencyStep{
		existingColumn:  existingColumn,
		preferredColumn: preferredColumn,
	}
}

// Name returns the step name.
func (s *FrequencyStep) Name() string {
	return "frequency_count"
}

// Do executes the frequency step. A dataset that lacks either brand
// column fails the step, since the counts are the core of the report.
func (s *FrequencyStep) Do(_ context.Context, a *Analysis) error {
	if a.Report.DatasetAbsent {
		return nil
	}

	existing, err := analysis.Frequencies(a.Dataset, s.existingColumn)
	if err != nil {
		return err
	}
	preferred, err := analysis.Frequencies(a.Dataset, s.preferredColumn)
	if err != nil {
		return err
	}

	a.Report.ExistingBrand = existing
	a.Report.PreferredBrand = preferred
	return nil
}

// DescribeStep summarizes every numeric column of the dataset.
type DescribeStep struct{}

// NewDescribeStep creates a describe step.
func NewDescribeStep() *DescribeStep {
	return &DescribeStep{}
}

// Name returns the step name.
func (s *DescribeStep) Name() string {
	return "describe_numeric"
}

// Do executes the describe step.
func (s *DescribeStep) Do(_ context.Context, a *Analysis) error {
	if a.Report.DatasetAbsent {
		return nil
	}

	summaries, err := analysis.Describe(a.Dataset)
	if err != nil {
		return err
	}
	a.Report.NumericSummaries = summaries
	return nil
}

// ChartStep renders the brand bar charts. Both the existing and
// preferred charts are drawn; by default only the preferred one is
// persisted, to the configured path.
type ChartStep struct {
	chartPath         string
	existingChartPath string
	logger            *slog.Logger
}

// ChartStepOption configures a ChartStep.
type ChartStepOption func(*ChartStep)

// WithChartLogger sets a custom logger for the chart step.
func WithChartLogger(logger *slog.Logger) ChartStepOption {
	return func(s *ChartStep) {
		s.logger = logger
	}
}

// WithExistingChartFile also writes the existing-brand chart to the
// given path.
func WithExistingChartFile(path string) ChartStepOption {
	return func(s *ChartStep) {
		s.existingChartPath = path
	}
}

// NewChartStep creates a chart step that writes the preferred-brand
// chart to chartPath. An empty path renders the charts without
// persisting them.
func NewChartStep(chartPath string, opts ...ChartStepOption) *ChartStep {
	s := &ChartStep{
		chartPath: chartPath,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ChartStep) Name() string {
	return "render_charts"
}

// Do executes the chart step.
func (s *ChartStep) Do(_ context.Context, a *Analysis) error {
	rep := a.Report
	if rep.DatasetAbsent {
		return nil
	}
	if rep.ExistingBrand == nil || rep.PreferredBrand == nil {
		return fmt.Errorf("chart step requires frequency counts to run first")
	}

	if err := s.renderChart(rep.ExistingBrand, "Existing Brand", s.existingChartPath); err != nil {
		return err
	}
	if err := s.renderChart(rep.PreferredBrand, "Preferred Brand", s.chartPath); err != nil {
		return err
	}

	if s.chartPath != "" {
		rep.ChartFile = s.chartPath
	}
	return nil
}

// renderChart builds a bar chart and saves it when a destination path
// is given. Rendering happens even without a destination so malformed
// frequency data fails the step for either brand column.
func (s *ChartStep) renderChart(freq *model.FrequencyTable, title, path string) error {
	p, err := chart.BarChart(freq, title)
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	if err := chart.SavePNG(p, path); err != nil {
		return err
	}
	s.logger.Debug("chart saved", "path", path, "title", title)
	return nil
}

// ReportStep writes the text report to disk, overwriting any previous
// run's file. Additional formats can be written beside it.
type ReportStep struct {
	reportPath   string
	jsonPath     string
	markdownPath string
	logger       *slog.Logger
}

// ReportStepOption configures a ReportStep.
type ReportStepOption func(*ReportStep)

// WithJSONFile also writes the report as JSON to the given path.
func WithJSONFile(path string) ReportStepOption {
	return func(s *ReportStep) {
		s.jsonPath = path
	}
}

// WithMarkdownFile also writes the report as Markdown to the given path.
func WithMarkdownFile(path string) ReportStepOption {
	return func(s *ReportStep) {
		s.markdownPath = path
	}
}

// WithReportLogger sets a custom logger for the report step.
func WithReportLogger(logger *slog.Logger) ReportStepOption {
	return func(s *ReportStep) {
		s.logger = logger
	}
}

// NewReportStep creates a report step that writes the text report to
// reportPath.
func NewReportStep(reportPath string, opts ...ReportStepOption) *ReportStep {
	s := &ReportStep{
		reportPath: reportPath,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return "write_report"
}

// Do executes the report step.
func (s *ReportStep) Do(_ context.Context, a *Analysis) error {
	rep := a.Report
	if rep.DatasetAbsent {
		return nil
	}

	if err := s.writeFile(s.reportPath, func(f *os.File) error {
		_, err := report.NewTextWriter(f).Write(rep)
		return err
	}); err != nil {
		return err
	}
	rep.ReportFile = s.reportPath
	s.logger.Debug("report saved", "path", s.reportPath)

	if s.jsonPath != "" {
		if err := s.writeFile(s.jsonPath, func(f *os.File) error {
			_, err := report.NewJSONWriter(f, report.WithPrettyPrint()).Write(rep)
			return err
		}); err != nil {
			return err
		}
	}
	if s.markdownPath != "" {
		if err := s.writeFile(s.markdownPath, func(f *os.File) error {
			_, err := report.NewMarkdownWriter(f).Write(rep)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeFile creates or truncates path and hands the file to write.
func (s *ReportStep) writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report file %s: %w", path, err)
	}
	return f.Close()
}

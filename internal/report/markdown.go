package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/lowmax205/surveyscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. Mermaid charts for brand distribution
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.SurveyReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeStatistics(md, report)
	w.writeBrandCounts(md, "Existing Brand Counts", report.ExistingBrand)
	w.writeBrandCounts(md, "Preferred Brand Counts", report.PreferredBrand)
	w.writeDistribution(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with dataset information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.SurveyReport) {
	md.H1("Survey Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Dataset", "`" + report.DatasetPath + "`"},
			{"Analyzed", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
			{"Respondents", strconv.Itoa(report.RowCount)},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.SurveyReport) string {
	if report.DatasetAbsent {
		return "File not found (nothing analyzed)"
	}
	if report.ErrorMessage != "" {
		return "Error - " + report.ErrorMessage
	}
	return "Complete"
}

// writeStatistics writes the numeric summary section.
func (w *MarkdownWriter) writeStatistics(md *markdown.Markdown, report *model.SurveyReport) {
	md.H2("Basic Statistics")
	md.PlainText("")

	if len(report.NumericSummaries) == 0 {
		md.PlainText("No numeric columns were found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.NumericSummaries))
	for _, s := range report.NumericSummaries {
		rows = append(rows, []string{
			s.Column,
			strconv.Itoa(s.Count),
			formatStat(s.Mean),
			formatStat(s.StdDev),
			formatStat(s.Min),
			formatStat(s.Q1),
			formatStat(s.Median),
			formatStat(s.Q3),
			formatStat(s.Max),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeBrandCounts writes one brand frequency section.
func (w *MarkdownWriter) writeBrandCounts(md *markdown.Markdown, title string, freq *model.FrequencyTable) {
	md.H2(title)
	md.PlainText("")

	if freq == nil || freq.Len() == 0 {
		md.PlainText("No responses.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, freq.Len())
	for _, entry := range freq.Entries {
		rows = append(rows, []string{entry.Label, strconv.Itoa(entry.Count)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Brand", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDistribution writes a mermaid pie chart of the preferred brand
// distribution.
func (w *MarkdownWriter) writeDistribution(md *markdown.Markdown, report *model.SurveyReport) {
	freq := report.PreferredBrand
	if freq == nil || freq.Len() == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Preferred Brand Distribution"),
		piechart.WithShowData(true),
	)
	for _, entry := range freq.Entries {
		chart.LabelAndIntValue(entry.Label, uint64(entry.Count))
	}

	md.H2("Distribution")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

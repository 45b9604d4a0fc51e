package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lowmax205/surveyscan/internal/model"
)

// statRows are the summary rows of the basic statistics table, in the
// order they are printed.
var statRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// TextWriter outputs the canonical plain-text survey report. This is the
// format written to survey_report.txt and shown in terminals.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in plain text.
func (w *TextWriter) Write(report *model.SurveyReport) (int, error) {
	var b strings.Builder

	b.WriteString("Survey Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("Basic Statistics:\n")
	writeStatistics(&b, report.NumericSummaries)
	b.WriteString("\n")

	b.WriteString("Count of Students for Each Existing Brand:\n")
	writeCounts(&b, report.ExistingBrand)
	b.WriteString("\n")

	b.WriteString("Count of Students for Each Preferred Brand:\n")
	writeCounts(&b, report.PreferredBrand)
	b.WriteString("\n")

	if report.ChartFile != "" {
		fmt.Fprintf(&b, "Plot of Preferred Brand Count saved as '%s'\n", report.ChartFile)
	}

	return io.WriteString(w.output, b.String())
}

// writeStatistics prints one right-aligned column per numeric summary
// with the stat labels down the left side, all values rounded to three
// decimal places.
func writeStatistics(b *strings.Builder, summaries []model.ColumnSummary) {
	if len(summaries) == 0 {
		b.WriteString("(no numeric columns)\n")
		return
	}

	labelWidth := 0
	for _, row := range statRows {
		if len(row) > labelWidth {
			labelWidth = len(row)
		}
	}

	cells := make([][]string, len(summaries))
	widths := make([]int, len(summaries))
	for i, s := range summaries {
		cells[i] = []string{
			formatStat(float64(s.Count)),
			formatStat(s.Mean),
			formatStat(s.StdDev),
			formatStat(s.Min),
			formatStat(s.Q1),
			formatStat(s.Median),
			formatStat(s.Q3),
			formatStat(s.Max),
		}
		widths[i] = len(s.Column)
		for _, cell := range cells[i] {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	b.WriteString(strings.Repeat(" ", labelWidth))
	for i, s := range summaries {
		fmt.Fprintf(b, "  %*s", widths[i], s.Column)
	}
	b.WriteString("\n")

	for row, label := range statRows {
		fmt.Fprintf(b, "%-*s", labelWidth, label)
		for col := range summaries {
			fmt.Fprintf(b, "  %*s", widths[col], cells[col][row])
		}
		b.WriteString("\n")
	}
}

// writeCounts prints the frequency counts with a positional index, one
// entry per line, values right-aligned.
func writeCounts(b *strings.Builder, freq *model.FrequencyTable) {
	if freq == nil || freq.Len() == 0 {
		b.WriteString("(no data)\n")
		return
	}

	indexWidth := len(strconv.Itoa(freq.Len() - 1))
	countWidth := 0
	for _, entry := range freq.Entries {
		if w := len(strconv.Itoa(entry.Count)); w > countWidth {
			countWidth = w
		}
	}

	for i, entry := range freq.Entries {
		fmt.Fprintf(b, "%-*d    %*d\n", indexWidth, i, countWidth, entry.Count)
	}
}

// formatStat renders a statistic rounded to three decimal places.
func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

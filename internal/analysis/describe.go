package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/lowmax205/surveyscan/internal/model"
)

// Describe summarizes every numeric column of the dataset with count,
// mean, sample standard deviation, quartiles, and skewness. Columns are
// summarized in header order. An absent dataset yields no summaries.
func Describe(dataset *model.SurveyDataset) ([]model.ColumnSummary, error) {
	if dataset == nil {
		return nil, nil
	}

	var summaries []model.ColumnSummary
	for _, column := range dataset.NumericColumnNames() {
		values, ok := dataset.NumericColumn(column)
		if !ok {
			continue
		}
		summary, err := describeColumn(column, values)
		if err != nil {
			return nil, fmt.Errorf("failed to describe column %q: %w", column, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// describeColumn computes the summary statistics for one column.
func describeColumn(column string, values []float64) (model.ColumnSummary, error) {
	summary := model.ColumnSummary{
		Column: column,
		Count:  len(values),
	}
	if len(values) == 0 {
		return summary, nil
	}

	var err error
	if summary.Mean, err = stats.Mean(values); err != nil {
		return model.ColumnSummary{}, err
	}
	if summary.Min, err = stats.Min(values); err != nil {
		return model.ColumnSummary{}, err
	}
	if summary.Max, err = stats.Max(values); err != nil {
		return model.ColumnSummary{}, err
	}
	if summary.Median, err = stats.Median(values); err != nil {
		return model.ColumnSummary{}, err
	}

	// Quartiles are undefined for a single observation, so they
	// collapse to that value.
	if len(values) > 1 {
		if summary.Q1, err = stats.Percentile(values, 25); err != nil {
			return model.ColumnSummary{}, err
		}
		if summary.Q3, err = stats.Percentile(values, 75); err != nil {
			return model.ColumnSummary{}, err
		}
	} else {
		summary.Q1 = values[0]
		summary.Q3 = values[0]
	}

	// Sample standard deviation needs at least two observations.
	if len(values) > 1 {
		if summary.StdDev, err = stats.StandardDeviationSample(values); err != nil {
			return model.ColumnSummary{}, err
		}
	}

	// Skewness needs spread and at least three observations to mean
	// anything.
	if len(values) >= 3 && summary.StdDev > 0 {
		summary.Skewness = stat.Skew(values, nil)
	}

	return summary, nil
}

package analysis

import (
	"fmt"

	"github.com/lowmax205/surveyscan/internal/model"
)

// Frequencies counts the occurrences of each label in the named column.
// Entries are ordered by descending count, ties by first occurrence in
// the data.
//
// An absent dataset yields an empty table. A dataset that lacks the
// column is an error, since it usually means the wrong file was loaded.
func Frequencies(dataset *model.SurveyDataset, column string) (*model.FrequencyTable, error) {
	if dataset == nil {
		return &model.FrequencyTable{Column: column}, nil
	}

	values, err := dataset.Column(column)
	if err != nil {
		return nil, fmt.Errorf("failed to count frequencies: %w", err)
	}
	return model.NewFrequencyTable(column, values), nil
}

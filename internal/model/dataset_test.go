package model

import (
	"errors"
	"reflect"
	"testing"
)

func testDataset() *SurveyDataset {
	return NewSurveyDataset(
		"testdata/marketing.csv",
		[]string{"Name", "Age", "Gender", "Exst_brand", "Prefer_brand"},
		[][]string{
			{"Alice", "21", "F", "Samsung", "Apple"},
			{"Bob", "22", "M", "Apple", "Apple"},
			{"Cara", "20", "F", "Xiaomi", "Samsung"},
		},
	)
}

// TestNewSurveyDataset tests dataset construction.
func TestNewSurveyDataset(t *testing.T) {
	t.Parallel()

	t.Run("derives name from file path", func(t *testing.T) {
		t.Parallel()

		dataset := testDataset()
		if dataset.Name != "marketing" {
			t.Errorf("name = %q, want %q", dataset.Name, "marketing")
		}
	})

	t.Run("reports row count", func(t *testing.T) {
		t.Parallel()

		dataset := testDataset()
		if dataset.RowCount() != 3 {
			t.Errorf("row count = %d, want 3", dataset.RowCount())
		}
	})
}

// TestSurveyDatasetColumn tests column extraction.
func TestSurveyDatasetColumn(t *testing.T) {
	t.Parallel()

	t.Run("returns values in row order", func(t *testing.T) {
		t.Parallel()

		values, err := testDataset().Column("Exst_brand")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"Samsung", "Apple", "Xiaomi"}
		if !reflect.DeepEqual(values, want) {
			t.Errorf("values = %v, want %v", values, want)
		}
	})

	t.Run("unknown column returns ErrColumnNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := testDataset().Column("Favorite_color")
		if !errors.Is(err, ErrColumnNotFound) {
			t.Errorf("expected ErrColumnNotFound, got %v", err)
		}
	})

	t.Run("short rows yield empty cells", func(t *testing.T) {
		t.Parallel()

		dataset := NewSurveyDataset("short.csv",
			[]string{"Name", "Age"},
			[][]string{{"Alice", "21"}, {"Bob"}},
		)
		values, err := dataset.Column("Age")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"21", ""}
		if !reflect.DeepEqual(values, want) {
			t.Errorf("values = %v, want %v", values, want)
		}
	})
}

// TestSurveyDatasetNumericColumn tests numeric parsing of columns.
func TestSurveyDatasetNumericColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		column string
		want   []float64
		wantOK bool
	}{
		{
			name:   "integer column parses",
			column: "Age",
			want:   []float64{21, 22, 20},
			wantOK: true,
		},
		{
			name:   "text column does not parse",
			column: "Gender",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := testDataset().NumericColumn(tt.column)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("skips empty cells", func(t *testing.T) {
		t.Parallel()

		dataset := NewSurveyDataset("gaps.csv",
			[]string{"Age"},
			[][]string{{"21"}, {""}, {"23"}},
		)
		got, ok := dataset.NumericColumn("Age")
		if !ok {
			t.Fatal("expected column to parse")
		}
		want := []float64{21, 23}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("values = %v, want %v", got, want)
		}
	})

	t.Run("treats short rows as blanks", func(t *testing.T) {
		t.Parallel()

		dataset := NewSurveyDataset("ragged.csv",
			[]string{"Name", "Age"},
			[][]string{{"Alice", "21"}, {"Bob"}, {"Carol", "23"}},
		)
		got, ok := dataset.NumericColumn("Age")
		if !ok {
			t.Fatal("expected column to parse")
		}
		want := []float64{21, 23}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("values = %v, want %v", got, want)
		}
	})
}

// TestSurveyDatasetNumericColumnNames tests numeric column discovery.
func TestSurveyDatasetNumericColumnNames(t *testing.T) {
	t.Parallel()

	names := testDataset().NumericColumnNames()
	want := []string{"Age"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("numeric columns = %v, want %v", names, want)
	}
}

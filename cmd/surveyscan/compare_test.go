package main

import (
	"context"
	"testing"
	"time"

	"github.com/lowmax205/surveyscan/internal/database"
	"github.com/lowmax205/surveyscan/internal/model"
)

func comparisonReport(t *testing.T, rows int, preferred []string) *model.SurveyReport {
	t.Helper()

	rep := model.NewSurveyReport("survey.csv")
	rep.DatasetName = "survey"
	rep.RowCount = rows
	rep.AnalyzedAt = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	rep.PreferredBrand = model.NewFrequencyTable("Prefer_brand", preferred)
	return rep
}

func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()
	if cmd.Use != "compare [dataset-name]" {
		t.Errorf("expected use 'compare [dataset-name]', got %q", cmd.Use)
	}

	tests := []struct {
		name      string
		flag      string
		shorthand string
	}{
		{name: "list flag", flag: "list", shorthand: "l"},
		{name: "list-datasets flag", flag: "list-datasets", shorthand: "L"},
		{name: "with-run-id flag", flag: "with-run-id", shorthand: "i"},
		{name: "json flag", flag: "json", shorthand: "j"},
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
		})
	}
}

func TestCompareReports(t *testing.T) {
	t.Parallel()

	t.Run("detects per-brand count changes", func(t *testing.T) {
		t.Parallel()

		previous := comparisonReport(t, 3, []string{"Acme", "Acme", "Bolt"})
		current := comparisonReport(t, 4, []string{"Bolt", "Bolt", "Bolt", "Acme"})

		result := compareReports(previous, current)

		if result.DatasetName != "survey" {
			t.Errorf("expected dataset 'survey', got %q", result.DatasetName)
		}
		if result.RowCountDelta != 1 {
			t.Errorf("expected row count delta 1, got %d", result.RowCountDelta)
		}
		if result.PreferenceShift != shiftDirectionShifted {
			t.Errorf("expected shifted preference, got %q", result.PreferenceShift)
		}

		if len(result.BrandChanges) != 2 {
			t.Fatalf("expected 2 brand changes, got %d", len(result.BrandChanges))
		}
		// Current display order puts Bolt first at count 3.
		if result.BrandChanges[0].Brand != "Bolt" || result.BrandChanges[0].Delta != 2 {
			t.Errorf("unexpected first change: %+v", result.BrandChanges[0])
		}
		if result.BrandChanges[1].Brand != "Acme" || result.BrandChanges[1].Delta != -1 {
			t.Errorf("unexpected second change: %+v", result.BrandChanges[1])
		}
	})

	t.Run("detects new and dropped brands", func(t *testing.T) {
		t.Parallel()

		previous := comparisonReport(t, 2, []string{"Acme", "Retro"})
		current := comparisonReport(t, 2, []string{"Acme", "Nova"})

		result := compareReports(previous, current)

		if len(result.NewBrands) != 1 || result.NewBrands[0] != "Nova" {
			t.Errorf("expected new brand [Nova], got %v", result.NewBrands)
		}
		if len(result.DroppedBrands) != 1 || result.DroppedBrands[0] != "Retro" {
			t.Errorf("expected dropped brand [Retro], got %v", result.DroppedBrands)
		}
		if result.PreferenceShift != shiftDirectionShifted {
			t.Errorf("expected shifted preference, got %q", result.PreferenceShift)
		}
	})

	t.Run("reports unchanged preferences for identical counts", func(t *testing.T) {
		t.Parallel()

		previous := comparisonReport(t, 2, []string{"Acme", "Bolt"})
		current := comparisonReport(t, 2, []string{"Acme", "Bolt"})

		result := compareReports(previous, current)

		if result.PreferenceShift != shiftDirectionUnchanged {
			t.Errorf("expected unchanged preference, got %q", result.PreferenceShift)
		}
		if len(result.NewBrands) != 0 || len(result.DroppedBrands) != 0 {
			t.Errorf("expected no brand set changes, got new=%v dropped=%v",
				result.NewBrands, result.DroppedBrands)
		}
	})

	t.Run("handles runs without preferred brand data", func(t *testing.T) {
		t.Parallel()

		previous := comparisonReport(t, 0, nil)
		previous.PreferredBrand = nil
		current := comparisonReport(t, 2, []string{"Acme", "Acme"})

		result := compareReports(previous, current)

		if len(result.NewBrands) != 1 || result.NewBrands[0] != "Acme" {
			t.Errorf("expected new brand [Acme], got %v", result.NewBrands)
		}
		if result.CurrentRun.TopBrand != "Acme" {
			t.Errorf("expected current top brand 'Acme', got %q", result.CurrentRun.TopBrand)
		}
		if result.PreviousRun.TopBrand != "" {
			t.Errorf("expected empty previous top brand, got %q", result.PreviousRun.TopBrand)
		}
	})
}

func TestRunComparison(t *testing.T) {
	t.Parallel()

	openComparisonDB := func(t *testing.T) (*database.HistoryDB, []int64) {
		t.Helper()

		db, err := database.Open(t.TempDir(), database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() {
			if err := db.Close(); err != nil {
				t.Errorf("failed to close database: %v", err)
			}
		})

		ctx := context.Background()
		var ids []int64
		for i, preferred := range [][]string{
			{"Acme", "Bolt"},
			{"Bolt", "Bolt", "Acme"},
		} {
			rep := comparisonReport(t, len(preferred), preferred)
			rep.AnalyzedAt = rep.AnalyzedAt.Add(time.Duration(i) * time.Hour)
			id, err := db.SaveReport(ctx, rep)
			if err != nil {
				t.Fatalf("failed to save report: %v", err)
			}
			ids = append(ids, id)
		}
		return db, ids
	}

	t.Run("compares the latest two runs", func(t *testing.T) {
		t.Parallel()

		db, _ := openComparisonDB(t)
		if err := runComparison(context.Background(), db, "survey", 0, false); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("compares against an earlier run by id", func(t *testing.T) {
		t.Parallel()

		db, ids := openComparisonDB(t)
		if err := runComparison(context.Background(), db, "survey", ids[0], false); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects the id of the latest run", func(t *testing.T) {
		t.Parallel()

		db, ids := openComparisonDB(t)
		err := runComparison(context.Background(), db, "survey", ids[1], false)
		if err == nil {
			t.Error("expected error when the id names the latest run")
		}
	})

	t.Run("fails for an unknown dataset", func(t *testing.T) {
		t.Parallel()

		db, _ := openComparisonDB(t)
		if err := runComparison(context.Background(), db, "unknown", 0, false); err == nil {
			t.Error("expected error for an unknown dataset")
		}
	})
}

func TestFormatShiftDirection(t *testing.T) {
	t.Parallel()

	if got := formatShiftDirection(shiftDirectionShifted); got != "SHIFTED (brand preferences changed)" {
		t.Errorf("unexpected shifted format: %q", got)
	}
	if got := formatShiftDirection(shiftDirectionUnchanged); got != "UNCHANGED" {
		t.Errorf("unexpected unchanged format: %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		delta int
		want  string
	}{
		{name: "positive delta gets a plus sign", delta: 3, want: "+3"},
		{name: "negative delta keeps its sign", delta: -2, want: "-2"},
		{name: "zero delta", delta: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatDelta(tt.delta); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOrNA(t *testing.T) {
	t.Parallel()

	if got := orNA(""); got != "N/A" {
		t.Errorf("expected 'N/A', got %q", got)
	}
	if got := orNA("Acme"); got != "Acme" {
		t.Errorf("expected 'Acme', got %q", got)
	}
}

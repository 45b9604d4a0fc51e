package loader

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func quietLoader() *Loader {
	return NewLoader(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

// TestLoaderLoad tests reading survey CSV files.
func TestLoaderLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads header and rows", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "survey.csv", []byte(
			"Name,Age,Exst_brand,Prefer_brand\n"+
				"Alice,21,Samsung,Apple\n"+
				"Bob,22,Apple,Apple\n"))

		dataset, err := quietLoader().Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dataset == nil {
			t.Fatal("expected a dataset")
		}
		if dataset.Name != "survey" {
			t.Errorf("name = %q, want %q", dataset.Name, "survey")
		}
		if dataset.RowCount() != 2 {
			t.Errorf("row count = %d, want 2", dataset.RowCount())
		}
		if got := len(dataset.Header); got != 4 {
			t.Errorf("header length = %d, want 4", got)
		}
	})

	t.Run("missing file yields absent dataset without error", func(t *testing.T) {
		t.Parallel()

		dataset, err := quietLoader().Load(filepath.Join(t.TempDir(), "nope.csv"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dataset != nil {
			t.Error("expected absent dataset for missing file")
		}
	})

	t.Run("header-only file yields zero-row dataset", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "empty.csv", []byte("Name,Age,Exst_brand,Prefer_brand\n"))

		dataset, err := quietLoader().Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dataset == nil {
			t.Fatal("expected a dataset")
		}
		if dataset.RowCount() != 0 {
			t.Errorf("row count = %d, want 0", dataset.RowCount())
		}
	})

	t.Run("completely empty file returns ErrEmptyCSV", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "blank.csv", nil)

		_, err := quietLoader().Load(path)
		if !errors.Is(err, ErrEmptyCSV) {
			t.Errorf("expected ErrEmptyCSV, got %v", err)
		}
	})

	t.Run("malformed quoting returns ErrMalformedCSV", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "broken.csv", []byte("Name,Age\n\"Alice,21\n"))

		_, err := quietLoader().Load(path)
		if !errors.Is(err, ErrMalformedCSV) {
			t.Errorf("expected ErrMalformedCSV, got %v", err)
		}
	})

	t.Run("latin-1 encoded file is re-decoded", func(t *testing.T) {
		t.Parallel()

		// "José" with 0xE9 for é, invalid as UTF-8.
		path := writeFile(t, "latin1.csv", []byte{
			'N', 'a', 'm', 'e', '\n',
			'J', 'o', 's', 0xE9, '\n',
		})

		dataset, err := quietLoader().Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		values, err := dataset.Column("Name")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if values[0] != "José" {
			t.Errorf("value = %q, want %q", values[0], "José")
		}
	})

	t.Run("rows shorter than the header are kept", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "ragged.csv", []byte(
			"Name,Age,Exst_brand\nAlice,21\n"))

		dataset, err := quietLoader().Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dataset.RowCount() != 1 {
			t.Errorf("row count = %d, want 1", dataset.RowCount())
		}
		values, err := dataset.Column("Exst_brand")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if values[0] != "" {
			t.Errorf("value = %q, want empty", values[0])
		}
	})
}

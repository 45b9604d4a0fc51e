package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/lowmax205/surveyscan/internal/model"
)

// Loader reads survey CSV files into datasets.
type Loader struct {
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for diagnostics about missing files.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the CSV file at path into a dataset.
//
// A missing or unreadable file is not an error. It is logged as a
// diagnostic and Load returns a nil dataset, so callers can treat the
// dataset as absent and skip downstream analysis. A file that exists but
// is empty or cannot be parsed as CSV returns an error.
func (l *Loader) Load(path string) (*model.SurveyDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("survey file could not be read, skipping analysis",
			slog.String("path", path),
			slog.String("reason", err.Error()))
		return nil, nil
	}

	if !utf8.Valid(data) {
		data, err = decodeLatin1(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedCSV, path, err)
		}
	}

	records, err := parseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedCSV, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCSV, path)
	}

	return model.NewSurveyDataset(path, records[0], records[1:]), nil
}

// parseCSV parses raw bytes as CSV records. Rows may have fewer fields
// than the header when trailing cells are blank.
func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// decodeLatin1 re-decodes bytes that are not valid UTF-8 as Latin-1.
func decodeLatin1(data []byte) ([]byte, error) {
	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

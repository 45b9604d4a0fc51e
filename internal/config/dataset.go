package config

// DatasetConfig holds dataset-specific configuration for a single survey
// file. This allows analyzing CSVs whose column names differ from the
// standard questionnaire export without renaming columns by hand.
type DatasetConfig struct {
	// ExistingColumn overrides the column counted as the existing brand.
	ExistingColumn string `yaml:"existingColumn,omitempty"`

	// PreferredColumn overrides the column counted as the preferred brand.
	PreferredColumn string `yaml:"preferredColumn,omitempty"`

	// ReportFile overrides the text report filename for this dataset.
	ReportFile string `yaml:"reportFile,omitempty"`

	// ChartFile overrides the chart filename for this dataset.
	ChartFile string `yaml:"chartFile,omitempty"`
}

// File represents the structure of the .surveyscan configuration file.
type File struct {
	// Datasets maps dataset names (CSV base filename without extension)
	// to their dataset-specific configurations.
	Datasets map[string]DatasetConfig `yaml:"datasets,omitempty"`

	// Defaults contains default dataset configuration applied to all
	// datasets unless overridden in the dataset-specific configuration.
	Defaults DatasetConfig `yaml:"defaults,omitempty"`
}

// GetDatasetConfig returns the configuration for a specific dataset.
// It merges the dataset-specific configuration with defaults.
func (cf *File) GetDatasetConfig(datasetName string) DatasetConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with dataset-specific configuration if present
	if dc, ok := cf.Datasets[datasetName]; ok {
		if dc.ExistingColumn != "" {
			result.ExistingColumn = dc.ExistingColumn
		}
		if dc.PreferredColumn != "" {
			result.PreferredColumn = dc.PreferredColumn
		}
		if dc.ReportFile != "" {
			result.ReportFile = dc.ReportFile
		}
		if dc.ChartFile != "" {
			result.ChartFile = dc.ChartFile
		}
	}

	return result
}

// Package config provides configuration structures and utilities for
// surveyscan. It defines the main configuration options for analyzing
// survey CSV files, artifact naming, and report generation preferences.
package config

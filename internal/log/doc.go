// Package log provides privacy-aware logging functionality with automatic
// redaction of respondent information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic redaction of respondent identities (names, emails, phone numbers)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Privacy Features
//
// Survey files contain personal data about respondents. The PrivacyHandler
// automatically redacts such information in log output:
//   - Attribute keys that identify a respondent (name, email, phone, address)
//   - Email addresses and phone numbers detected by pattern matching
//
// Even in verbose mode, respondent identities are masked so that logs can
// be shared or stored without exposing personal data.
//
// # Usage
//
//	// Create a privacy-aware logger
//	logger := log.NewPrivacyLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("row skipped",
//	    "respondent", "Jane Roe",  // Will be redacted
//	    "row", 12,
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log

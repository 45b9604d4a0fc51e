package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// identityKeys contains attribute keys that should always be redacted.
// These keys commonly carry respondent identities that should not be logged.
var identityKeys = map[string]bool{
	// Direct identifiers
	"name":       true,
	"respondent": true,
	"student":    true,
	"full_name":  true,
	"fullname":   true,
	"first_name": true,
	"last_name":  true,

	// Contact details
	"email":         true,
	"email_address": true,
	"phone":         true,
	"phone_number":  true,
	"mobile":        true,
	"address":       true,

	// Birth data
	"dob":           true,
	"date_of_birth": true,
	"birthdate":     true,
}

// identityPatterns contains regex patterns that indicate identifying values.
// Values matching these patterns are redacted regardless of key name.
var identityPatterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`),

	// Phone numbers (international and local formats)
	regexp.MustCompile(`^\+?[0-9][0-9 ().-]{6,}[0-9]$`),
}

// MaskValue is the string used to replace redacted values.
const MaskValue = "***REDACTED***"

// PrivacyHandler wraps an slog.Handler to redact respondent information.
// It intercepts log records and redacts attribute values that match
// identifying key names or value patterns before passing them to the
// underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Every component that accepts *slog.Logger gets redaction for free
type PrivacyHandler struct {
	// handler is the underlying slog handler that receives redacted records.
	handler slog.Handler
}

// NewPrivacyHandler creates a new PrivacyHandler wrapping the given handler.
// All log attributes will be redacted before being passed to the underlying handler.
// If handler is nil, the returned PrivacyHandler will use slog.Default().Handler().
func NewPrivacyHandler(handler slog.Handler) *PrivacyHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &PrivacyHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PrivacyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the record's attributes and passes it to the underlying handler.
func (h *PrivacyHandler) Handle(ctx context.Context, r slog.Record) error {
	// Create a new record with redacted attributes
	redacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(h.redactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, redacted)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are redacted before being added.
func (h *PrivacyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redactedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redactedAttrs[i] = h.redactAttr(a)
	}
	return &PrivacyHandler{handler: h.handler.WithAttrs(redactedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *PrivacyHandler) WithGroup(name string) slog.Handler {
	return &PrivacyHandler{handler: h.handler.WithGroup(name)}
}

// redactAttr redacts a single attribute, recursively handling groups.
func (h *PrivacyHandler) redactAttr(a slog.Attr) slog.Attr {
	// Handle groups recursively
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		redactedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			redactedAttrs[i] = h.redactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redactedAttrs...)}
	}

	// Check if the key indicates an identifying attribute
	keyLower := strings.ToLower(a.Key)
	if identityKeys[keyLower] || containsIdentityKeyword(keyLower) {
		return slog.String(a.Key, MaskValue)
	}

	// Check if the value matches identifying patterns
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		if isIdentityValue(strVal) {
			return slog.String(a.Key, MaskValue)
		}
	}

	return a
}

// containsIdentityKeyword checks if the key contains identifying keywords.
// Note: We intentionally exclude the bare "name" keyword as it causes false
// positives (e.g., "dataset_name", "column_name", "filename"). Direct
// identifiers like "full_name" and "first_name" are covered by the
// identityKeys map.
func containsIdentityKeyword(key string) bool {
	identityKeywords := []string{
		"respondent", "email", "phone", "mobile", "birth",
	}

	for _, keyword := range identityKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// isIdentityValue checks if a value matches identifying patterns.
func isIdentityValue(value string) bool {
	for _, pattern := range identityPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// NewPrivacyLogger creates a new slog.Logger with respondent redaction.
// The logger redacts respondent identities in all log output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewPrivacyLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	privacyHandler := NewPrivacyHandler(textHandler)

	return slog.New(privacyHandler)
}

// NewPrivacyJSONLogger creates a new slog.Logger with respondent redaction
// that outputs JSON format. Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger configured for JSON output with redaction.
func NewPrivacyJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	privacyHandler := NewPrivacyHandler(jsonHandler)

	return slog.New(privacyHandler)
}

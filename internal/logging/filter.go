// Package logging provides zerolog helpers that keep key material and
// passphrases out of log output.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns match secrets as they appear in rendered log lines,
// both as key=value pairs and as JSON fields.
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// Passphrases and passwords with any value.
	regexp.MustCompile(`(?i)"?(passphrase|password|passwd)"?\s*[:=]\s*"?[^\s",}]+"?`),

	// Key material and seeds long enough to be real keys (hex, base64 or raw printable).
	regexp.MustCompile(`(?i)"?(private_key|secret_key|key_material|seed|secret)"?\s*[:=]\s*"?[^\s",}]{16,}"?`),

	// PEM private key blocks.
	regexp.MustCompile(`-----BEGIN[A-Z ]*PRIVATE KEY-----`),

	// KEYSMITH_* environment assignments that carry secrets.
	regexp.MustCompile(`KEYSMITH_[A-Z_]*(PASSPHRASE|SECRET|KEY)=\S+`),
}

// sensitiveFieldNames are field names whose values are always redacted.
// Matching is case-insensitive and substring-based.
var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // Package-level patterns for reuse
	"passphrase",
	"password",
	"passwd",
	"secret",
	"seed",
	"private_key",
	"privatekey",
	"private-key",
	"key_material",
	"material",
	"plaintext",
}

// SensitiveDataHook is a zerolog hook that flags events whose message looks
// like it carries a secret. zerolog does not allow a hook to rewrite the
// message, so redaction itself happens in FilteringWriter.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements zerolog.Hook.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData reports whether s matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces every sensitive match in value with RedactedValue.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName reports whether a field name indicates sensitive data.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if strings.Contains(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// SafeValue returns RedactedValue for sensitive field names and the
// pattern-filtered value otherwise.
//
// Usage:
//
//	log.Debug().Str("input", logging.SafeValue("input", designator)).Msg("reading input")
func SafeValue(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// FilteringWriter wraps an io.Writer and redacts sensitive data before it
// reaches the underlying writer. The CLI wraps its log file with it.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a FilteringWriter around w.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer. It reports len(p) on success even when the
// filtered output is shorter, so callers never see a short write.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	filtered := FilterSensitiveValue(string(p))
	if _, err = fw.w.Write([]byte(filtered)); err != nil {
		return 0, err
	}
	return len(p), nil
}

package logger

import (
	"log/slog"
	"strings"
)

// bearerPrefix marks an Authorization header value.
const bearerPrefix = "Bearer "

// Sensitive key patterns that should be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"authorization",
	"bearer",
	"api_key",
	"apikey",
}

// Keys that contain a sensitive pattern but only ever carry safe values.
var safeKeys = map[string]bool{
	"token_fp":     true,
	"token_source": true,
	"has_token":    true,
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive checks if an attribute contains sensitive data
// and redacts it if necessary.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()

		// Authorization header values are masked whatever the key is.
		if strings.HasPrefix(strVal, bearerPrefix) {
			return slog.String(a.Key, bearerPrefix+maskValue(strVal[len(bearerPrefix):]))
		}

		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// maskValue keeps the first and last three characters of long values.
// Format: first 3 chars + "..." + last 3 chars
func maskValue(value string) string {
	if len(value) <= 12 {
		return "***"
	}
	return value[:3] + "..." + value[len(value)-3:]
}

// RedactString manually redacts a string value.
// Use this when a token must appear in an error message or prompt.
func RedactString(value string) string {
	if strings.HasPrefix(value, bearerPrefix) {
		return bearerPrefix + maskValue(value[len(bearerPrefix):])
	}
	return maskValue(value)
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	if safeKeys[keyLower] {
		return false
	}
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

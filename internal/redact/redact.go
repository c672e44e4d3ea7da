// Package redact masks sensitive values in structured log context.
package redact

import "strings"

// Marker replaces redacted values.
const Marker = "[REDACTED]"

// sensitiveKeys are matched case-insensitively as substrings of field names.
var sensitiveKeys = []string{
	"password",
	"passwd",
	"token",
	"secret",
	"api_key",
	"apikey",
	"authorization",
	"credit_card",
	"ssn",
}

// Sensitive reports whether a field name looks like it carries a secret.
func Sensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, pattern := range sensitiveKeys {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// Map returns a copy of m with sensitive values replaced by Marker,
// recursively through nested maps and slices. The input is never mutated.
func Map(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for key, value := range m {
		if Sensitive(key) {
			out[key] = Marker
			continue
		}
		out[key] = value
		switch v := value.(type) {
		case map[string]any:
			out[key] = Map(v)
		case []any:
			items := make([]any, len(v))
			for i, item := range v {
				if nested, ok := item.(map[string]any); ok {
					items[i] = Map(nested)
				} else {
					items[i] = item
				}
			}
			out[key] = items
		}
	}
	return out
}

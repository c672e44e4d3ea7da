// Package sanitize cleans request payload values before persistence.
//
// The generic Map sanitizer handles dynamic blobs (facility metadata); typed
// request DTOs plus validator tags cover the regular fields, so most
// endpoints never touch it. Single-value sanitizers exist for the field
// shapes that need more than a validator tag.
package sanitize

import (
	"encoding/json"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/caterdir/caterdir-server/internal/validation"
)

var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

// Sanitizer cleans loosely-typed values. Replaced values are logged, never
// raised as errors.
type Sanitizer struct {
	logger    *slog.Logger
	validator *validation.Validator
}

// New creates a sanitizer. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Sanitizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sanitizer{logger: logger, validator: validation.New()}
}

// Map sanitizes a dynamic record recursively. Strings are trimmed and
// entity-encoded, integers kept only when positive, floats kept as-is,
// booleans passed through, nested maps recurse. Unsupported values are
// replaced with nil and logged.
func (s *Sanitizer) Map(record map[string]any) map[string]any {
	return s.sanitizeMap(record, false)
}

func (s *Sanitizer) sanitizeMap(record map[string]any, encodeOnly bool) map[string]any {
	if record == nil {
		return nil
	}
	out := make(map[string]any, len(record))
	for key, value := range record {
		out[key] = s.sanitizeValue(key, value, encodeOnly)
	}
	return out
}

func (s *Sanitizer) sanitizeValue(key string, value any, encodeOnly bool) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if encodeOnly {
			return encode(v)
		}
		return encode(strings.TrimSpace(v))
	case bool:
		return v
	case int:
		return s.positiveInt(key, int64(v), encodeOnly)
	case int64:
		return s.positiveInt(key, v, encodeOnly)
	case float32:
		return float64(v)
	case float64:
		return v
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
		s.logger.Warn("sanitizer dropped non-numeric value", "field", key)
		return nil
	case map[string]any:
		return s.sanitizeMap(v, encodeOnly)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = s.sanitizeValue(key, item, encodeOnly)
		}
		return out
	default:
		s.logger.Warn("sanitizer dropped value of unsupported type", "field", key)
		return nil
	}
}

func (s *Sanitizer) positiveInt(key string, v int64, encodeOnly bool) any {
	if encodeOnly || v > 0 {
		return v
	}
	s.logger.Warn("sanitizer dropped non-positive integer", "field", key)
	return nil
}

// encode entity-encodes a string. Already-encoded input is decoded first so
// repeated sanitization never double-escapes.
func encode(v string) string {
	return html.EscapeString(html.UnescapeString(v))
}

// Email validates an address and returns it unchanged, or nil when it is not
// RFC-shaped.
func (s *Sanitizer) Email(value string) any {
	value = strings.TrimSpace(value)
	if err := s.validator.Var(value, "required,email"); err != nil {
		return nil
	}
	return value
}

// Phone strips everything except digits and plus signs, then requires a 7 to
// 15 digit number with at most one leading plus. A plus anywhere else survives
// the strip and fails the pattern, so misplaced ones reject the whole value.
// Returns the normalized number or nil.
func (s *Sanitizer) Phone(value string) any {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	normalized := b.String()
	if !phonePattern.MatchString(normalized) {
		return nil
	}
	return normalized
}

// Bool parses a permissive boolean: typed bools pass through, "true"/"1" and
// "false"/"0" strings parse, and 0/1 numerics parse. Returns the parsed value
// or nil.
func (s *Sanitizer) Bool(value any) any {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			return true
		case "false", "0":
			return false
		}
	case int:
		return s.boolFromNumber(float64(v))
	case int64:
		return s.boolFromNumber(float64(v))
	case float64:
		return s.boolFromNumber(v)
	}
	s.logger.Warn("sanitizer dropped non-boolean value")
	return nil
}

func (s *Sanitizer) boolFromNumber(v float64) any {
	switch v {
	case 0:
		return false
	case 1:
		return true
	}
	s.logger.Warn("sanitizer dropped non-boolean number")
	return nil
}

// Text entity-encodes free-form text without trimming or stripping characters.
func (s *Sanitizer) Text(value string) string {
	return encode(value)
}

// Date parses value against layout and requires an exact round-trip, so
// partially-valid inputs like "2026-02-31" are rejected. Returns the value
// or nil.
func (s *Sanitizer) Date(value, layout string) any {
	t, err := time.Parse(layout, value)
	if err != nil {
		return nil
	}
	if t.Format(layout) != value {
		return nil
	}
	return value
}

// JSONBlob decodes a JSON object and applies the encode-only pass, which
// escapes strings but preserves structure, numbers, and booleans. Returns nil
// when the blob is not a JSON object.
func (s *Sanitizer) JSONBlob(blob string) map[string]any {
	var record map[string]any
	if err := json.Unmarshal([]byte(blob), &record); err != nil {
		s.logger.Warn("sanitizer dropped malformed JSON blob", "error", err)
		return nil
	}
	return s.sanitizeMap(record, true)
}

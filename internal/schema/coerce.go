package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when coercing date input. Matches
// are normalized to the ISO calendar date, dropping any time part.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// Coerce converts an arbitrary raw value into a type-correct Value
// for the given field type. The second return is false when the raw
// value cannot be represented: malformed numbers and dates, and
// select inputs matching no option, are dropped rather than stored.
// Completeness is sacrificed for correctness.
func Coerce(fieldType FieldType, raw any, options Options) (Value, bool) {
	switch fieldType {
	case FieldTypeText:
		return TextValue(Stringify(raw)), true
	case FieldTypeNumber:
		return coerceNumber(raw)
	case FieldTypeDate:
		return coerceDate(raw)
	case FieldTypeSelect:
		return coerceSelect(raw, options)
	}
	return Value{}, false
}

func coerceNumber(raw any) (Value, bool) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Value{}, false
		}
		return NumberValue(v), true
	case float32:
		return coerceNumber(float64(v))
	case int:
		return NumberValue(float64(v)), true
	case int64:
		return NumberValue(float64(v)), true
	}

	s := strings.TrimSpace(Stringify(raw))
	if s == "" {
		return Value{}, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return Value{}, false
	}
	return NumberValue(n), true
}

func coerceDate(raw any) (Value, bool) {
	if t, ok := raw.(time.Time); ok {
		return DateValue(t.Format("2006-01-02")), true
	}

	s := strings.TrimSpace(Stringify(raw))
	if s == "" {
		return Value{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateValue(t.Format("2006-01-02")), true
		}
	}
	return Value{}, false
}

// coerceSelect matches the raw value against the option list,
// case-insensitively: exact match first, then raw-contains-option,
// then option-contains-raw. First match wins, so the result is
// always a literal member of options.
func coerceSelect(raw any, options Options) (Value, bool) {
	s := strings.TrimSpace(Stringify(raw))
	if s == "" {
		return Value{}, false
	}
	lower := strings.ToLower(s)

	for _, option := range options {
		if strings.ToLower(option) == lower {
			return OptionValue(option), true
		}
	}
	for _, option := range options {
		if strings.Contains(lower, strings.ToLower(option)) {
			return OptionValue(option), true
		}
	}
	for _, option := range options {
		if strings.Contains(strings.ToLower(option), lower) {
			return OptionValue(option), true
		}
	}
	return Value{}, false
}

// Stringify renders a raw extraction value as text. Floats get
// minimal-digit formatting so 42.0 round-trips as "42".
func Stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

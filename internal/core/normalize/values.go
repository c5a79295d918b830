// Package normalize turns raw vendor API rows into canonical records.
//
// Vendor payloads are wildly inconsistent: the same field arrives as a bare
// number, a wrapper object, a list, or an empty {} placeholder depending on
// endpoint and vendor version. Coercion here is total: a malformed value
// degrades to absent, it never fails the record. Only a missing identity
// fails a record.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawRecord is one decoded vendor row keyed by the vendor's dot-path names
type RawRecord = map[string]any

// numericSubKeys is the fixed priority order for unwrapping aggregate
// wrapper objects like {"sum": 12.5, "average": 6.25}
var numericSubKeys = [...]string{"sum", "value", "amount", "price", "average"}

// SafeGet returns the value at key, mapping the vendor's empty-object
// placeholder {} to absent
func SafeGet(raw RawRecord, key string) (any, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, false
	}
	if m, isMap := v.(map[string]any); isMap && len(m) == 0 {
		return nil, false
	}
	return v, true
}

// Numeric coerces v to a float64.
//
// Wrapper objects are unwrapped via the first priority sub-key holding a
// number; sub-keys holding strings or other shapes are skipped. Numeric
// strings are parsed. Anything else is absent.
func Numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case map[string]any:
		for _, k := range numericSubKeys {
			if sub, ok := x[k]; ok {
				if f, isNum := asFloat(sub); isNum {
					return f, true
				}
			}
		}
		return 0, false
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return asFloat(v)
	}
}

// asFloat accepts only genuinely numeric dynamic types
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

// Boolean coerces v to a bool. Strings compare case-insensitively against
// "true"; every other string is false, padding included. Non-bool
// non-string values are false.
func Boolean(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return strings.EqualFold(x, "true")
	default:
		return false
	}
}

// CompositeID coerces document-number style fields that may arrive as a
// scalar or as a list of scalars. Whole-valued floats render without the
// decimal point, list elements join with ", ", nil elements are skipped.
// An empty list (or one holding only nils) is absent.
func CompositeID(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case []any:
		parts := make([]string, 0, len(x))
		for _, el := range x {
			if el == nil {
				continue
			}
			parts = append(parts, renderScalar(el))
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, ", "), true
	default:
		s := renderScalar(v)
		if s == "" {
			return "", false
		}
		return s, true
	}
}

// renderScalar prints one composite element, collapsing whole floats to ints
func renderScalar(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		// int64 conversion is only defined inside its range
		if x == math.Trunc(x) && math.Abs(x) < 1<<63 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return renderScalar(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// vendor timestamp layouts, most specific first
var timeLayouts = [...]string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp parses the vendor's local-naive datetime strings as UTC
func Timestamp(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

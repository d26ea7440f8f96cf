package vufind

import (
	"encoding/json"
	"strconv"
)

// toStrings flattens a stored value into strings. Nested objects are not
// text and are dropped.
func toStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		result := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := scalar(e); ok {
				result = append(result, s)
			}
		}
		return result, true
	default:
		if s, ok := scalar(v); ok {
			return []string{s}, true
		}
	}
	return nil, false
}

// scalar renders strings, numbers and booleans as text.
func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

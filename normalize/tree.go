package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// asMap accepts both JSON-decoded objects and documents read back from Mongo.
func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case primitive.M:
		return map[string]any(t), true
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = e.Value
		}
		return m, true
	}
	return nil, false
}

func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case primitive.A:
		return []any(t), true
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	}
	return nil, false
}

// isEmpty reports values that count as absent: nil, "", and empty
// sequences or mappings. Numbers and booleans are always present.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	if s, ok := asSlice(v); ok {
		return len(s) == 0
	}
	if m, ok := asMap(v); ok {
		return len(m) == 0
	}
	return false
}

// str returns the first non-empty string (or number rendered as text) among keys.
func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch t := m[k].(type) {
		case string:
			if t != "" {
				return t
			}
		case json.Number:
			return t.String()
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case int, int32, int64:
			f, _ := toFloat(t)
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return ""
}

// num returns the first key holding something numeric.
func num(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if f, ok := toFloat(m[k]); ok {
			return f, true
		}
	}
	return 0, false
}

func numPtr(m map[string]any, keys ...string) *float64 {
	if f, ok := num(m, keys...); ok {
		return &f
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// copyMap detaches a record from the response tree so callers can keep it.
func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

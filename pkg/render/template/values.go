package template

import (
	"reflect"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
)

// toContext normalises render data into maps, slices and JSON scalars so
// lookups never need reflection. Structs go through their JSON form.
func toContext(data any) (any, error) {
	switch v := data.(type) {
	case nil, string, bool, float64:
		return v, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			converted, err := toContext(value)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(v))
		for _, value := range v {
			converted, err := toContext(value)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var out any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	if n, ok := toNumber(value); ok {
		return n != 0
	}
	return true
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toInt(value any) int {
	n, _ := toNumber(value)
	return int(n)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any, []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
	if n, ok := toNumber(value); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(raw)
}

// equal compares two context values structurally, treating every numeric
// representation alike.
func equal(a, b any) bool {
	if an, ok := toNumberStrict(a); ok {
		bn, ok := toNumberStrict(b)
		return ok && an == bn
	}
	return reflect.DeepEqual(a, b)
}

func toNumberStrict(value any) (float64, bool) {
	if _, isString := value.(string); isString {
		return 0, false
	}
	return toNumber(value)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

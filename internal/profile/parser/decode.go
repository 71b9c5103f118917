package parser

import (
	"fmt"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-comlinkgen/pkg/profile"
)

// decode unmarshals raw into generic maps and slices. Numbers always come
// back as float64 regardless of the serialisation.
func decode(format profile.Format, raw []byte) (any, error) {
	var tree any
	switch format {
	case profile.FormatJSON:
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, errors.Wrap(err, "json")
		}
	case profile.FormatYAML, profile.FormatUnknown:
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, errors.Wrap(err, "yaml")
		}
	default:
		return nil, errors.Newf("unsupported format %q", format)
	}
	return normalise(tree), nil
}

func normalise(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			v[key] = normalise(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalise(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = normalise(item)
		}
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return v
	}
}

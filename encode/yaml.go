package encode

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/goccy/go-yaml"

	"github.com/wiremodel/wiremodel-go/raw"
)

// YAML renders v for human inspection, preserving raw-store key order.
// Models are unwrapped the same way the JSON encoder unwraps them.
func YAML(v any) ([]byte, error) {
	return yaml.Marshal(yamlValue(v))
}

func yamlValue(v any) any {
	if raw.IsNull(v) {
		return nil
	}
	switch t := v.(type) {
	case raw.Unwrapper:
		return yamlValue(t.RawMap())
	case *raw.Map:
		out := make(yaml.MapSlice, 0, t.Len())
		t.Range(func(k string, e any) bool {
			out = append(out, yaml.MapItem{Key: k, Value: yamlValue(e)})
			return true
		})
		return out
	case map[string]any:
		return yamlValue(raw.FromGoMap(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlValue(e)
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return string(t)
	case *apd.Decimal:
		return t.Text('f')
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return v
	}
}

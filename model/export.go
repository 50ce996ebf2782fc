package model

import (
	"github.com/wiremodel/wiremodel-go/field"
	"github.com/wiremodel/wiremodel-go/raw"
)

type exportCfg struct {
	excludeReadOnly bool
}

// ExportOption configures ToMap.
type ExportOption func(*exportCfg)

// ExcludeReadOnly omits every field whose descriptor is read-only.
// The omission applies to this export only; read-only fields stay
// gettable, settable, iterable and encodable.
func ExcludeReadOnly() ExportOption {
	return func(c *exportCfg) { c.excludeReadOnly = true }
}

// ToMap flattens the raw store recursively into plain Go data,
// unwrapping nested models back to plain mappings.
func (m *Model) ToMap(opts ...ExportOption) map[string]any {
	cfg := exportCfg{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return m.toMap(cfg)
}

func (m *Model) toMap(cfg exportCfg) map[string]any {
	out := make(map[string]any, m.store.Len())
	m.store.Range(func(k string, v any) bool {
		if cfg.excludeReadOnly {
			if d := m.typ.byWire[k]; d != nil && d.Visibility == field.ReadOnly {
				return true
			}
		}
		out[k] = plainValue(v, cfg)
		return true
	})
	return out
}

func plainValue(v any, cfg exportCfg) any {
	if raw.IsNull(v) {
		return nil
	}
	switch t := v.(type) {
	case *Model:
		return t.toMap(cfg)
	case *raw.Map:
		out := make(map[string]any, t.Len())
		t.Range(func(k string, e any) bool {
			out[k] = plainValue(e, cfg)
			return true
		})
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e, cfg)
		}
		return out
	default:
		return v
	}
}

package model

import (
	"fmt"

	"github.com/wiremodel/wiremodel-go/field"
	"github.com/wiremodel/wiremodel-go/raw"
)

// encodeValue converts a caller-supplied value into raw-store form per
// the declared type.  Container results never alias caller-owned
// containers; a supplied Model aliases, since it is already raw.
func encodeValue(ts *field.TypeSpec, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if v == raw.Null {
		return nil, nil
	}
	switch ts.Kind {
	case field.KindModel:
		return encodeModel(ts, v)
	case field.KindList:
		vs, ok := v.([]any)
		if !ok {
			// typed slices normalize to []any and take the element
			// encode like any other list
			norm, isList := raw.Normalize(v).([]any)
			if !isList {
				return norm, nil
			}
			vs = norm
		}
		out := make([]any, len(vs))
		for i, e := range vs {
			enc, err := encodeValue(ts.Elem, e)
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil
	case field.KindMap:
		var items []raw.Item
		switch src := v.(type) {
		case *raw.Map:
			items = src.Items()
		case map[string]any:
			items = raw.FromGoMap(src).Items()
		default:
			return raw.Normalize(v), nil
		}
		out := raw.NewMap()
		for _, it := range items {
			enc, err := encodeValue(ts.Elem, it.Value)
			if err != nil {
				return nil, err
			}
			out.Set(it.Key, enc)
		}
		return out, nil
	case field.KindAny:
		return raw.Normalize(v), nil
	default:
		return codecFor(ts).Encode(v)
	}
}

func encodeModel(ts *field.TypeSpec, v any) (any, error) {
	if m, ok := v.(*Model); ok {
		// a model is representationally transparent; wrapping its own
		// store is aliasing by design of the raw view
		return m, nil
	}
	mt, ok := ts.Model.(*Type)
	if !ok {
		return nil, fmt.Errorf("model field declared with foreign type %T", ts.Model)
	}
	switch v.(type) {
	case *raw.Map, map[string]any:
		return mt.From(v)
	default:
		return nil, fmt.Errorf("cannot encode %T as %s", v, mt.name)
	}
}

// decodeValue computes the typed view of a raw scalar (or scalar
// container) value.  The result is fresh on every call; the raw slot
// is never rewritten here.
func decodeValue(d *field.Descriptor, v any) (any, error) {
	if d.CustomDecode != nil {
		return d.CustomDecode(v)
	}
	return decodeTyped(d.Type, v)
}

func decodeTyped(ts *field.TypeSpec, v any) (any, error) {
	if raw.IsNull(v) {
		return nil, nil
	}
	switch ts.Kind {
	case field.KindAny:
		return v, nil
	case field.KindList:
		vs, ok := v.([]any)
		if !ok {
			return v, nil
		}
		out := make([]any, len(vs))
		for i, e := range vs {
			dec, err := decodeTyped(ts.Elem, e)
			if err != nil {
				return nil, err
			}
			out[i] = dec
		}
		return out, nil
	case field.KindMap:
		rm, ok := v.(*raw.Map)
		if !ok {
			return v, nil
		}
		out := raw.NewMap()
		for _, it := range rm.Items() {
			dec, err := decodeTyped(ts.Elem, it.Value)
			if err != nil {
				return nil, err
			}
			out.Set(it.Key, dec)
		}
		return out, nil
	case field.KindModel:
		// reached only under a custom decode bypass; leave raw
		return v, nil
	default:
		return codecFor(ts).Decode(v)
	}
}

// wrapValue materializes model-typed raw data: sub-mappings become
// Model wrappers over the same backing map, containers are rewritten
// element-wise in place.  Idempotent, so repeated reads observe the
// identical wrapped values.
func wrapValue(ts *field.TypeSpec, v any) (any, error) {
	if raw.IsNull(v) {
		return v, nil
	}
	switch ts.Kind {
	case field.KindModel:
		switch src := v.(type) {
		case *Model:
			return src, nil
		case *raw.Map:
			return wrapModel(ts, src)
		case map[string]any:
			return wrapModel(ts, raw.FromGoMap(src))
		default:
			return v, nil
		}
	case field.KindList:
		vs, ok := v.([]any)
		if !ok {
			return v, nil
		}
		for i, e := range vs {
			w, err := wrapValue(ts.Elem, e)
			if err != nil {
				return nil, err
			}
			vs[i] = w
		}
		return vs, nil
	case field.KindMap:
		rm, ok := v.(*raw.Map)
		if !ok {
			if g, isMap := v.(map[string]any); isMap {
				rm = raw.FromGoMap(g)
			} else {
				return v, nil
			}
		}
		for _, k := range rm.Keys() {
			e, _ := rm.Get(k)
			w, err := wrapValue(ts.Elem, e)
			if err != nil {
				return nil, err
			}
			rm.Set(k, w)
		}
		return rm, nil
	default:
		return v, nil
	}
}

func wrapModel(ts *field.TypeSpec, rm *raw.Map) (any, error) {
	mt, ok := ts.Model.(*Type)
	if !ok {
		return nil, fmt.Errorf("model field declared with foreign type %T", ts.Model)
	}
	rt := mt.resolve(rm)
	return &Model{typ: rt, store: rm}, nil
}

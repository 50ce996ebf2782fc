// Package model implements the dual-view wire model: instances behave
// both as attribute-addressable typed objects and as raw, wire-accurate
// ordered JSON mappings over a single backing store.
package model

import (
	"fmt"
	"maps"
	"slices"

	"github.com/wiremodel/wiremodel-go/debug"
	"github.com/wiremodel/wiremodel-go/raw"
)

// Values supplies keyword-mode constructor arguments, keyed by
// attribute name.
type Values map[string]any

// Model is a dual-view instance.  It owns exactly one raw store; the
// typed view and the mapping view both operate on it directly.
type Model struct {
	typ   *Type
	store *raw.Map
}

// New constructs an instance from named field values.  Each value is
// run through its descriptor's encode; a nil value omits the field
// entirely; the Null sentinel stores an explicit null.  Fields left
// out with a declared default are backfilled.  A key with no
// descriptor is a construction error.
func (t *Type) New(vals Values) (*Model, error) {
	for _, k := range slices.Sorted(maps.Keys(vals)) {
		if _, ok := t.table[k]; !ok {
			return nil, fmt.Errorf("%w: %s has no field %q", ErrConstruction, t.name, k)
		}
	}
	rm := raw.NewMap()
	for _, d := range t.order {
		v, supplied := vals[d.Attr]
		switch {
		case !supplied:
			if d.HasDefault {
				enc, err := encodeValue(d.Type, d.Default)
				if err != nil {
					return nil, fmt.Errorf("default for %q: %w", d.Attr, err)
				}
				rm.Set(d.Wire, enc)
			}
		case v == nil:
			// delete-not-null: the absence marker omits the key even
			// in keyword mode
		case v == raw.Null:
			rm.Set(d.Wire, nil)
		default:
			enc, err := encodeValue(d.Type, v)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", d.Attr, err)
			}
			rm.Set(d.Wire, enc)
		}
	}
	return &Model{typ: t, store: rm}, nil
}

// From constructs an instance from an already wire-shaped mapping: a
// *raw.Map, a plain map[string]any, or another Model read through its
// mapping view.  The input is defensively copied; explicit nulls are
// preserved.  Defaults are backfilled for absent fields.
func (t *Type) From(src any) (*Model, error) {
	rm, err := t.rawFrom(src)
	if err != nil {
		return nil, err
	}
	if err := t.backfill(rm); err != nil {
		return nil, err
	}
	return &Model{typ: t, store: rm}, nil
}

// Decode is From with discriminator resolution: raw data typed as a
// discriminated root constructs the most derived registered subtype.
// Unknown discriminator values fall back to the most specific type
// resolved so far.
func (t *Type) Decode(src any) (*Model, error) {
	rm, err := t.rawFrom(src)
	if err != nil {
		return nil, err
	}
	rt := t.resolve(rm)
	if debug.Decode() {
		debug.Logf("decode %s as %s\n", t.name, rt.name)
	}
	if err := rt.backfill(rm); err != nil {
		return nil, err
	}
	return &Model{typ: rt, store: rm}, nil
}

// DecodeJSON decodes a JSON object body, resolving discriminators.
func (t *Type) DecodeJSON(d []byte) (*Model, error) {
	rm, err := raw.FromJSON(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConstruction, err)
	}
	return t.Decode(rm)
}

func (t *Type) rawFrom(src any) (*raw.Map, error) {
	switch s := src.(type) {
	case nil:
		return raw.NewMap(), nil
	case *Model:
		return s.store.Clone(), nil
	case *raw.Map:
		return s.Clone(), nil
	case map[string]any:
		return raw.FromGoMap(s), nil
	default:
		return nil, fmt.Errorf("%w: cannot build %s from %T", ErrConstruction, t.name, src)
	}
}

func (t *Type) backfill(rm *raw.Map) error {
	for _, d := range t.order {
		if !d.HasDefault || rm.Has(d.Wire) {
			continue
		}
		enc, err := encodeValue(d.Type, d.Default)
		if err != nil {
			return fmt.Errorf("default for %q: %w", d.Attr, err)
		}
		rm.Set(d.Wire, enc)
	}
	return nil
}

// Type returns the instance's model type.
func (m *Model) Type() *Type { return m.typ }

// RawMap exposes the backing store; Model is a representationally
// transparent wrapper around it.
func (m *Model) RawMap() *raw.Map { return m.store }

// Attr reads an attribute through its field descriptor.  An absent
// wire key reads as nil; an explicit null reads as nil; model-typed
// fields materialize in place on first read and are reference-stable
// afterwards; scalar fields decode fresh on every read, leaving the
// raw slot untouched.
func (m *Model) Attr(name string) (any, error) {
	d, ok := m.typ.table[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrAttrNotDeclared, m.typ.name, name)
	}
	v, present := m.store.Get(d.Wire)
	if !present || raw.IsNull(v) {
		return nil, nil
	}
	if d.CustomDecode == nil && d.Type.ContainsModel() {
		w, err := wrapValue(d.Type, v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		if debug.Materialize() {
			debug.Logf("materialize %s.%s\n", m.typ.name, name)
		}
		m.store.Set(d.Wire, w)
		return w, nil
	}
	out, err := decodeValue(d, v)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}
	return out, nil
}

// MustAttr is Attr, panicking on error.
func (m *Model) MustAttr(name string) any {
	v, err := m.Attr(name)
	if err != nil {
		panic(err)
	}
	return v
}

// SetAttr writes an attribute through its descriptor's encode.  A nil
// value deletes the wire key; the Null sentinel stores an explicit
// null instead.
func (m *Model) SetAttr(name string, v any) error {
	d, ok := m.typ.table[name]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrAttrNotDeclared, m.typ.name, name)
	}
	if v == nil {
		m.store.Delete(d.Wire)
		return nil
	}
	if v == raw.Null {
		m.store.Set(d.Wire, nil)
		return nil
	}
	enc, err := encodeValue(d.Type, v)
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	m.store.Set(d.Wire, enc)
	return nil
}

// DeleteAttr removes the field's wire key; equivalent to SetAttr with
// nil.
func (m *Model) DeleteAttr(name string) error {
	return m.SetAttr(name, nil)
}

// Equal compares raw stores by deep value; other may be a Model, a
// *raw.Map, or a plain map[string]any.
func (m *Model) Equal(other any) bool {
	return raw.Equal(m, other)
}

// Clone deep-copies the instance's raw store.
func (m *Model) Clone() *Model {
	return &Model{typ: m.typ, store: m.store.Clone()}
}

// CloneValue implements raw.ValueCloner: a materialized nested model
// clones its store, so cloning the containing store shares nothing
// with the source.
func (m *Model) CloneValue() any { return m.Clone() }

// String renders the raw store's textual form.
func (m *Model) String() string {
	return m.store.String()
}

// MarshalJSON refuses generic serialization: the raw store needs the
// model-aware encoder (nested models, byte sequences, decimals, the
// null sentinel).  See the encode package.
func (m *Model) MarshalJSON() ([]byte, error) {
	return nil, ErrGenericMarshal
}

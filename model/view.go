package model

import (
	"fmt"

	"github.com/wiremodel/wiremodel-go/raw"
)

// The mapping view: standard ordered-mapping operations applied
// directly to the raw store.  Undeclared keys are legal, preserved,
// and round-trip through the encoder; they just have no attribute
// counterpart.

func (m *Model) Len() int { return m.store.Len() }

func (m *Model) Has(key string) bool { return m.store.Has(key) }

func (m *Model) Keys() []string { return m.store.Keys() }

func (m *Model) Values() []any { return m.store.Values() }

func (m *Model) Items() []raw.Item { return m.store.Items() }

// Range iterates entries in wire order until f returns false.
func (m *Model) Range(f func(key string, val any) bool) { m.store.Range(f) }

// Get returns the raw value at key.
func (m *Model) Get(key string) (any, bool) { return m.store.Get(key) }

// GetDefault returns the raw value at key, or def when absent; it
// never fails.
func (m *Model) GetDefault(key string, def any) any {
	if v, ok := m.store.Get(key); ok {
		return v
	}
	return def
}

// Item is the subscript get: a missing key is a not-found error.
func (m *Model) Item(key string) (any, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", raw.ErrKeyNotFound, key)
	}
	return v, nil
}

// Set stores a value at a wire key, declared or not.  The value is
// normalized to raw-store form but not run through any field codec.
func (m *Model) Set(key string, v any) {
	m.store.Set(key, raw.Normalize(v))
}

// Delete removes a wire key; a missing key is a not-found error.
func (m *Model) Delete(key string) error {
	if !m.store.Delete(key) {
		return fmt.Errorf("%w: %q", raw.ErrKeyNotFound, key)
	}
	return nil
}

// Pop removes and returns the value at key; a missing key is a
// not-found error and mutates nothing.
func (m *Model) Pop(key string) (any, error) {
	v, ok := m.store.Pop(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", raw.ErrKeyNotFound, key)
	}
	return v, nil
}

// PopDefault is Pop with a fallback; it never fails.
func (m *Model) PopDefault(key string, def any) any {
	if v, ok := m.store.Pop(key); ok {
		return v
	}
	return def
}

// PopItem removes and returns the most recently added entry (LIFO).
func (m *Model) PopItem() (string, any, error) {
	k, v, ok := m.store.PopItem()
	if !ok {
		return "", nil, fmt.Errorf("%w: model is empty", raw.ErrKeyNotFound)
	}
	return k, v, nil
}

func (m *Model) Clear() { m.store.Clear() }

// SetDefault returns the value at key, first storing def when absent.
func (m *Model) SetDefault(key string, def any) any {
	return m.store.SetDefault(key, raw.Normalize(def))
}

// Update merges a partial mapping into the store, last write wins.
func (m *Model) Update(src any) error {
	switch s := src.(type) {
	case *Model:
		m.store.Update(s.store)
	case *raw.Map:
		m.store.Update(s)
	case map[string]any:
		m.store.Update(raw.FromGoMap(s))
	default:
		return fmt.Errorf("%w: cannot update from %T", ErrConstruction, src)
	}
	return nil
}

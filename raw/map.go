// Package raw implements the ordered, wire-shaped mapping that backs
// every model instance.
package raw

import (
	"encoding/json"
	"maps"
	"reflect"
	"slices"
)

// Item is a single key/value entry of a Map.
type Item struct {
	Key   string
	Value any
}

// Map is an ordered string-keyed mapping of JSON-safe values.  Values
// are scalars (nil, bool, string, json.Number and the plain Go numeric
// types), []any, nested *Map, or wrapped model values implementing
// Unwrapper.
type Map struct {
	keys []string
	idx  map[string]int
	vals []any
}

// Unwrapper is implemented by model values that are representationally
// transparent wrappers around a Map.
type Unwrapper interface {
	RawMap() *Map
}

// ValueCloner is implemented by wrapped values that deep-copy
// themselves.  Clone uses it so a materialized sub-value never shares
// state with the clone.
type ValueCloner interface {
	CloneValue() any
}

func NewMap() *Map {
	return &Map{idx: map[string]int{}}
}

// FromItems builds a Map preserving the given entry order.
func FromItems(items ...Item) *Map {
	m := NewMap()
	for _, it := range items {
		m.Set(it.Key, it.Value)
	}
	return m
}

// FromGoMap builds a Map from a plain Go map.  Plain maps carry no
// order, so keys are sorted; values are normalized with Normalize.
func FromGoMap(src map[string]any) *Map {
	m := NewMap()
	for _, k := range slices.Sorted(maps.Keys(src)) {
		m.Set(k, Normalize(src[k]))
	}
	return m
}

func (m *Map) Len() int {
	return len(m.keys)
}

func (m *Map) Has(key string) bool {
	_, ok := m.idx[key]
	return ok
}

func (m *Map) Get(key string) (any, bool) {
	i, ok := m.idx[key]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

// Set stores val at key, appending the key if it is new and keeping
// the key's position if it already exists.
func (m *Map) Set(key string, val any) {
	if i, ok := m.idx[key]; ok {
		m.vals[i] = val
		return
	}
	m.idx[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	i, ok := m.idx[key]
	if !ok {
		return false
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	delete(m.idx, key)
	for k, j := range m.idx {
		if j > i {
			m.idx[k] = j - 1
		}
	}
	return true
}

// Pop removes key and returns its value.
func (m *Map) Pop(key string) (any, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	m.Delete(key)
	return v, true
}

// PopItem removes and returns the most recently added entry.
func (m *Map) PopItem() (string, any, bool) {
	if len(m.keys) == 0 {
		return "", nil, false
	}
	k := m.keys[len(m.keys)-1]
	v := m.vals[len(m.vals)-1]
	m.keys = m.keys[:len(m.keys)-1]
	m.vals = m.vals[:len(m.vals)-1]
	delete(m.idx, k)
	return k, v, true
}

func (m *Map) Clear() {
	m.keys = nil
	m.vals = nil
	m.idx = map[string]int{}
}

// SetDefault returns the value at key, first storing def if the key is
// absent.
func (m *Map) SetDefault(key string, def any) any {
	if v, ok := m.Get(key); ok {
		return v
	}
	m.Set(key, def)
	return def
}

func (m *Map) Keys() []string {
	return slices.Clone(m.keys)
}

func (m *Map) Values() []any {
	return slices.Clone(m.vals)
}

func (m *Map) Items() []Item {
	items := make([]Item, len(m.keys))
	for i, k := range m.keys {
		items[i] = Item{Key: k, Value: m.vals[i]}
	}
	return items
}

// Range calls f for each entry in order until f returns false.
func (m *Map) Range(f func(key string, val any) bool) {
	for i, k := range m.keys {
		if !f(k, m.vals[i]) {
			return
		}
	}
}

// Update sets every entry of o on m, in o's order.
func (m *Map) Update(o *Map) {
	o.Range(func(k string, v any) bool {
		m.Set(k, v)
		return true
	})
}

// Clone returns a deep copy of m.  Container values are copied;
// wrapped values are deep-copied through ValueCloner.
func (m *Map) Clone() *Map {
	res := &Map{
		keys: slices.Clone(m.keys),
		vals: make([]any, len(m.vals)),
		idx:  make(map[string]int, len(m.idx)),
	}
	maps.Copy(res.idx, m.idx)
	for i, v := range m.vals {
		res.vals[i] = CloneValue(v)
	}
	return res
}

// CloneValue deep-copies container and wrapped values and passes
// everything else through unchanged.
func CloneValue(v any) any {
	if c, ok := v.(ValueCloner); ok {
		return c.CloneValue()
	}
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case map[string]any:
		return FromGoMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Normalize converts arbitrary JSON-shaped input into raw-store form:
// plain Go maps become ordered Maps (sorted keys), slices are copied
// and typed slices rewritten as []any, scalars pass through.  The
// result never aliases mutable containers reachable from v.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return FromGoMap(t)
	case *Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Normalize(e)
		}
		return out
	case json.RawMessage:
		out, err := ValueFromJSON(t)
		if err != nil {
			return string(t)
		}
		return out
	case []byte:
		return slices.Clone(t)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			out := make([]any, rv.Len())
			for i := range out {
				out[i] = Normalize(rv.Index(i).Interface())
			}
			return out
		}
		return v
	}
}

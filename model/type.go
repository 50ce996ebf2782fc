package model

import (
	"fmt"
	"sync"

	"github.com/wiremodel/wiremodel-go/codec"
	"github.com/wiremodel/wiremodel-go/debug"
	"github.com/wiremodel/wiremodel-go/field"
	"github.com/wiremodel/wiremodel-go/raw"
)

// Type is a model type definition: the merged field table across its
// ancestry plus, for discriminated roots, the registry of subtypes.
// Types are defined once at startup and read-only afterwards.
type Type struct {
	name    string
	parents []*Type
	own     []*field.Descriptor

	mro    []*Type
	table  map[string]*field.Descriptor
	byWire map[string]*field.Descriptor
	order  []*field.Descriptor

	// disc is the discriminator field this type itself declares; the
	// declaring type owns the registry for its family.
	disc      *field.Descriptor
	discValue string

	mu   sync.RWMutex
	subs map[string]*Type
}

type defineCfg struct {
	parents      []*Type
	fields       []*field.Descriptor
	discValue    string
	hasDiscValue bool
}

// DefineOption configures a type definition.
type DefineOption func(*defineCfg)

// Extends declares parent types, leftmost first.  On an attribute-name
// collision the leftmost declaration wins.
func Extends(parents ...*Type) DefineOption {
	return func(c *defineCfg) { c.parents = append(c.parents, parents...) }
}

// Fields declares the type's own fields, in wire order.
func Fields(fds ...*field.Descriptor) DefineOption {
	return func(c *defineCfg) { c.fields = append(c.fields, fds...) }
}

// DiscriminatorValue registers the type under v in the registry of its
// nearest ancestor declaring a discriminator field.
func DiscriminatorValue(v string) DefineOption {
	return func(c *defineCfg) {
		c.discValue = v
		c.hasDiscValue = true
	}
}

// Define builds a model type: it linearizes the ancestor chain
// left-to-right depth-first, merges field descriptors first-wins, and
// performs discriminator registration.
func Define(name string, opts ...DefineOption) (*Type, error) {
	cfg := &defineCfg{}
	for _, opt := range opts {
		opt(cfg)
	}
	t := &Type{
		name:    name,
		parents: cfg.parents,
		own:     cfg.fields,
		table:   map[string]*field.Descriptor{},
		byWire:  map[string]*field.Descriptor{},
		subs:    map[string]*Type{},
	}
	seen := map[string]bool{}
	for _, d := range t.own {
		if seen[d.Attr] {
			return nil, fmt.Errorf("type %s: duplicate field %q", name, d.Attr)
		}
		seen[d.Attr] = true
		if d.IsDiscriminator {
			if t.disc != nil {
				return nil, fmt.Errorf("type %s: multiple discriminator fields", name)
			}
			t.disc = d
		}
	}
	t.mro = linearize(t)
	for _, anc := range t.mro {
		for _, d := range anc.own {
			if _, claimed := t.table[d.Attr]; claimed {
				continue
			}
			t.table[d.Attr] = d
			t.order = append(t.order, d)
			if _, claimed := t.byWire[d.Wire]; !claimed {
				t.byWire[d.Wire] = d
			}
		}
	}
	if cfg.hasDiscValue {
		t.discValue = cfg.discValue
		root := discRoot(t.mro[1:])
		if root == nil {
			return nil, fmt.Errorf("type %s: discriminator value %q with no discriminated ancestor", name, cfg.discValue)
		}
		if err := root.register(cfg.discValue, t); err != nil {
			return nil, fmt.Errorf("type %s: %w", name, err)
		}
	}
	return t, nil
}

// MustDefine is Define for static declarations; it panics on error.
func MustDefine(name string, opts ...DefineOption) *Type {
	t, err := Define(name, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// linearize returns the ancestor list in left-to-right, depth-first
// order with the first occurrence of each type kept.
func linearize(t *Type) []*Type {
	var out []*Type
	seen := map[*Type]bool{}
	var walk func(*Type)
	walk = func(x *Type) {
		if seen[x] {
			return
		}
		seen[x] = true
		out = append(out, x)
		for _, p := range x.parents {
			walk(p)
		}
	}
	walk(t)
	return out
}

func discRoot(ancestors []*Type) *Type {
	for _, anc := range ancestors {
		if anc.disc != nil {
			return anc
		}
	}
	return nil
}

func (t *Type) register(value string, sub *Type) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, exists := t.subs[value]; exists {
		return fmt.Errorf("discriminator value %q already registered to %s", value, prev.name)
	}
	t.subs[value] = sub
	return nil
}

// resolve descends to the most derived registered subtype for the
// given raw data.  Unknown discriminator values stop the descent; the
// most specific type resolved so far is returned.
func (t *Type) resolve(rm *raw.Map) *Type {
	if t.disc == nil {
		return t
	}
	v, ok := rm.Get(t.disc.Wire)
	if !ok {
		return t
	}
	s, ok := v.(string)
	if !ok {
		return t
	}
	t.mu.RLock()
	sub := t.subs[s]
	t.mu.RUnlock()
	if sub == nil || sub == t {
		return t
	}
	if debug.Discrim() {
		debug.Logf("resolve %s: %s=%q -> %s\n", t.name, t.disc.Wire, s, sub.name)
	}
	return sub.resolve(rm)
}

func (t *Type) Name() string { return t.name }

// Field returns the merged descriptor for an attribute name.
func (t *Type) Field(attr string) (*field.Descriptor, bool) {
	d, ok := t.table[attr]
	return d, ok
}

// Fields returns the merged descriptors in precedence order.
func (t *Type) Fields() []*field.Descriptor {
	out := make([]*field.Descriptor, len(t.order))
	copy(out, t.order)
	return out
}

func codecFor(ts *field.TypeSpec) codec.Codec {
	switch ts.Kind {
	case field.KindDatetime:
		return codec.Datetime(ts.Format)
	case field.KindDate:
		return codec.Date()
	case field.KindTime:
		return codec.TimeOfDay()
	case field.KindBytes:
		return codec.Bytes(ts.Format)
	case field.KindDecimal:
		return codec.Decimal()
	case field.KindIntString:
		return codec.IntString()
	case field.KindEnum:
		return codec.Enum(ts.Members...)
	default:
		return codec.Passthrough()
	}
}

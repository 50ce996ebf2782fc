// Package field declares per-field wire metadata: names, defaults,
// visibility and codec selection.  Descriptors are immutable after
// declaration and shared across the model types that inherit them.
package field

import "github.com/wiremodel/wiremodel-go/codec"

// Visibility controls whether a field participates in the
// exclude-read-only export.  It has no effect on any other path.
type Visibility int

const (
	Normal Visibility = iota
	ReadOnly
)

// Descriptor is the declared metadata for one model field.
type Descriptor struct {
	// Attr is the attribute name used by the typed view.
	Attr string
	// Wire is the key used in the raw store; defaults to Attr.
	Wire string

	Default    any
	HasDefault bool

	// Required is documentation only: construction never enforces it.
	Required bool

	Visibility      Visibility
	IsDiscriminator bool

	// Type selects the generic codec pair.
	Type *TypeSpec

	// CustomDecode, when set, replaces only the decode half; encode
	// stays the generic one for Type.
	CustomDecode codec.DecodeFunc
}

// Option configures a Descriptor at declaration time.
type Option func(*Descriptor)

// New declares a field.  A field with no default is required (but not
// enforced); a nil typ means an untyped passthrough field.
func New(attr string, typ *TypeSpec, opts ...Option) *Descriptor {
	if typ == nil {
		typ = Any()
	}
	d := &Descriptor{
		Attr:     attr,
		Wire:     attr,
		Type:     typ,
		Required: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.HasDefault {
		d.Required = false
	}
	return d
}

// Wire renames the wire key, for APIs whose JSON names differ from the
// attribute names.
func Wire(name string) Option {
	return func(d *Descriptor) { d.Wire = name }
}

func Default(v any) Option {
	return func(d *Descriptor) {
		d.Default = v
		d.HasDefault = true
	}
}

func Required() Option {
	return func(d *Descriptor) { d.Required = true }
}

func Optional() Option {
	return func(d *Descriptor) { d.Required = false }
}

// AsReadOnly marks the field server-set: it is omitted from an
// exclude-read-only export but remains readable, writable, iterable
// and encodable everywhere else.
func AsReadOnly() Option {
	return func(d *Descriptor) { d.Visibility = ReadOnly }
}

// Discriminator marks the field as the subtype selector of a
// polymorphic family rooted at the declaring type.
func Discriminator() Option {
	return func(d *Descriptor) { d.IsDiscriminator = true }
}

// DecodeWith installs a caller-supplied one-way decode; it need not be
// the inverse of the generic encode for the declared type.
func DecodeWith(fn codec.DecodeFunc) Option {
	return func(d *Descriptor) { d.CustomDecode = fn }
}

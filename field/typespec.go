package field

import "github.com/wiremodel/wiremodel-go/codec"

// Kind identifies the semantic type of a field's wire value.
type Kind int

const (
	KindAny Kind = iota
	KindDatetime
	KindDate
	KindTime
	KindBytes
	KindDecimal
	KindIntString
	KindEnum
	KindModel
	KindList
	KindMap
)

// ModelType is the slice of a model type definition a descriptor needs
// to hold; the model package supplies the concrete implementation.
type ModelType interface {
	Name() string
}

// TypeSpec describes a field's declared type: a scalar kind with an
// optional format, a nested model type, or a container of either.
type TypeSpec struct {
	Kind    Kind
	Format  codec.Format
	Members []any
	Model   ModelType
	Elem    *TypeSpec
}

func Any() *TypeSpec { return &TypeSpec{Kind: KindAny} }

func Datetime(format ...codec.Format) *TypeSpec {
	ts := &TypeSpec{Kind: KindDatetime, Format: codec.RFC3339}
	if len(format) > 0 {
		ts.Format = format[0]
	}
	return ts
}

func Date() *TypeSpec { return &TypeSpec{Kind: KindDate} }

func TimeOfDay() *TypeSpec { return &TypeSpec{Kind: KindTime} }

func Bytes(format ...codec.Format) *TypeSpec {
	ts := &TypeSpec{Kind: KindBytes, Format: codec.Base64}
	if len(format) > 0 {
		ts.Format = format[0]
	}
	return ts
}

func Decimal() *TypeSpec { return &TypeSpec{Kind: KindDecimal} }

func IntString() *TypeSpec { return &TypeSpec{Kind: KindIntString} }

func Enum(members ...any) *TypeSpec {
	return &TypeSpec{Kind: KindEnum, Members: members}
}

// Model declares a nested dual-view model field.
func Model(t ModelType) *TypeSpec {
	return &TypeSpec{Kind: KindModel, Model: t}
}

// List declares an ordered sequence with a typed element.  Sets and
// fixed tuples share this spec: JSON has a single sequence kind.
func List(elem *TypeSpec) *TypeSpec {
	return &TypeSpec{Kind: KindList, Elem: elem}
}

// MapOf declares a string-keyed mapping with a typed value.
func MapOf(elem *TypeSpec) *TypeSpec {
	return &TypeSpec{Kind: KindMap, Elem: elem}
}

// ContainsModel reports whether the spec reaches a nested model type,
// directly or through containers.  Such fields materialize on first
// read; all others decode fresh per read.
func (ts *TypeSpec) ContainsModel() bool {
	for ts != nil {
		if ts.Kind == KindModel {
			return true
		}
		ts = ts.Elem
	}
	return false
}

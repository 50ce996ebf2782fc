package model

import "errors"

var (
	// ErrAttrNotDeclared marks typed-view access to an attribute name
	// with no field descriptor.  Distinct from an absent field, which
	// reads as nil.
	ErrAttrNotDeclared = errors.New("attribute not declared")

	// ErrConstruction marks an invalid constructor shape: an unknown
	// keyword, or a raw-mapping argument of an unsupported type.
	ErrConstruction = errors.New("invalid model construction")

	// ErrGenericMarshal is returned when a Model is handed to
	// encoding/json instead of the encode package.
	ErrGenericMarshal = errors.New("model is not encoding/json-serializable; use the encode package")
)

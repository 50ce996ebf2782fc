package encode

import "errors"

// ErrUnsupportedType marks a raw-store value the encoder has no JSON
// representation for.
var ErrUnsupportedType = errors.New("unsupported type for JSON encoding")

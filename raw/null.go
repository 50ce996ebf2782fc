package raw

type nullSentinel struct{}

func (nullSentinel) String() string { return "null" }

// Null is the explicit-null sentinel.  Assigning the native absence
// marker (nil) to a model attribute deletes the wire key; assigning
// Null stores an explicit JSON null instead.
var Null nullSentinel

// IsNull reports whether v represents a JSON null: either a stored nil
// value or the Null sentinel.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(nullSentinel)
	return ok
}

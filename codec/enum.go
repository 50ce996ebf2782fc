package codec

import "encoding/json"

// Enum is the codec for literal/enum-like fields.  Decode returns the
// declared member matching the wire value, or the wire value unchanged
// when no member matches: unknown server values are never an error.
func Enum(members ...any) Codec {
	return Codec{
		Decode: func(raw any) (any, error) {
			for _, m := range members {
				if looseEqual(raw, m) {
					return m, nil
				}
			}
			return raw, nil
		},
		Encode: identity,
	}
}

func looseEqual(a, b any) bool {
	if a == b {
		return true
	}
	an, aok := looseNum(a)
	bn, bok := looseNum(b)
	return aok && bok && an == bn
}

func looseNum(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

package raw

import (
	"encoding/json"
	"math"
	"strconv"
)

// Equal reports deep value equality of two raw values.  Wrapped models
// compare as their raw stores, plain Go maps compare as Maps, and key
// order is ignored for objects.  Numbers compare numerically across
// representations (json.Number, int64, float64, ...).
func Equal(a, b any) bool {
	a = unwrap(a)
	b = unwrap(b)
	if a == nil {
		return b == nil
	}
	if b == nil {
		return false
	}

	switch av := a.(type) {
	case *Map:
		bv, ok := b.(*Map)
		if !ok {
			return false
		}
		return mapsEqual(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok {
			return false
		}
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	if an, ok := numVal(a); ok {
		bn, bok := numVal(b)
		return bok && numEqual(an, bn)
	}
	return a == b
}

func unwrap(v any) any {
	switch t := v.(type) {
	case Unwrapper:
		return t.RawMap()
	case nullSentinel:
		return nil
	case map[string]any:
		return FromGoMap(t)
	default:
		return v
	}
}

func mapsEqual(a, b *Map) bool {
	if a.Len() != b.Len() {
		return false
	}
	eq := true
	a.Range(func(k string, av any) bool {
		bv, ok := b.Get(k)
		if !ok || !Equal(av, bv) {
			eq = false
			return false
		}
		return true
	})
	return eq
}

type num struct {
	i     int64
	f     float64
	isInt bool
}

func numVal(v any) (num, bool) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return num{i: i, isInt: true}, true
		}
		if f, err := t.Float64(); err == nil {
			return num{f: f}, true
		}
		return num{}, false
	case int:
		return num{i: int64(t), isInt: true}, true
	case int8:
		return num{i: int64(t), isInt: true}, true
	case int16:
		return num{i: int64(t), isInt: true}, true
	case int32:
		return num{i: int64(t), isInt: true}, true
	case int64:
		return num{i: t, isInt: true}, true
	case uint:
		return num{i: int64(t), isInt: true}, true
	case uint8:
		return num{i: int64(t), isInt: true}, true
	case uint16:
		return num{i: int64(t), isInt: true}, true
	case uint32:
		return num{i: int64(t), isInt: true}, true
	case uint64:
		if t > math.MaxInt64 {
			return num{f: float64(t)}, true
		}
		return num{i: int64(t), isInt: true}, true
	case float32:
		return num{f: float64(t)}, true
	case float64:
		return num{f: t}, true
	case string:
		return num{}, false
	default:
		return num{}, false
	}
}

func numEqual(a, b num) bool {
	if a.isInt && b.isInt {
		return a.i == b.i
	}
	af := a.f
	if a.isInt {
		af = float64(a.i)
	}
	bf := b.f
	if b.isInt {
		bf = float64(b.i)
	}
	return af == bf
}

func formatNum(n num) string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

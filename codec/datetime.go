package codec

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Datetime returns the codec for a datetime field.  The format used to
// declare the field drives both directions: values decode from and
// encode back to the same wire variant.
func Datetime(f Format) Codec {
	switch f {
	case RFC7231:
		return Codec{Decode: decodeRFC7231, Encode: encodeRFC7231}
	case UnixTime:
		return Codec{Decode: decodeUnix, Encode: encodeUnix}
	default:
		return Codec{Decode: decodeRFC3339, Encode: encodeRFC3339}
	}
}

func decodeRFC3339(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: datetime wire value %v (%T)", ErrBadFormat, raw, raw)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, fmt.Errorf("%w: datetime %q: %v", ErrBadFormat, s, err)
	}
	return t, nil
}

func encodeRFC3339(v any) (any, error) {
	if s, ok := wireString(v); ok {
		return s, nil
	}
	t, err := asTime(v)
	if err != nil {
		return nil, err
	}
	return t.Format(time.RFC3339Nano), nil
}

func decodeRFC7231(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: datetime wire value %v (%T)", ErrBadFormat, raw, raw)
	}
	t, err := http.ParseTime(s)
	if err != nil {
		return nil, fmt.Errorf("%w: http-date %q: %v", ErrBadFormat, s, err)
	}
	return t, nil
}

func encodeRFC7231(v any) (any, error) {
	if s, ok := wireString(v); ok {
		return s, nil
	}
	t, err := asTime(v)
	if err != nil {
		return nil, err
	}
	return t.UTC().Format(http.TimeFormat), nil
}

func decodeUnix(raw any) (any, error) {
	switch n := raw.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return time.Unix(i, 0).UTC(), nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: unix timestamp %q", ErrBadFormat, n)
		}
		return time.Unix(0, int64(f*float64(time.Second))).UTC(), nil
	case int:
		return time.Unix(int64(n), 0).UTC(), nil
	case int64:
		return time.Unix(n, 0).UTC(), nil
	case float64:
		return time.Unix(0, int64(n*float64(time.Second))).UTC(), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: unix timestamp %q", ErrBadFormat, n)
		}
		return time.Unix(i, 0).UTC(), nil
	default:
		return nil, fmt.Errorf("%w: unix timestamp %v (%T)", ErrBadFormat, raw, raw)
	}
}

func encodeUnix(v any) (any, error) {
	if n, ok := v.(json.Number); ok {
		return n, nil
	}
	t, err := asTime(v)
	if err != nil {
		return nil, err
	}
	return json.Number(strconv.FormatInt(t.Unix(), 10)), nil
}

// Date is the codec for ISO calendar dates (YYYY-MM-DD).
func Date() Codec {
	return Codec{
		Decode: func(raw any) (any, error) {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: date wire value %v (%T)", ErrBadFormat, raw, raw)
			}
			t, err := time.Parse(time.DateOnly, s)
			if err != nil {
				return nil, fmt.Errorf("%w: date %q: %v", ErrBadFormat, s, err)
			}
			return t, nil
		},
		Encode: func(v any) (any, error) {
			if s, ok := wireString(v); ok {
				return s, nil
			}
			t, err := asTime(v)
			if err != nil {
				return nil, err
			}
			return t.Format(time.DateOnly), nil
		},
	}
}

var timeOfDayLayouts = []string{"15:04:05.999999999", "15:04:05", "15:04"}

// TimeOfDay is the codec for ISO times (HH:MM:SS with optional
// fractional seconds).
func TimeOfDay() Codec {
	return Codec{
		Decode: func(raw any) (any, error) {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: time wire value %v (%T)", ErrBadFormat, raw, raw)
			}
			for _, layout := range timeOfDayLayouts {
				if t, err := time.Parse(layout, s); err == nil {
					return t, nil
				}
			}
			return nil, fmt.Errorf("%w: time %q", ErrBadFormat, s)
		},
		Encode: func(v any) (any, error) {
			if s, ok := wireString(v); ok {
				return s, nil
			}
			t, err := asTime(v)
			if err != nil {
				return nil, err
			}
			return t.Format("15:04:05.999999"), nil
		},
	}
}

func asTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		return *t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: expected time.Time, got %T", ErrBadFormat, v)
	}
}

// wireString lets already-encoded string values (wire-shaped defaults,
// values copied between stores) pass through a time encode unchanged.
func wireString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

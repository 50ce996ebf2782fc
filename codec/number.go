package codec

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Decimal is the codec for arbitrary-precision decimal fields.  Decode
// constructs the decimal from the JSON number's textual form, never
// through a float; encode renders it back as a JSON number preserving
// the declared precision (1.00 stays 1.00).
func Decimal() Codec {
	return Codec{Decode: decodeDecimal, Encode: encodeDecimal}
}

func decodeDecimal(raw any) (any, error) {
	var text string
	switch t := raw.(type) {
	case json.Number:
		text = string(t)
	case string:
		text = t
	case int:
		return apd.New(int64(t), 0), nil
	case int64:
		return apd.New(t, 0), nil
	case float64:
		text = strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return nil, fmt.Errorf("%w: decimal wire value %v (%T)", ErrBadFormat, raw, raw)
	}
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: decimal %q: %v", ErrBadFormat, text, err)
	}
	return d, nil
}

func encodeDecimal(v any) (any, error) {
	switch t := v.(type) {
	case *apd.Decimal:
		return json.Number(t.Text('f')), nil
	case apd.Decimal:
		return json.Number(t.Text('f')), nil
	case json.Number:
		return t, nil
	case string:
		return json.Number(t), nil
	case int:
		return json.Number(strconv.Itoa(t)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	default:
		return nil, fmt.Errorf("%w: expected decimal, got %T", ErrBadFormat, v)
	}
}

// IntString is the codec for integers carried as wire strings.  Decode
// parses the string; text that does not parse passes through
// unchanged.  The wire value stays a string on encode.
func IntString() Codec {
	return Codec{
		Decode: func(raw any) (any, error) {
			switch t := raw.(type) {
			case string:
				if i, err := strconv.ParseInt(t, 10, 64); err == nil {
					return i, nil
				}
				return t, nil
			case json.Number:
				if i, err := t.Int64(); err == nil {
					return i, nil
				}
				return raw, nil
			default:
				return raw, nil
			}
		},
		Encode: func(v any) (any, error) {
			switch t := v.(type) {
			case string:
				return t, nil
			case int:
				return strconv.Itoa(t), nil
			case int32:
				return strconv.FormatInt(int64(t), 10), nil
			case int64:
				return strconv.FormatInt(t, 10), nil
			case json.Number:
				return string(t), nil
			default:
				return fmt.Sprint(v), nil
			}
		},
	}
}

package codec

import (
	"encoding/base64"
	"fmt"
)

// Bytes returns the codec for byte-sequence fields.  Base64 (padded)
// is the default; Base64URL uses the URL-safe alphabet and omits
// padding.  Decode is lenient: wire text that is not valid base64
// passes through unchanged.
func Bytes(f Format) Codec {
	if f == Base64URL {
		return Codec{Decode: decodeBase64URL, Encode: encodeBase64URL}
	}
	return Codec{Decode: decodeBase64, Encode: encodeBase64}
}

func decodeBase64(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return raw, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return raw, nil
	}
	return b, nil
}

func encodeBase64(v any) (any, error) {
	b, s, err := asBytes(v)
	if err != nil || b == nil {
		return s, err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func decodeBase64URL(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return raw, nil
	}
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	if b, err := base64.URLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return raw, nil
}

func encodeBase64URL(v any) (any, error) {
	b, s, err := asBytes(v)
	if err != nil || b == nil {
		return s, err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// asBytes separates byte values from already-encoded wire strings.
func asBytes(v any) ([]byte, any, error) {
	switch t := v.(type) {
	case []byte:
		return t, nil, nil
	case string:
		return nil, t, nil
	default:
		return nil, nil, fmt.Errorf("%w: expected []byte, got %T", ErrBadFormat, v)
	}
}

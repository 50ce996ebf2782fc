// Package codec maps semantic wire types to decode/encode function
// pairs.  Decode converts a raw JSON-safe value to its domain value;
// Encode converts a domain value back to its wire representation.  The
// two halves are independent: a field may carry a custom one-way
// decode while keeping the generic encode for its declared type.
package codec

// DecodeFunc converts a raw wire value into a domain value.
type DecodeFunc func(raw any) (any, error)

// EncodeFunc converts a domain value into its wire representation.
type EncodeFunc func(v any) (any, error)

// Codec pairs the two directions for one semantic type and format.
type Codec struct {
	Decode DecodeFunc
	Encode EncodeFunc
}

// Format selects a wire format variant for a semantic type.
type Format string

const (
	// RFC3339 is the default datetime format.
	RFC3339 Format = "rfc3339"
	// RFC7231 is the HTTP-date datetime format.
	RFC7231 Format = "rfc7231"
	// UnixTime renders datetimes as seconds since the epoch.
	UnixTime Format = "unix-timestamp"

	// Base64 is standard base64 with padding, the default bytes format.
	Base64 Format = "base64"
	// Base64URL is the URL-safe alphabet without padding.
	Base64URL Format = "base64url"
)

func identity(v any) (any, error) { return v, nil }

// Passthrough is the codec for untyped fields: both directions are the
// identity.
func Passthrough() Codec {
	return Codec{Decode: identity, Encode: identity}
}

package encode

// MustJSON is JSON as a string, panicking on error; for tests and
// diagnostics.
func MustJSON(v any, opts ...Option) string {
	d, err := JSON(v, opts...)
	if err != nil {
		panic(err)
	}
	return string(d)
}

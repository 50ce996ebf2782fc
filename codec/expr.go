package codec

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// ExprDecoder compiles src into a one-way decode function.  The wire
// value is bound as `raw` in the expression environment:
//
//	dec, _ := codec.ExprDecoder(`upper(raw)`)
//
// The compiled program replaces only the decode half of a field's
// codec; encode stays generic.
func ExprDecoder(src string) (DecodeFunc, error) {
	prog, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile decode expression %q: %w", src, err)
	}
	return func(raw any) (any, error) {
		return expr.Run(prog, map[string]any{"raw": raw})
	}, nil
}

// MustExprDecoder is ExprDecoder for static declarations; it panics on
// a compile error.
func MustExprDecoder(src string) DecodeFunc {
	dec, err := ExprDecoder(src)
	if err != nil {
		panic(err)
	}
	return dec
}

// Package debug gates diagnostic logging behind environment flags.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Decode      bool
	Materialize bool
	Discrim     bool
	Patch       bool
	Diff        bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("WIREMODEL_DEBUG_DECODE")
	d.Materialize = boolEnv("WIREMODEL_DEBUG_MATERIALIZE")
	d.Discrim = boolEnv("WIREMODEL_DEBUG_DISCRIM")
	d.Patch = boolEnv("WIREMODEL_DEBUG_PATCH")
	d.Diff = boolEnv("WIREMODEL_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Materialize() bool {
	return d.Materialize
}
func Discrim() bool {
	return d.Discrim
}
func Patch() bool {
	return d.Patch
}
func Diff() bool {
	return d.Diff
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}

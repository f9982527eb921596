// Package debug provides environment-gated debug switches for the
// conformance checker and its tooling.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Check   bool
	Resolve bool
	Suite   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Check = boolEnv("CONFORM_DEBUG_CHECK")
	d.Resolve = boolEnv("CONFORM_DEBUG_RESOLVE")
	d.Suite = boolEnv("CONFORM_DEBUG_SUITE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Check() bool {
	return d.Check
}
func Resolve() bool {
	return d.Resolve
}
func Suite() bool {
	return d.Suite
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
	os.Stderr.Write([]byte{'\n'})
}

//go:build !release

// Package assert checks internal invariants. Outside release builds a failed check panics with the
// formatted message; release builds compile the checks away.
package assert

import "fmt"

func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic(fmt.Sprintf("invariant violated: "+format, args...))
	}
}

//go:build !debug

// Package debug provides assertions that are compiled in with the debug build
// tag and are no-ops otherwise.
//
// The fault path calls Assert with interrupts disabled. A failing assertion
// there panics into the runtime's own fault output, which is still more
// useful than a corrupted record.
package debug

// Guard assertions that need more than a comparison with `if debug.Enabled
// {...}`, otherwise they are still evaluated in release builds.
const Enabled = false

// Assert panics if b is false.
//
//go:nosplit
func Assert(b bool, message string) {}

// AssertErrNil panics if err is not nil.
func AssertErrNil(err error) {}

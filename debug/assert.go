//go:build debug

package debug

// Guard assertions that need more than a comparison with `if debug.Enabled
// {...}`, otherwise they are still evaluated in release builds.
const Enabled = true

//go:nosplit
func Assert(b bool, message string) {
	if !b {
		panic(message)
	}
}

func AssertErrNil(err error) {
	if err != nil {
		panic(err)
	}
}

package machine

import (
	"sync/atomic"

	"github.com/clktmr/faultcore/exc"
)

// ResetOnFault makes a fault reset the system after it was recorded. The
// system halts otherwise, which keeps the output readable for a debugger.
var ResetOnFault atomic.Bool

type terminator struct {
	reset func()
}

//go:nosplit
func (t terminator) Terminate(v exc.Vector, ctx exc.Context) {
	if ResetOnFault.Load() {
		t.reset()
	}
}

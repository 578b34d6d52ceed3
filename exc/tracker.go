package exc

import (
	"sync/atomic"

	"github.com/clktmr/faultcore/debug"
)

// Tracker records the interrupt and fault nesting of the CPU. It's owned by a
// Core and consulted by the scheduler, which must not switch tasks while
// InterruptDepth is nonzero.
//
// The interrupt depth is only changed by interrupt entry and exit code, the
// exception depth only by the fault entry. Both run with the interrupted
// context unable to preempt them, so no lock is taken.
type Tracker struct {
	intDepth atomic.Uint32
	excDepth atomic.Uint32
	started  atomic.Bool
}

// Reset puts the tracker into its boot state: no interrupt active, no fault
// being handled, scheduler not started.
func (t *Tracker) Reset() {
	t.intDepth.Store(0)
	t.excDepth.Store(0)
	t.started.Store(false)
}

// EnterInterrupt must be called by every hardware interrupt handler before
// doing anything else. It returns the new depth.
//
//go:nosplit
func (t *Tracker) EnterInterrupt() uint32 {
	return t.intDepth.Add(1)
}

// ExitInterrupt must be called by every hardware interrupt handler right
// before returning. It returns the new depth.
//
//go:nosplit
func (t *Tracker) ExitInterrupt() uint32 {
	debug.Assert(t.intDepth.Load() != 0, "interrupt exit without entry")
	return t.intDepth.Add(^uint32(0))
}

// TaskStarted is called by the scheduler when it dispatches the first task.
// Faults before that are reported as PhaseInit.
func (t *Tracker) TaskStarted() {
	t.started.Store(true)
}

// InterruptDepth returns the number of nested hardware interrupt handlers.
//
//go:nosplit
func (t *Tracker) InterruptDepth() uint32 {
	return t.intDepth.Load()
}

// InHWI reports whether a hardware interrupt handler is active.
//
//go:nosplit
func (t *Tracker) InHWI() bool {
	return t.intDepth.Load() != 0
}

// ExceptionDepth returns the number of faults currently being handled.
//
//go:nosplit
func (t *Tracker) ExceptionDepth() uint32 {
	return t.excDepth.Load()
}

// Phase derives the current execution context.
//
//go:nosplit
func (t *Tracker) Phase() Phase {
	switch {
	case !t.started.Load():
		return PhaseInit
	case t.intDepth.Load() != 0:
		return PhaseHWI
	}
	return PhaseTask
}

// enterException counts a fault entry and returns the new depth. There is
// no matching exit, a handled fault never returns.
//
//go:nosplit
func (t *Tracker) enterException() uint32 {
	return t.excDepth.Add(1)
}

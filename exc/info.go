package exc

// ExcInfo describes one fault. It's built once in the fault path and not
// modified afterwards.
type ExcInfo struct {
	Phase     Phase
	Cause     Cause
	FaultAddr uint32 // only valid with FlagFaultAddrValid
	ThreadID  uint32 // NoThread unless Phase is PhaseTask
	NestCount uint16
	Flags     Flag
	Vector    Vector

	// Context references the register snapshot on the fault handler's
	// stack. It's nil for faults reported by software.
	Context Context
}

// AddrValid reports whether FaultAddr holds the faulting data address.
func (e *ExcInfo) AddrValid() bool {
	return e.Flags&FlagFaultAddrValid != 0
}

// TaskSource is implemented by the scheduler.
type TaskSource interface {
	// CurrentTask returns the identifier of the running task.
	CurrentTask() uint32
}

// MakeInfo assembles an ExcInfo. The task identifier is replaced by NoThread
// unless the fault interrupted a task.
//
//go:nosplit
func MakeInfo(v Vector, c Classification, phase Phase, nest uint32, task uint32, ctx Context) (e ExcInfo) {
	e.Phase = phase
	e.Cause = c.Cause
	e.Vector = v
	e.NestCount = uint16(nest)
	e.Context = ctx

	e.FaultAddr = ImpreciseAddr
	if c.AddrValid {
		e.FaultAddr = c.Addr
		e.Flags |= FlagFaultAddrValid
	}
	if c.Cause == CauseBusImprecise {
		e.Flags |= FlagImprecise
	}

	e.ThreadID = NoThread
	switch phase {
	case PhaseTask:
		e.ThreadID = task
	case PhaseHWI:
		e.Flags |= FlagInHWI
	}

	if ctx == nil || !ctx.HasFloat() {
		e.Flags |= FlagNoFloat
	}
	return
}

// Package exc is the fault handling core for ARMv7-M targets. It captures the
// register state at the moment of a hardware exception, classifies the cause,
// determines the interrupted execution context, records the result and stops
// the system.
//
// Every fault is fatal to the current boot. A Terminator can be installed to
// run a last action, e.g. requesting a reset, but control never returns to the
// faulting context.
//
// All numeric values in this file are part of the persisted record format and
// must not change.
package exc

// Vector is an ARMv7-M exception number.
type Vector uint8

const (
	VectorSoftware   Vector = 0 // reported by kernel code, not by hardware
	VectorNMI        Vector = 2
	VectorHardFault  Vector = 3
	VectorMemManage  Vector = 4
	VectorBusFault   Vector = 5
	VectorUsageFault Vector = 6
	VectorSVCall     Vector = 11
	VectorDebugMon   Vector = 12

	vectorCount = 16
)

var vectorNames = [vectorCount]string{
	VectorSoftware:   "Software",
	VectorNMI:        "NMI",
	VectorHardFault:  "HardFault",
	VectorMemManage:  "MemManage",
	VectorBusFault:   "BusFault",
	VectorUsageFault: "UsageFault",
	VectorSVCall:     "SVCall",
	VectorDebugMon:   "DebugMonitor",
}

func (v Vector) String() string {
	if v >= vectorCount || vectorNames[v] == "" {
		return "Reserved"
	}
	return vectorNames[v]
}

// Phase is the execution context a fault interrupted.
type Phase uint16

const (
	PhaseInit Phase = 0 // scheduler not started yet
	PhaseTask Phase = 1 // a task was running
	PhaseHWI  Phase = 2 // a hardware interrupt handler was running
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseTask:
		return "task"
	case PhaseHWI:
		return "hwi"
	}
	return "unknown"
}

// Cause is the root cause assigned to a fault.
type Cause uint16

const (
	CauseNone Cause = 0

	// BusFault family
	CauseBusStacking   Cause = 1
	CauseBusUnstacking Cause = 2
	CauseBusImprecise  Cause = 3
	CauseBusPrecise    Cause = 4
	CauseBusInstr      Cause = 5

	// MemManage family
	CauseMemStacking   Cause = 6
	CauseMemUnstacking Cause = 7
	CauseMemData       Cause = 8
	CauseMemInstr      Cause = 9

	// UsageFault family
	CauseDivByZero    Cause = 10
	CauseUnaligned    Cause = 11
	CauseNoCoproc     Cause = 12
	CauseInvalidPC    Cause = 13
	CauseInvalidState Cause = 14
	CauseUndefInstr   Cause = 15

	CauseNMI         Cause = 16
	CauseHardFault   Cause = 17
	CauseTaskExit    Cause = 18
	CauseFatalError  Cause = 19
	CauseDebugEvent  Cause = 20
	CauseVectorTable Cause = 21

	causeCount = 22
)

var causeNames = [causeCount]string{
	CauseNone:          "none",
	CauseBusStacking:   "bus fault: stacking error",
	CauseBusUnstacking: "bus fault: unstacking error",
	CauseBusImprecise:  "bus fault: imprecise data access",
	CauseBusPrecise:    "bus fault: precise data access",
	CauseBusInstr:      "bus fault: instruction prefetch",
	CauseMemStacking:   "memory fault: stacking error",
	CauseMemUnstacking: "memory fault: unstacking error",
	CauseMemData:       "memory fault: data access violation",
	CauseMemInstr:      "memory fault: instruction access violation",
	CauseDivByZero:     "usage fault: divide by zero",
	CauseUnaligned:     "usage fault: unaligned access",
	CauseNoCoproc:      "usage fault: no coprocessor",
	CauseInvalidPC:     "usage fault: invalid pc load",
	CauseInvalidState:  "usage fault: invalid state",
	CauseUndefInstr:    "usage fault: undefined instruction",
	CauseNMI:           "non-maskable interrupt",
	CauseHardFault:     "hard fault",
	CauseTaskExit:      "task exited",
	CauseFatalError:    "fatal error",
	CauseDebugEvent:    "debug event",
	CauseVectorTable:   "vector table read",
}

func (c Cause) String() string {
	if c >= causeCount {
		return "unknown"
	}
	return causeNames[c]
}

// Flag bits of an ExcInfo. FlagNoFloat is also set by the entry trampolines
// in the exception type they pass to Dispatch.
type Flag uint32

const (
	FlagFaultAddrValid Flag = 0x01
	FlagInHWI          Flag = 0x02
	FlagImprecise      Flag = 0x04
	FlagNoFloat        Flag = 0x1000_0000
)

const (
	// ImpreciseAddr is reported instead of a fault address whenever the
	// hardware didn't latch one.
	ImpreciseAddr uint32 = 0xabab_abab

	// NoThread is reported as thread identifier if no task was
	// interrupted.
	NoThread uint32 = 0xffff_ffff

	// MaxNestDepth is the default number of faults that may be handled
	// at the same time. A fault beyond this depth halts immediately.
	MaxNestDepth = 1

	// SVCTaskExit is the supervisor call number used by the scheduler to
	// report a task that returned without cleaning up.
	SVCTaskExit = 1
)

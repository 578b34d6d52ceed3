package exc

import "github.com/clktmr/faultcore/scb"

// Status is the fault status latched by the hardware when an exception was
// taken.
type Status struct {
	CFSR  scb.CFSR
	HFSR  scb.HFSR
	MMFAR uint32
	BFAR  uint32

	// SVC is the immediate of the supervisor call instruction, only
	// meaningful for VectorSVCall.
	SVC uint8
}

// ReadStatus reads the fault status registers. For vectors without
// configurable cause the registers aren't touched.
//
//go:nosplit
func ReadStatus(regs scb.Registers, v Vector) (st Status) {
	switch v {
	case VectorHardFault, VectorMemManage, VectorBusFault, VectorUsageFault:
		st.CFSR = regs.CFSR()
		st.HFSR = regs.HFSR()
		st.MMFAR = regs.MMFAR()
		st.BFAR = regs.BFAR()
	}
	return
}

// Classification is the result of Classify.
type Classification struct {
	Cause Cause

	// Addr is the faulting data address if AddrValid, otherwise
	// ImpreciseAddr.
	Addr      uint32
	AddrValid bool
}

type faultBit struct {
	bit   scb.CFSR
	cause Cause
}

// Configurable fault status bits in the order they are tested. Stacking
// errors leave the snapshot itself unreliable and win over everything, an
// imprecise bus error is the weakest evidence and only reported if nothing
// else is set.
var faultOrder = [...]faultBit{
	{scb.MSTKERR, CauseMemStacking},
	{scb.STKERR, CauseBusStacking},
	{scb.MUNSTKERR, CauseMemUnstacking},
	{scb.UNSTKERR, CauseBusUnstacking},
	{scb.DACCVIOL, CauseMemData},
	{scb.IACCVIOL, CauseMemInstr},
	{scb.PRECISERR, CauseBusPrecise},
	{scb.IBUSERR, CauseBusInstr},
	{scb.DIVBYZERO, CauseDivByZero},
	{scb.UNALIGNED, CauseUnaligned},
	{scb.NOCP, CauseNoCoproc},
	{scb.INVPC, CauseInvalidPC},
	{scb.INVSTATE, CauseInvalidState},
	{scb.UNDEFINSTR, CauseUndefInstr},
	{scb.IMPRECISERR, CauseBusImprecise},
}

// Classify maps an exception and its latched fault status to exactly one
// cause. It has no side effects.
//
//go:nosplit
func Classify(v Vector, st Status) (c Classification) {
	c.Addr = ImpreciseAddr

	switch v {
	case VectorNMI:
		c.Cause = CauseNMI
	case VectorHardFault:
		switch {
		case st.HFSR&scb.VECTTBL != 0:
			c.Cause = CauseVectorTable
		case st.HFSR&scb.FORCED != 0:
			classifyCFSR(&c, st, scb.MMFSRMask|scb.BFSRMask|scb.UFSRMask)
		case st.HFSR&scb.DEBUGEVT != 0:
			c.Cause = CauseDebugEvent
		default:
			c.Cause = CauseHardFault
		}
	case VectorMemManage:
		classifyCFSR(&c, st, scb.MMFSRMask)
	case VectorBusFault:
		classifyCFSR(&c, st, scb.BFSRMask)
	case VectorUsageFault:
		classifyCFSR(&c, st, scb.UFSRMask)
	case VectorSVCall:
		if st.SVC == SVCTaskExit {
			c.Cause = CauseTaskExit
		} else {
			c.Cause = CauseFatalError
		}
	case VectorDebugMon:
		c.Cause = CauseDebugEvent
	default:
		c.Cause = CauseHardFault
	}
	return
}

//go:nosplit
func classifyCFSR(c *Classification, st Status, mask scb.CFSR) {
	c.Cause = CauseHardFault
	cfsr := st.CFSR & mask
	for _, fb := range faultOrder {
		if cfsr&fb.bit != 0 {
			c.Cause = fb.cause
			break
		}
	}

	switch c.Cause {
	case CauseMemStacking, CauseMemUnstacking, CauseMemData, CauseMemInstr:
		if st.CFSR&scb.MMARVALID != 0 {
			c.Addr, c.AddrValid = st.MMFAR, true
		}
	case CauseBusStacking, CauseBusUnstacking, CauseBusPrecise, CauseBusInstr:
		if st.CFSR&scb.BFARVALID != 0 {
			c.Addr, c.AddrValid = st.BFAR, true
		}
	}
	// An imprecise bus error never latches BFAR, the sentinel stays.
}

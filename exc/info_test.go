package exc

import "testing"

func TestMakeInfo(t *testing.T) {
	precise := Classification{CauseBusPrecise, 0x4000_0000, true}
	imprecise := Classification{CauseBusImprecise, ImpreciseAddr, false}

	tests := map[string]struct {
		c      Classification
		phase  Phase
		ctx    Context
		addr   uint32
		thread uint32
		flags  Flag
	}{
		"task": {
			precise, PhaseTask, new(FPFrame),
			0x4000_0000, 7, FlagFaultAddrValid,
		},
		"interrupt": {
			precise, PhaseHWI, new(Frame),
			0x4000_0000, NoThread, FlagFaultAddrValid | FlagInHWI | FlagNoFloat,
		},
		"init": {
			imprecise, PhaseInit, new(Frame),
			ImpreciseAddr, NoThread, FlagImprecise | FlagNoFloat,
		},
		"no snapshot": {
			Classification{CauseTaskExit, ImpreciseAddr, false}, PhaseTask, nil,
			ImpreciseAddr, 7, FlagNoFloat,
		},
		"data access": {
			Classification{CauseMemData, 0x10, true}, PhaseTask, new(FPFrame),
			0x10, 7, FlagFaultAddrValid,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e := MakeInfo(VectorBusFault, tc.c, tc.phase, 1, 7, tc.ctx)
			if e.FaultAddr != tc.addr {
				t.Fatalf("expected address %#x, got %#x", tc.addr, e.FaultAddr)
			}
			if e.ThreadID != tc.thread {
				t.Fatalf("expected thread %#x, got %#x", tc.thread, e.ThreadID)
			}
			if e.Flags != tc.flags {
				t.Fatalf("expected flags %#x, got %#x", tc.flags, e.Flags)
			}
			if e.Cause != tc.c.Cause || e.Phase != tc.phase || e.NestCount != 1 || e.Vector != VectorBusFault {
				t.Fatalf("unexpected %+v", e)
			}
		})
	}
}

func TestConstants(t *testing.T) {
	tests := map[string]struct{ got, want uint32 }{
		"phase init":     {uint32(PhaseInit), 0},
		"phase task":     {uint32(PhaseTask), 1},
		"phase hwi":      {uint32(PhaseHWI), 2},
		"bus stacking":   {uint32(CauseBusStacking), 1},
		"mem instr":      {uint32(CauseMemInstr), 9},
		"div by zero":    {uint32(CauseDivByZero), 10},
		"undef instr":    {uint32(CauseUndefInstr), 15},
		"nmi":            {uint32(CauseNMI), 16},
		"vector table":   {uint32(CauseVectorTable), 21},
		"addr valid":     {uint32(FlagFaultAddrValid), 0x01},
		"in hwi":         {uint32(FlagInHWI), 0x02},
		"no float":       {uint32(FlagNoFloat), 0x1000_0000},
		"imprecise addr": {ImpreciseAddr, 0xabab_abab},
		"no thread":      {NoThread, 0xffff_ffff},
		"max nest depth": {MaxNestDepth, 1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("expected %#x, got %#x", tc.want, tc.got)
			}
		})
	}
	for c := CauseNone; c < causeCount; c++ {
		if causeNames[c] == "" {
			t.Fatalf("expected name for cause %d", c)
		}
	}
}

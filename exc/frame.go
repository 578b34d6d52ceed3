package exc

import "unsafe"

// Regs is the integer part of a register snapshot. R4 to PRIMASK are pushed
// by the entry trampoline, SP holds the stack pointer before exception entry
// and R0 to XPSR are the hardware stacked frame.
//
// The field order is the stacking order. Offsets into the snapshot are taken
// from the field tables below, never recomputed.
type Regs struct {
	R4      uint32
	R5      uint32
	R6      uint32
	R7      uint32
	R8      uint32
	R9      uint32
	R10     uint32
	R11     uint32
	PRIMASK uint32

	SP   uint32
	R0   uint32
	R1   uint32
	R2   uint32
	R3   uint32
	R12  uint32
	LR   uint32
	PC   uint32
	XPSR uint32
}

// Frame is the register snapshot of a fault taken without an active floating
// point context.
type Frame struct {
	Regs
}

// FPFrame is the register snapshot of a fault taken with an active floating
// point context. The callee saved registers S16-S31 are pushed below the
// integer registers, the caller saved S0-S15 and FPSCR are stacked by hardware
// above them.
type FPFrame struct {
	S16 [16]uint32 // S16-S31
	Regs
	S0       [16]uint32 // S0-S15
	FPSCR    uint32
	Reserved uint32
}

// Context is a register snapshot in one of its two layouts.
type Context interface {
	// Registers returns the integer registers.
	Registers() *Regs

	// HasFloat reports whether the snapshot holds floating point
	// registers, i.e. whether it's an *FPFrame.
	HasFloat() bool

	// Fields describes the snapshot's words in memory order.
	Fields() []Field

	// Words returns the snapshot as it is laid out in memory.
	Words() []uint32
}

// Field names a word of a register snapshot.
type Field struct {
	Name   string
	Offset uintptr
}

const (
	FrameWords   = int(unsafe.Sizeof(Frame{}) / 4)
	FPFrameWords = int(unsafe.Sizeof(FPFrame{}) / 4)
)

func (f *Frame) Registers() *Regs { return &f.Regs }
func (f *Frame) HasFloat() bool   { return false }
func (f *Frame) Fields() []Field  { return frameFields[:] }
func (f *Frame) Words() []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(f)), FrameWords)
}

func (f *FPFrame) Registers() *Regs { return &f.Regs }
func (f *FPFrame) HasFloat() bool   { return true }
func (f *FPFrame) Fields() []Field  { return fpFrameFields[:] }
func (f *FPFrame) Words() []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(f)), FPFrameWords)
}

// FrameAt interprets the memory at p as a snapshot pushed by the entry
// trampoline.
//
//go:nosplit
func FrameAt(p unsafe.Pointer, float bool) Context {
	if float {
		return (*FPFrame)(p)
	}
	return (*Frame)(p)
}

var frameFields = [FrameWords]Field{
	{"R4", unsafe.Offsetof(Frame{}.R4)},
	{"R5", unsafe.Offsetof(Frame{}.R5)},
	{"R6", unsafe.Offsetof(Frame{}.R6)},
	{"R7", unsafe.Offsetof(Frame{}.R7)},
	{"R8", unsafe.Offsetof(Frame{}.R8)},
	{"R9", unsafe.Offsetof(Frame{}.R9)},
	{"R10", unsafe.Offsetof(Frame{}.R10)},
	{"R11", unsafe.Offsetof(Frame{}.R11)},
	{"PRIMASK", unsafe.Offsetof(Frame{}.PRIMASK)},
	{"SP", unsafe.Offsetof(Frame{}.SP)},
	{"R0", unsafe.Offsetof(Frame{}.R0)},
	{"R1", unsafe.Offsetof(Frame{}.R1)},
	{"R2", unsafe.Offsetof(Frame{}.R2)},
	{"R3", unsafe.Offsetof(Frame{}.R3)},
	{"R12", unsafe.Offsetof(Frame{}.R12)},
	{"LR", unsafe.Offsetof(Frame{}.LR)},
	{"PC", unsafe.Offsetof(Frame{}.PC)},
	{"XPSR", unsafe.Offsetof(Frame{}.XPSR)},
}

var fpFrameFields = [FPFrameWords]Field{
	{"S16", unsafe.Offsetof(FPFrame{}.S16) + 0*4},
	{"S17", unsafe.Offsetof(FPFrame{}.S16) + 1*4},
	{"S18", unsafe.Offsetof(FPFrame{}.S16) + 2*4},
	{"S19", unsafe.Offsetof(FPFrame{}.S16) + 3*4},
	{"S20", unsafe.Offsetof(FPFrame{}.S16) + 4*4},
	{"S21", unsafe.Offsetof(FPFrame{}.S16) + 5*4},
	{"S22", unsafe.Offsetof(FPFrame{}.S16) + 6*4},
	{"S23", unsafe.Offsetof(FPFrame{}.S16) + 7*4},
	{"S24", unsafe.Offsetof(FPFrame{}.S16) + 8*4},
	{"S25", unsafe.Offsetof(FPFrame{}.S16) + 9*4},
	{"S26", unsafe.Offsetof(FPFrame{}.S16) + 10*4},
	{"S27", unsafe.Offsetof(FPFrame{}.S16) + 11*4},
	{"S28", unsafe.Offsetof(FPFrame{}.S16) + 12*4},
	{"S29", unsafe.Offsetof(FPFrame{}.S16) + 13*4},
	{"S30", unsafe.Offsetof(FPFrame{}.S16) + 14*4},
	{"S31", unsafe.Offsetof(FPFrame{}.S16) + 15*4},
	{"R4", unsafe.Offsetof(FPFrame{}.R4)},
	{"R5", unsafe.Offsetof(FPFrame{}.R5)},
	{"R6", unsafe.Offsetof(FPFrame{}.R6)},
	{"R7", unsafe.Offsetof(FPFrame{}.R7)},
	{"R8", unsafe.Offsetof(FPFrame{}.R8)},
	{"R9", unsafe.Offsetof(FPFrame{}.R9)},
	{"R10", unsafe.Offsetof(FPFrame{}.R10)},
	{"R11", unsafe.Offsetof(FPFrame{}.R11)},
	{"PRIMASK", unsafe.Offsetof(FPFrame{}.PRIMASK)},
	{"SP", unsafe.Offsetof(FPFrame{}.SP)},
	{"R0", unsafe.Offsetof(FPFrame{}.R0)},
	{"R1", unsafe.Offsetof(FPFrame{}.R1)},
	{"R2", unsafe.Offsetof(FPFrame{}.R2)},
	{"R3", unsafe.Offsetof(FPFrame{}.R3)},
	{"R12", unsafe.Offsetof(FPFrame{}.R12)},
	{"LR", unsafe.Offsetof(FPFrame{}.LR)},
	{"PC", unsafe.Offsetof(FPFrame{}.PC)},
	{"XPSR", unsafe.Offsetof(FPFrame{}.XPSR)},
	{"S0", unsafe.Offsetof(FPFrame{}.S0) + 0*4},
	{"S1", unsafe.Offsetof(FPFrame{}.S0) + 1*4},
	{"S2", unsafe.Offsetof(FPFrame{}.S0) + 2*4},
	{"S3", unsafe.Offsetof(FPFrame{}.S0) + 3*4},
	{"S4", unsafe.Offsetof(FPFrame{}.S0) + 4*4},
	{"S5", unsafe.Offsetof(FPFrame{}.S0) + 5*4},
	{"S6", unsafe.Offsetof(FPFrame{}.S0) + 6*4},
	{"S7", unsafe.Offsetof(FPFrame{}.S0) + 7*4},
	{"S8", unsafe.Offsetof(FPFrame{}.S0) + 8*4},
	{"S9", unsafe.Offsetof(FPFrame{}.S0) + 9*4},
	{"S10", unsafe.Offsetof(FPFrame{}.S0) + 10*4},
	{"S11", unsafe.Offsetof(FPFrame{}.S0) + 11*4},
	{"S12", unsafe.Offsetof(FPFrame{}.S0) + 12*4},
	{"S13", unsafe.Offsetof(FPFrame{}.S0) + 13*4},
	{"S14", unsafe.Offsetof(FPFrame{}.S0) + 14*4},
	{"S15", unsafe.Offsetof(FPFrame{}.S0) + 15*4},
	{"FPSCR", unsafe.Offsetof(FPFrame{}.FPSCR)},
	{"RESERVED", unsafe.Offsetof(FPFrame{}.Reserved)},
}

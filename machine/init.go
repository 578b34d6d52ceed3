//go:build noos && thumb

package machine

import (
	"unsafe"

	"github.com/clktmr/faultcore/debug"
	"github.com/clktmr/faultcore/exc"
	"github.com/clktmr/faultcore/scb"
)

func init() {
	regs := scb.Hardware()
	c := exc.Init(exc.Config{
		Output:      DefaultWriter,
		HexRecord:   true,
		Registers:   regs,
		Terminator:  terminator{reset: scb.SystemReset},
		TrapDivZero: true,
	})

	// Start from the linked vector table, Setup only replaces the fault
	// entries.
	table := exc.MakeTable(VectorTableSize)
	linked := unsafe.Slice((*uint32)(unsafe.Pointer(uintptr(regs.VTOR()))), len(table))
	copy(table, linked)
	debug.AssertErrNil(c.Setup(table))

	// The scheduler is running by the time package initializers are.
	c.Tracker().TaskStarted()
}

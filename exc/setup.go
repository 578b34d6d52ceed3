package exc

import (
	"errors"
	"unsafe"

	"github.com/clktmr/faultcore/scb"
)

var (
	ErrTableSize  = errors.New("exc: vector table size must be a power of two of at least 128 bytes")
	ErrTableAlign = errors.New("exc: vector table not aligned to its size")
	ErrNoRegs     = errors.New("exc: no system control block")
)

const minTableSize = 128

// Addresses of the entry trampolines, indexed by vector. Zero where the core
// doesn't install an entry or no trampolines exist for the target.
var vectorEntries [vectorCount]uint32

// MakeTable allocates a vector table of size bytes that satisfies the VTOR
// alignment rules. It should be filled with the current vectors before
// passing it to Setup.
func MakeTable(size int) []uint32 {
	n := size / 4
	buf := make([]uint32, n+n-1)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	shift := (uintptr(size) - addr%uintptr(size)) % uintptr(size) / 4
	return buf[shift : shift+uintptr(n)]
}

// Setup installs the fault entry points in table, relocates the vector table
// to it and enables the configurable faults and traps. The table's size in
// bytes must be a power of two of at least 128 bytes and the table must be
// aligned to it.
func (c *Core) Setup(table []uint32) error {
	regs := c.cfg.Registers
	if regs == nil {
		return ErrNoRegs
	}
	size := len(table) * 4
	if size < minTableSize || size&(size-1) != 0 {
		return ErrTableSize
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(table)))
	if addr&uintptr(size-1) != 0 {
		return ErrTableAlign
	}

	for v, entry := range vectorEntries {
		if entry != 0 {
			table[v] = entry | 1 // Thumb state
		}
	}
	c.table = table
	regs.SetVTOR(uint32(addr))

	ccr := regs.CCR() &^ (scb.DIV_0_TRP | scb.UNALIGN_TRP)
	if c.cfg.TrapDivZero {
		ccr |= scb.DIV_0_TRP
	}
	if c.cfg.TrapUnaligned {
		ccr |= scb.UNALIGN_TRP
	}
	regs.SetCCR(ccr)
	regs.SetSHCSR(regs.SHCSR() | scb.MEMFAULTENA | scb.BUSFAULTENA | scb.USGFAULTENA)

	return nil
}

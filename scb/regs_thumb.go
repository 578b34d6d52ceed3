//go:build noos && thumb

package scb

import (
	"embedded/mmio"
	"encoding/binary"
	"unsafe"
)

var regs *registers = (*registers)(unsafe.Pointer(BaseAddr))

type registers struct {
	cpuid mmio.U32
	icsr  mmio.U32
	vtor  mmio.U32
	aircr mmio.U32
	scr   mmio.U32
	ccr   mmio.R32[CCR]
	shpr  [3]mmio.U32
	shcsr mmio.R32[SHCSR]
	cfsr  mmio.R32[CFSR]
	hfsr  mmio.R32[HFSR]
	dfsr  mmio.U32
	mmfar mmio.U32
	bfar  mmio.U32
	afsr  mmio.U32
}

type hardware struct{}

// Hardware returns the memory mapped System Control Block of the running
// CPU.
func Hardware() Registers { return hardware{} }

//go:nosplit
func (hardware) CFSR() CFSR { return regs.cfsr.Load() }

//go:nosplit
func (hardware) HFSR() HFSR { return regs.hfsr.Load() }

//go:nosplit
func (hardware) MMFAR() uint32 { return regs.mmfar.Load() }

//go:nosplit
func (hardware) BFAR() uint32 { return regs.bfar.Load() }

//go:nosplit
func (hardware) SHCSR() SHCSR { return regs.shcsr.Load() }

func (hardware) SetSHCSR(v SHCSR) { regs.shcsr.Store(v) }

//go:nosplit
func (hardware) CCR() CCR { return regs.ccr.Load() }

func (hardware) SetCCR(v CCR) { regs.ccr.Store(v) }

func (hardware) VTOR() uint32 { return regs.vtor.Load() }

func (hardware) SetVTOR(addr uint32) { regs.vtor.Store(addr) }

const (
	vectKey     = 0x05fa << 16
	sysResetReq = 1 << 2
	prigroup    = 7 << 8
)

// SystemReset requests a reset of the whole system and waits for it. The
// priority grouping is preserved.
//
//go:nosplit
func SystemReset() {
	regs.aircr.Store(vectKey | regs.aircr.Load()&prigroup | sysResetReq)
	for {
	}
}

//go:nosplit
func (hardware) ReadNVIC(b Bank, p []byte) int {
	n := min(len(p), b.Size()) &^ 3
	base := b.Addr()
	for i := 0; i < n; i += 4 {
		r := (*mmio.U32)(unsafe.Pointer(base + uintptr(i)))
		binary.LittleEndian.PutUint32(p[i:], r.Load())
	}
	return n
}

// Package scbtest provides a software System Control Block for testing code
// that depends on scb.Registers.
package scbtest

import "github.com/clktmr/faultcore/scb"

// Fake implements scb.Registers with plain fields. Tests set the status
// registers before injecting a fault and inspect the control registers
// afterwards.
type Fake struct {
	Cfsr  scb.CFSR
	Hfsr  scb.HFSR
	Mmfar uint32
	Bfar  uint32

	Shcsr scb.SHCSR
	Ccr   scb.CCR
	Vtor  uint32

	NVIC [scb.BankLast][]byte

	// Reads counts calls to the status register accessors.
	Reads int
}

func (f *Fake) CFSR() scb.CFSR { f.Reads++; return f.Cfsr }
func (f *Fake) HFSR() scb.HFSR { f.Reads++; return f.Hfsr }
func (f *Fake) MMFAR() uint32  { f.Reads++; return f.Mmfar }
func (f *Fake) BFAR() uint32   { f.Reads++; return f.Bfar }

func (f *Fake) SHCSR() scb.SHCSR     { return f.Shcsr }
func (f *Fake) SetSHCSR(v scb.SHCSR) { f.Shcsr = v }
func (f *Fake) CCR() scb.CCR         { return f.Ccr }
func (f *Fake) SetCCR(v scb.CCR)     { f.Ccr = v }
func (f *Fake) VTOR() uint32         { return f.Vtor }
func (f *Fake) SetVTOR(addr uint32)  { f.Vtor = addr }

func (f *Fake) ReadNVIC(b scb.Bank, p []byte) int {
	n := min(len(p), b.Size())
	src := f.NVIC[b]
	clear(p[:n])
	copy(p[:n], src)
	return n
}

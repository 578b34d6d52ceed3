//go:build noos && thumb

package machine

import (
	"embedded/mmio"
	"unsafe"
)

var itm *itmRegs = (*itmRegs)(unsafe.Pointer(itmBase))

const itmBase uintptr = 0xe000_0000

const (
	itmena    = 1 << 0 // TCR
	fifoReady = 1 << 0 // STIM read
)

type itmRegs struct {
	stim [32]mmio.U32
	_    [864]mmio.U32
	ter  mmio.U32
	_    [15]mmio.U32
	tpr  mmio.U32
	_    [15]mmio.U32
	tcr  mmio.U32
}

// Writes to ITM stimulus port 0, byte by byte and without interrupts or DMA.
// Output is dropped if no debugger enabled the port. Only intended as a fail
// safe logger in early boot and while handling faults.
//
//go:nowritebarrierrec
//go:nosplit
//go:linkname DefaultWrite runtime.defaultWrite
func DefaultWrite(fd int, p []byte) int {
	if itm.tcr.Load()&itmena == 0 || itm.ter.Load()&1 == 0 {
		return len(p)
	}
	port := &itm.stim[0]
	for _, b := range p {
		for port.Load()&fifoReady == 0 {
			// wait
		}
		(*mmio.U8)(unsafe.Pointer(port)).Store(b)
	}
	return len(p)
}

type defaultWriter int

const DefaultWriter defaultWriter = 0

func (v defaultWriter) Write(p []byte) (int, error) {
	return DefaultWrite(int(v), p), nil
}

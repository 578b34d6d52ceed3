//go:build noos && thumb

package exc

import "unsafe"

// halt disables interrupts and waits for them forever.
func halt()

// Exception entry trampolines, see entry_thumb.s.
func nmiEntry()
func hardFaultEntry()
func memManageEntry()
func busFaultEntry()
func usageFaultEntry()
func svcEntry()

func init() {
	vectorEntries[VectorNMI] = funcPC(nmiEntry)
	vectorEntries[VectorHardFault] = funcPC(hardFaultEntry)
	vectorEntries[VectorMemManage] = funcPC(memManageEntry)
	vectorEntries[VectorBusFault] = funcPC(busFaultEntry)
	vectorEntries[VectorUsageFault] = funcPC(usageFaultEntry)
	vectorEntries[VectorSVCall] = funcPC(svcEntry)
}

func funcPC(f func()) uint32 {
	return uint32(**(**uintptr)(unsafe.Pointer(&f)))
}

// dispatch is called by the trampolines on the main stack with the register
// snapshot right above the arguments.
//
//go:nosplit
func dispatch(excType uint32, frame unsafe.Pointer) {
	if c := Default(); c != nil {
		c.Dispatch(excType, frame)
	}
	halt()
}

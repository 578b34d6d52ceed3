// Package scb describes the parts of the ARMv7-M System Control Block and
// Nested Vectored Interrupt Controller that the fault core reads.
//
// The register addresses, bank sizes and bit positions in this package are a
// stable contract: persisted exception records refer to them.
package scb

// System Control Block
// https://developer.arm.com/documentation/ddi0403/latest (B3.2)

const (
	BaseAddr uintptr = 0xe000_ed00

	VTORAddr  uintptr = 0xe000_ed08
	CCRAddr   uintptr = 0xe000_ed14
	SHPRAddr  uintptr = 0xe000_ed18
	SHCSRAddr uintptr = 0xe000_ed24
	CFSRAddr  uintptr = 0xe000_ed28
	HFSRAddr  uintptr = 0xe000_ed2c
	MMFARAddr uintptr = 0xe000_ed34
	BFARAddr  uintptr = 0xe000_ed38
)

// NVIC register banks
const (
	ISERAddr uintptr = 0xe000_e100 // interrupt set-enable
	ISPRAddr uintptr = 0xe000_e200 // interrupt set-pending
	IABRAddr uintptr = 0xe000_e300 // interrupt active bit
	IPRAddr  uintptr = 0xe000_e400 // interrupt priority

	IntEnableSize = 0x20
	IntPendSize   = IntEnableSize
	IntActSize    = IntEnableSize
	IntPriSize    = 0xf0
	ExcPriSize    = 0xc
)

// Bank selects one of the NVIC register banks captured on a fault.
type Bank uint8

const (
	BankEnable Bank = iota
	BankPending
	BankActive
	BankPriority
	BankExcPriority

	BankLast
)

var bankNames = [BankLast]string{
	BankEnable:      "enable",
	BankPending:     "pending",
	BankActive:      "active",
	BankPriority:    "priority",
	BankExcPriority: "excpri",
}

var bankAddrs = [BankLast]uintptr{
	BankEnable:      ISERAddr,
	BankPending:     ISPRAddr,
	BankActive:      IABRAddr,
	BankPriority:    IPRAddr,
	BankExcPriority: SHPRAddr,
}

var bankSizes = [BankLast]int{
	BankEnable:      IntEnableSize,
	BankPending:     IntPendSize,
	BankActive:      IntActSize,
	BankPriority:    IntPriSize,
	BankExcPriority: ExcPriSize,
}

func (b Bank) String() string {
	if b >= BankLast {
		return "invalid"
	}
	return bankNames[b]
}

// Addr returns the address of the first register in the bank.
func (b Bank) Addr() uintptr { return bankAddrs[b] }

// Size returns the size of the bank in bytes.
func (b Bank) Size() int { return bankSizes[b] }

// NVICSize is the number of bytes needed to hold all banks.
const NVICSize = IntEnableSize + IntPendSize + IntActSize + IntPriSize + ExcPriSize

// Configurable Fault Status Register. The low byte is the MemManage status,
// the next byte the BusFault status and the upper halfword the UsageFault
// status.
type CFSR uint32

// MemManage fault status
const (
	IACCVIOL CFSR = 1 << iota // instruction access violation
	DACCVIOL                  // data access violation
	_
	MUNSTKERR // unstacking on exception return
	MSTKERR   // stacking on exception entry
	MLSPERR   // lazy floating-point state preservation
	_
	MMARVALID // MMFAR holds a valid address
)

// BusFault status
const (
	IBUSERR     CFSR = 1 << (iota + 8) // instruction prefetch
	PRECISERR                          // precise data access, BFAR valid
	IMPRECISERR                        // imprecise data access
	UNSTKERR                           // unstacking on exception return
	STKERR                             // stacking on exception entry
	LSPERR                             // lazy floating-point state preservation
	_
	BFARVALID // BFAR holds a valid address
)

// UsageFault status
const (
	UNDEFINSTR CFSR = 1 << (iota + 16) // undefined instruction
	INVSTATE                           // invalid EPSR state, e.g. Thumb bit clear
	INVPC                              // invalid EXC_RETURN on PC load
	NOCP                               // coprocessor access while disabled

	UNALIGNED CFSR = 1 << 24 // unaligned access with UNALIGN_TRP set
	DIVBYZERO CFSR = 1 << 25 // division by zero with DIV_0_TRP set
)

const (
	MMFSRMask CFSR = 0x0000_00ff
	BFSRMask  CFSR = 0x0000_ff00
	UFSRMask  CFSR = 0xffff_0000
)

// HardFault Status Register
type HFSR uint32

const (
	VECTTBL  HFSR = 1 << 1  // bus fault on vector table read
	FORCED   HFSR = 1 << 30 // escalated configurable fault
	DEBUGEVT HFSR = 1 << 31 // debug event while halting debug is disabled
)

// System Handler Control and State Register
type SHCSR uint32

const (
	MEMFAULTENA SHCSR = 1 << (iota + 16)
	BUSFAULTENA
	USGFAULTENA
)

// Configuration and Control Register
type CCR uint32

const (
	NONBASETHRDENA CCR = 1 << 0
	USERSETMPEND   CCR = 1 << 1
	UNALIGN_TRP    CCR = 1 << 3
	DIV_0_TRP      CCR = 1 << 4
	BFHFNMIGN      CCR = 1 << 8
	STKALIGN       CCR = 1 << 9
)

// Registers gives the fault core access to the System Control Block. The
// hardware implementation is only available on the target, tests use
// scbtest.Fake.
type Registers interface {
	CFSR() CFSR
	HFSR() HFSR
	MMFAR() uint32
	BFAR() uint32

	SHCSR() SHCSR
	SetSHCSR(SHCSR)
	CCR() CCR
	SetCCR(CCR)
	VTOR() uint32
	SetVTOR(addr uint32)

	// ReadNVIC copies the bank's registers into p and returns the number of
	// bytes copied, at most b.Size().
	ReadNVIC(b Bank, p []byte) int
}

package exc

import (
	"errors"
	"runtime"
	"testing"
	"unsafe"
	"weak"

	"github.com/clktmr/faultcore/scb"
	"github.com/clktmr/faultcore/scb/scbtest"
)

func TestMakeTable(t *testing.T) {
	for _, size := range []int{128, 256, 1024} {
		table := MakeTable(size)
		if len(table)*4 != size {
			t.Fatalf("expected %v bytes, got %v", size, len(table)*4)
		}
		if addr := uintptr(unsafe.Pointer(&table[0])); addr%uintptr(size) != 0 {
			t.Fatalf("expected alignment %v, got %#x", size, addr)
		}
	}
}

func TestSetup(t *testing.T) {
	saved := vectorEntries
	defer func() { vectorEntries = saved }()
	vectorEntries = [vectorCount]uint32{}
	vectorEntries[VectorHardFault] = 0x0800_0200
	vectorEntries[VectorSVCall] = 0x0800_0300

	regs := &scbtest.Fake{Ccr: scb.UNALIGN_TRP | scb.STKALIGN}
	c := New(Config{Registers: regs, TrapDivZero: true})
	table := MakeTable(256)
	table[0] = 0x2000_8000
	table[VectorNMI] = 0x0800_0101

	if err := c.Setup(table); err != nil {
		t.Fatal(err)
	}
	if table[0] != 0x2000_8000 || table[VectorNMI] != 0x0800_0101 {
		t.Fatalf("expected untouched entries, got %#x %#x", table[0], table[VectorNMI])
	}
	if table[VectorHardFault] != 0x0800_0201 || table[VectorSVCall] != 0x0800_0301 {
		t.Fatalf("expected thumb entries, got %#x %#x", table[VectorHardFault], table[VectorSVCall])
	}
	if want := uint32(uintptr(unsafe.Pointer(&table[0]))); regs.Vtor != want {
		t.Fatalf("expected %#x, got %#x", want, regs.Vtor)
	}
	if want := scb.DIV_0_TRP | scb.STKALIGN; regs.Ccr != want {
		t.Fatalf("expected %#x, got %#x", want, regs.Ccr)
	}
	if want := scb.MEMFAULTENA | scb.BUSFAULTENA | scb.USGFAULTENA; regs.Shcsr != want {
		t.Fatalf("expected %#x, got %#x", want, regs.Shcsr)
	}
}

func TestSetupErrors(t *testing.T) {
	tests := map[string]struct {
		regs  scb.Registers
		table []uint32
		err   error
	}{
		"no registers": {nil, MakeTable(128), ErrNoRegs},
		"too small":    {&scbtest.Fake{}, MakeTable(64), ErrTableSize},
		"not pow2":     {&scbtest.Fake{}, MakeTable(512)[:48], ErrTableSize},
		"misaligned":   {&scbtest.Fake{}, MakeTable(512)[1:65], ErrTableAlign},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := New(Config{Registers: tc.regs})
			if err := c.Setup(tc.table); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestSetupKeepsTable(t *testing.T) {
	c := New(Config{Registers: &scbtest.Fake{}})
	table := MakeTable(256)
	ref := weak.Make(unsafe.SliceData(table))
	if err := c.Setup(table); err != nil {
		t.Fatal(err)
	}
	table = nil
	for range 5 {
		runtime.GC()
	}
	if ref.Value() == nil {
		t.Fatal("expected vector table to outlive Setup")
	}
	runtime.KeepAlive(c)
}

package scb

import "testing"

func TestBanks(t *testing.T) {
	tests := map[Bank]struct {
		addr uintptr
		size int
	}{
		BankEnable:      {0xe000_e100, 0x20},
		BankPending:     {0xe000_e200, 0x20},
		BankActive:      {0xe000_e300, 0x20},
		BankPriority:    {0xe000_e400, 0xf0},
		BankExcPriority: {0xe000_ed18, 0x0c},
	}
	total := 0
	for b, tc := range tests {
		t.Run(b.String(), func(t *testing.T) {
			if b.Addr() != tc.addr {
				t.Fatalf("expected %#x, got %#x", tc.addr, b.Addr())
			}
			if b.Size() != tc.size {
				t.Fatalf("expected %#x, got %#x", tc.size, b.Size())
			}
		})
		total += tc.size
	}
	if total != NVICSize {
		t.Fatalf("expected %v, got %v", total, NVICSize)
	}
}

func TestCFSRFamilies(t *testing.T) {
	tests := map[string]struct {
		bits CFSR
		mask CFSR
	}{
		"memmanage":  {IACCVIOL | DACCVIOL | MUNSTKERR | MSTKERR | MLSPERR | MMARVALID, MMFSRMask},
		"busfault":   {IBUSERR | PRECISERR | IMPRECISERR | UNSTKERR | STKERR | LSPERR | BFARVALID, BFSRMask},
		"usagefault": {UNDEFINSTR | INVSTATE | INVPC | NOCP | UNALIGNED | DIVBYZERO, UFSRMask},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if tc.bits&^tc.mask != 0 {
				t.Fatalf("expected bits within %#08x, got %#08x", tc.mask, tc.bits)
			}
		})
	}
	if MMFSRMask&BFSRMask != 0 || BFSRMask&UFSRMask != 0 || MMFSRMask|BFSRMask|UFSRMask != 0xffff_ffff {
		t.Fatal("expected masks to partition the register")
	}
}

func TestRegisterAddrs(t *testing.T) {
	tests := map[string]struct {
		addr, want uintptr
	}{
		"CCR":   {CCRAddr, BaseAddr + 0x14},
		"SHCSR": {SHCSRAddr, BaseAddr + 0x24},
		"CFSR":  {CFSRAddr, BaseAddr + 0x28},
		"HFSR":  {HFSRAddr, BaseAddr + 0x2c},
		"MMFAR": {MMFARAddr, BaseAddr + 0x34},
		"BFAR":  {BFARAddr, BaseAddr + 0x38},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if tc.addr != tc.want {
				t.Fatalf("expected %#x, got %#x", tc.want, tc.addr)
			}
		})
	}
}

package exc

import (
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

func testInfo(ctx Context) ExcInfo {
	c := Classification{CauseMemData, 0x2000_0100, true}
	return MakeInfo(VectorMemManage, c, PhaseTask, 1, 0x42, ctx)
}

func TestRecordRoundTrip(t *testing.T) {
	fp := new(FPFrame)
	for i, w := range fp.Words() {
		fp.Words()[i] = w + uint32(i)*0x0101_0101
	}
	frame := &Frame{Regs{PC: 0x0800_0abc, SP: 0x2000_7fe0}}
	nvic := []byte{1, 2, 3, 4, 5, 6, 7}

	tests := map[string]struct {
		ctx  Context
		nvic []byte
	}{
		"float":       {fp, nvic},
		"integer":     {frame, nvic},
		"no snapshot": {nil, nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e := testInfo(tc.ctx)
			var buf [RecordMax]byte
			n := EncodeRecord(buf[:], &e, tc.nvic)
			if n%4 != 0 || n > RecordMax {
				t.Fatalf("expected aligned length up to %v, got %v", RecordMax, n)
			}

			rec, m, err := DecodeRecord(buf[:])
			if err != nil {
				t.Fatal(err)
			}
			if m != n {
				t.Fatalf("expected %v, got %v", n, m)
			}
			if !reflect.DeepEqual(rec.Info, e) {
				t.Fatalf("expected %+v, got %+v", e, rec.Info)
			}
			if len(rec.NVIC) != len(tc.nvic) || string(rec.NVIC) != string(tc.nvic) {
				t.Fatalf("expected %v, got %v", tc.nvic, rec.NVIC)
			}
		})
	}
}

func TestRecordMax(t *testing.T) {
	e := testInfo(new(FPFrame))
	var nvic [348]byte
	var buf [RecordMax + 8]byte
	if n := EncodeRecord(buf[:], &e, nvic[:]); n != RecordMax {
		t.Fatalf("expected %v, got %v", RecordMax, n)
	}
}

func TestDecodeRecordErrors(t *testing.T) {
	e := testInfo(new(Frame))
	var buf [RecordMax]byte
	n := EncodeRecord(buf[:], &e, []byte{0xff})

	tests := map[string]struct {
		corrupt func(p []byte) []byte
		err     error
	}{
		"short": {
			func(p []byte) []byte { return p[:recordHeader-1] },
			ErrShortRecord,
		},
		"truncated": {
			func(p []byte) []byte { return p[:n-4] },
			ErrShortRecord,
		},
		"magic": {
			func(p []byte) []byte { p[0] ^= 0xff; return p },
			ErrMagic,
		},
		"version": {
			func(p []byte) []byte { binary.LittleEndian.PutUint16(p[4:], 2); return p },
			ErrVersion,
		},
		"float flag": {
			func(p []byte) []byte { p[0x1b] &^= 0x10; return p },
			ErrFrameSize,
		},
		"checksum": {
			func(p []byte) []byte { p[recordHeader] ^= 1; return p },
			ErrChecksum,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p := append([]byte(nil), buf[:n]...)
			_, _, err := DecodeRecord(tc.corrupt(p))
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

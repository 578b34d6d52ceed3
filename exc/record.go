package exc

import (
	"encoding/binary"
	"errors"

	"github.com/clktmr/faultcore/debug"
	"github.com/clktmr/faultcore/scb"
	"github.com/sigurn/crc8"
)

// Records are what a Saver receives. All fields are little endian:
//
//	0x00 magic "EXCR"
//	0x04 version (u16), total length including padding (u16)
//	0x08 phase (u16), cause (u16)
//	0x0c fault address
//	0x10 thread identifier
//	0x14 nest count (u16), reserved (u16)
//	0x18 flags
//	0x1c vector
//	0x20 number of snapshot words, followed by the words
//	     number of NVIC bytes, followed by the bytes
//	     CRC-8 over everything before, zero padding to 4 bytes
const (
	RecordMagic   = 0x5243_5845
	RecordVersion = 1

	recordHeader = 0x24

	// RecordMax is the size of the largest possible record.
	RecordMax = (recordHeader + 4*FPFrameWords + 4 + scb.NVICSize + 1 + 3) &^ 3
)

var (
	ErrShortRecord = errors.New("exc: short record")
	ErrMagic       = errors.New("exc: bad record magic")
	ErrVersion     = errors.New("exc: unsupported record version")
	ErrFrameSize   = errors.New("exc: snapshot size doesn't match flags")
	ErrChecksum    = errors.New("exc: record checksum mismatch")
)

var recordCRC = crc8.MakeTable(crc8.CRC8)

// EncodeRecord serializes e and the NVIC banks into dst, which must hold at
// least RecordMax bytes, and returns the record's length. It doesn't
// allocate.
//
//go:nosplit
func EncodeRecord(dst []byte, e *ExcInfo, nvic []byte) int {
	var words []uint32
	if e.Context != nil {
		words = e.Context.Words()
	}
	n := recordHeader + 4*len(words) + 4 + len(nvic) + 1
	length := (n + 3) &^ 3
	debug.Assert(len(dst) >= length, "record buffer too small")

	le := binary.LittleEndian
	le.PutUint32(dst[0x00:], RecordMagic)
	le.PutUint16(dst[0x04:], RecordVersion)
	le.PutUint16(dst[0x06:], uint16(length))
	le.PutUint16(dst[0x08:], uint16(e.Phase))
	le.PutUint16(dst[0x0a:], uint16(e.Cause))
	le.PutUint32(dst[0x0c:], e.FaultAddr)
	le.PutUint32(dst[0x10:], e.ThreadID)
	le.PutUint16(dst[0x14:], e.NestCount)
	le.PutUint16(dst[0x16:], 0)
	le.PutUint32(dst[0x18:], uint32(e.Flags))
	le.PutUint32(dst[0x1c:], uint32(e.Vector))
	le.PutUint32(dst[0x20:], uint32(len(words)))

	off := recordHeader
	for _, w := range words {
		le.PutUint32(dst[off:], w)
		off += 4
	}
	le.PutUint32(dst[off:], uint32(len(nvic)))
	off += 4
	off += copy(dst[off:], nvic)

	dst[off] = crc8.Checksum(dst[:off], recordCRC)
	off++
	clear(dst[off:length])

	return length
}

// Record is a decoded record.
type Record struct {
	Info ExcInfo
	NVIC []byte
}

// DecodeRecord parses the record at the start of p and returns it with the
// number of bytes it occupied. The snapshot and NVIC bytes are copied.
func DecodeRecord(p []byte) (r Record, n int, err error) {
	le := binary.LittleEndian
	if len(p) < recordHeader {
		return r, 0, ErrShortRecord
	}
	if le.Uint32(p) != RecordMagic {
		return r, 0, ErrMagic
	}
	if le.Uint16(p[0x04:]) != RecordVersion {
		return r, 0, ErrVersion
	}
	n = int(le.Uint16(p[0x06:]))
	if n < recordHeader+4+1 || n > len(p) {
		return r, 0, ErrShortRecord
	}

	e := &r.Info
	e.Phase = Phase(le.Uint16(p[0x08:]))
	e.Cause = Cause(le.Uint16(p[0x0a:]))
	e.FaultAddr = le.Uint32(p[0x0c:])
	e.ThreadID = le.Uint32(p[0x10:])
	e.NestCount = le.Uint16(p[0x14:])
	e.Flags = Flag(le.Uint32(p[0x18:]))
	e.Vector = Vector(le.Uint32(p[0x1c:]))

	nwords := int(le.Uint32(p[0x20:]))
	off := recordHeader
	if off+4*nwords+4 > n {
		return r, 0, ErrShortRecord
	}

	var ctx Context
	switch {
	case nwords == 0:
	case nwords == FrameWords && e.Flags&FlagNoFloat != 0:
		ctx = new(Frame)
	case nwords == FPFrameWords && e.Flags&FlagNoFloat == 0:
		ctx = new(FPFrame)
	default:
		return r, 0, ErrFrameSize
	}
	if ctx != nil {
		words := ctx.Words()
		for i := range words {
			words[i] = le.Uint32(p[off:])
			off += 4
		}
		e.Context = ctx
	}

	nnvic := int(le.Uint32(p[off:]))
	off += 4
	if off+nnvic+1 > n {
		return r, 0, ErrShortRecord
	}
	r.NVIC = append([]byte(nil), p[off:off+nnvic]...)
	off += nnvic

	if crc8.Checksum(p[:off], recordCRC) != p[off] {
		return r, 0, ErrChecksum
	}
	return r, n, nil
}

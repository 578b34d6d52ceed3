package exc

import (
	"io"
	"strconv"

	"github.com/clktmr/faultcore/scb"
)

const lineSize = 96

// Recorder renders exception records and panic messages as text. It writes
// whole lines from a fixed buffer and doesn't allocate, so it can be used
// with interrupts disabled as long as the writer can.
type Recorder struct {
	w    io.Writer
	line [lineSize]byte
	n    int
}

// NewRecorder returns a Recorder writing to w. A nil w discards all output.
func NewRecorder(w io.Writer) *Recorder {
	r := new(Recorder)
	r.Reset(w)
	return r
}

// Reset discards buffered output and makes r write to w.
func (r *Recorder) Reset(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	r.w, r.n = w, 0
}

// Display writes e, its register snapshot and the NVIC banks in nvic, as
// captured in a record, in a fixed order.
//
//go:nosplit
func (r *Recorder) Display(e *ExcInfo, nvic []byte) {
	r.puts("*** exception: ")
	r.puts(e.Cause.String())
	r.puts(" (cause ")
	r.dec(uint32(e.Cause))
	r.puts(")\n")

	r.puts("phase    ")
	r.puts(e.Phase.String())
	r.puts("\nvector   ")
	r.dec(uint32(e.Vector))
	r.puts(" (")
	r.puts(e.Vector.String())
	r.puts(")\naddress  ")
	if e.AddrValid() {
		r.hex(e.FaultAddr)
	} else {
		r.puts("not available")
	}
	r.puts("\nnesting  ")
	r.dec(uint32(e.NestCount))
	r.puts("\nthread   ")
	if e.ThreadID == NoThread {
		r.puts("none")
	} else {
		r.hex(e.ThreadID)
	}
	r.puts("\nflags    ")
	r.hex(uint32(e.Flags))
	r.puts("\n")

	r.regs(e.Context)
	r.nvic(nvic)
	r.flush()
}

// Message writes a line consisting of prefix and msg.
//
//go:nosplit
func (r *Recorder) Message(prefix string, msg []byte) {
	r.puts(prefix)
	r.write(msg)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		r.puts("\n")
	}
	r.flush()
}

// HexRecord writes an encoded record as a single line prefixed with
// RecordLinePrefix, for scraping it from a serial console.
//
//go:nosplit
func (r *Recorder) HexRecord(rec []byte) {
	const digits = "0123456789abcdef"
	r.puts(RecordLinePrefix)
	for _, b := range rec {
		r.reserve(2)
		r.line[r.n] = digits[b>>4]
		r.line[r.n+1] = digits[b&0xf]
		r.n += 2
	}
	r.puts("\n")
	r.flush()
}

// RecordLinePrefix starts a console line written by HexRecord.
const RecordLinePrefix = "EXCREC "

//go:nosplit
func (r *Recorder) regs(ctx Context) {
	if ctx == nil {
		r.puts("registers not available\n")
		return
	}
	if ctx.HasFloat() {
		r.puts("registers (float context):\n")
	} else {
		r.puts("registers (no float context):\n")
	}
	words, fields := ctx.Words(), ctx.Fields()
	for i, f := range fields {
		r.puts(f.Name)
		r.pad(9 - len(f.Name))
		r.hex(words[f.Offset/4])
		if i%4 == 3 || i == len(fields)-1 {
			r.puts("\n")
		} else {
			r.puts("  ")
		}
	}
}

//go:nosplit
func (r *Recorder) nvic(p []byte) {
	for b := scb.Bank(0); b < scb.BankLast && len(p) > 0; b++ {
		n := min(b.Size(), len(p))
		r.puts("nvic ")
		r.puts(b.String())
		r.puts(":\n")
		for i := 0; i+4 <= n; i += 4 {
			if i%32 == 0 {
				r.puts(" ")
			}
			r.puts(" ")
			r.hexraw(uint32(p[i]) | uint32(p[i+1])<<8 | uint32(p[i+2])<<16 | uint32(p[i+3])<<24)
			if i%32 == 28 || i+4 >= n {
				r.puts("\n")
			}
		}
		p = p[n:]
	}
}

//go:nosplit
func (r *Recorder) puts(s string) {
	for len(s) > 0 {
		if r.n == len(r.line) {
			r.flush()
		}
		c := copy(r.line[r.n:], s)
		r.n += c
		s = s[c:]
	}
	if r.n > 0 && r.line[r.n-1] == '\n' {
		r.flush()
	}
}

//go:nosplit
func (r *Recorder) write(p []byte) {
	for len(p) > 0 {
		if r.n == len(r.line) {
			r.flush()
		}
		c := copy(r.line[r.n:], p)
		r.n += c
		p = p[c:]
	}
}

//go:nosplit
func (r *Recorder) pad(n int) {
	for ; n > 0; n-- {
		r.puts(" ")
	}
}

//go:nosplit
func (r *Recorder) reserve(n int) {
	if len(r.line)-r.n < n {
		r.flush()
	}
}

//go:nosplit
func (r *Recorder) hex(v uint32) {
	r.puts("0x")
	r.hexraw(v)
}

//go:nosplit
func (r *Recorder) hexraw(v uint32) {
	r.reserve(8)
	for i := range 8 {
		c := byte(v>>(28-4*i)) & 0xf
		if c > 9 {
			c += 'a' - 10
		} else {
			c += '0'
		}
		r.line[r.n+i] = c
	}
	r.n += 8
}

//go:nosplit
func (r *Recorder) dec(v uint32) {
	r.reserve(10)
	r.n += len(strconv.AppendUint(r.line[r.n:r.n], uint64(v), 10))
}

//go:nosplit
func (r *Recorder) flush() {
	if r.n > 0 {
		r.w.Write(r.line[:r.n])
		r.n = 0
	}
}

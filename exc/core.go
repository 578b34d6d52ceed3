package exc

import (
	"io"
	"sync/atomic"
	"unsafe"

	"github.com/clktmr/faultcore/scb"
)

// Saver persists an encoded record, e.g. to flash. It returns the number of
// bytes it consumed.
type Saver interface {
	Save(rec []byte) int
}

// SaverFunc adapts a function to a Saver.
type SaverFunc func(rec []byte) int

func (f SaverFunc) Save(rec []byte) int { return f(rec) }

// NoSave is the default Saver, it discards the record.
var NoSave Saver = SaverFunc(func([]byte) int { return 0 })

// Terminator is the last action taken for a fault, after it was recorded.
// The system halts when it returns.
type Terminator interface {
	Terminate(v Vector, ctx Context)
}

// TerminatorFunc adapts a function to a Terminator.
type TerminatorFunc func(v Vector, ctx Context)

func (f TerminatorFunc) Terminate(v Vector, ctx Context) { f(v, ctx) }

// Halt is the default Terminator, it leaves stopping to the halt function.
var Halt Terminator = TerminatorFunc(func(Vector, Context) {})

// RecordMode selects what happens to a fault's record.
type RecordMode uint8

const (
	RecordSaveAndDisplay RecordMode = iota // pass to the Saver, then display
	RecordSaveOnly                         // only pass to the Saver
)

// Config is passed once at boot to Init or New. Zero fields select the
// documented defaults.
type Config struct {
	// Faults nested deeper than MaxNest halt without being recorded.
	// Defaults to MaxNestDepth.
	MaxNest uint32

	Output     io.Writer  // display sink, nil discards
	Saver      Saver      // defaults to NoSave
	Terminator Terminator // defaults to Halt
	Mode       RecordMode

	// HexRecord additionally writes the encoded record to Output.
	HexRecord bool

	Registers scb.Registers
	Tasks     TaskSource

	// Halt stops the CPU and never returns on the target. Defaults to
	// disabling interrupts and waiting forever.
	Halt func()

	// Traps enabled by Setup. Integer division by zero returns zero unless
	// TrapDivZero is set.
	TrapDivZero   bool
	TrapUnaligned bool
}

// State is a Core's position in its fault handling state machine. There is
// no transition back to Normal.
type State uint32

const (
	Normal State = iota
	Classifying
	Recording
	Halted
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Classifying:
		return "classifying"
	case Recording:
		return "recording"
	case Halted:
		return "halted"
	}
	return "invalid"
}

// Core is the process wide fault handling state. All storage needed while
// handling a fault is reserved here, nothing is allocated in the fault path.
type Core struct {
	cfg     Config
	tracker Tracker
	state   atomic.Uint32

	rec  Recorder
	info ExcInfo
	buf  [RecordMax]byte
	nvic [scb.NVICSize]byte
	msg  [panicMsgSize]byte

	// The relocated vector table, referenced only by VTOR otherwise.
	table []uint32
}

// New returns a Core for cfg in state Normal.
func New(cfg Config) *Core {
	if cfg.MaxNest == 0 {
		cfg.MaxNest = MaxNestDepth
	}
	if cfg.Saver == nil {
		cfg.Saver = NoSave
	}
	if cfg.Terminator == nil {
		cfg.Terminator = Halt
	}
	if cfg.Halt == nil {
		cfg.Halt = halt
	}
	c := &Core{cfg: cfg}
	c.tracker.Reset()
	c.rec.Reset(cfg.Output)
	return c
}

var std atomic.Pointer[Core]

// Init creates the Core used by the exception entry points and the package
// level functions. It must be called once at boot, faults before that halt
// without any output.
func Init(cfg Config) *Core {
	c := New(cfg)
	std.Store(c)
	return c
}

// Default returns the Core created by Init, or nil.
//
//go:nosplit
func Default() *Core {
	return std.Load()
}

// Tracker returns the interrupt and fault nesting tracker.
func (c *Core) Tracker() *Tracker { return &c.tracker }

// State returns the current state.
func (c *Core) State() State { return State(c.state.Load()) }

// Info returns the record of the fault being handled. It's only meaningful
// after the core left state Classifying.
func (c *Core) Info() *ExcInfo { return &c.info }

// ExcTypeHandler is set by the entry trampolines in the exception type if the
// fault was taken from handler mode, i.e. it interrupted an interrupt handler.
const ExcTypeHandler = 1 << 29

// Dispatch is called by the exception entry trampolines. The low byte of
// excType is the vector, for VectorSVCall the second byte holds the SVC
// immediate. FlagNoFloat is set if frame points to a Frame instead of an
// FPFrame, ExcTypeHandler if the fault interrupted handler mode.
//
//go:nosplit
func (c *Core) Dispatch(excType uint32, frame unsafe.Pointer) {
	v := Vector(excType)
	svc := uint8(excType >> 8)
	float := Flag(excType)&FlagNoFloat == 0
	c.handle(v, svc, FrameAt(frame, float), excType&ExcTypeHandler != 0)
}

// Handle handles a fault of vector v with register snapshot ctx, taken from
// thread mode. It doesn't return on the target.
//
//go:nosplit
func (c *Core) Handle(v Vector, svc uint8, ctx Context) {
	c.handle(v, svc, ctx, false)
}

//go:nosplit
func (c *Core) handle(v Vector, svc uint8, ctx Context, handler bool) {
	if !c.enter() {
		return
	}

	var st Status
	if c.cfg.Registers != nil {
		st = ReadStatus(c.cfg.Registers, v)
	}
	st.SVC = svc
	c.fault(v, Classify(v, st), ctx, handler)
}

// TaskExit is called by the scheduler if a task returned without cleaning up.
// It's handled like a fault without register snapshot.
func (c *Core) TaskExit() {
	if !c.enter() {
		return
	}
	c.fault(VectorSoftware, Classification{Cause: CauseTaskExit, Addr: ImpreciseAddr}, nil, false)
}

// enter guards against recursive faults. If the nesting limit is exceeded
// the system halts before anything else is touched, since classifying or
// recording might fault again.
//
//go:nosplit
func (c *Core) enter() bool {
	c.state.Store(uint32(Classifying))
	if c.tracker.enterException() > c.cfg.MaxNest {
		c.state.Store(uint32(Halted))
		c.cfg.Halt()
		return false
	}
	return true
}

//go:nosplit
func (c *Core) fault(v Vector, cls Classification, ctx Context, handler bool) {
	phase := c.tracker.Phase()
	if handler && phase == PhaseTask {
		// Interrupt handlers that don't report to the tracker.
		phase = PhaseHWI
	}
	task := NoThread
	if phase == PhaseTask && c.cfg.Tasks != nil {
		task = c.cfg.Tasks.CurrentTask()
	}
	c.info = MakeInfo(v, cls, phase, c.tracker.ExceptionDepth(), task, ctx)

	c.state.Store(uint32(Recording))
	c.record(&c.info)

	c.state.Store(uint32(Halted))
	c.cfg.Terminator.Terminate(v, ctx)
	c.cfg.Halt()
}

//go:nosplit
func (c *Core) record(e *ExcInfo) {
	nvic := c.nvic[:0]
	if regs := c.cfg.Registers; regs != nil {
		for b := scb.Bank(0); b < scb.BankLast; b++ {
			n := regs.ReadNVIC(b, c.nvic[len(nvic):len(nvic)+b.Size()])
			nvic = c.nvic[:len(nvic)+n]
		}
	}

	n := EncodeRecord(c.buf[:], e, nvic)
	c.cfg.Saver.Save(c.buf[:n])

	if c.cfg.Mode == RecordSaveOnly {
		return
	}
	c.rec.Display(e, nvic)
	if c.cfg.HexRecord {
		c.rec.HexRecord(c.buf[:n])
	}
}

// Display writes e the same way a fault is displayed.
func (c *Core) Display(e *ExcInfo) {
	c.rec.Display(e, nil)
}

package exc

import "fmt"

const panicMsgSize = 256

// Panic writes a formatted message to the fault output and halts. It's meant
// for kernel and application code that detected a broken invariant it can't
// recover from. No register snapshot is recorded and the scheduler is never
// resumed.
//
// Messages longer than the core's reserved buffer are truncated.
func (c *Core) Panic(format string, args ...any) {
	msg := fmt.Appendf(c.msg[:0], format, args...)
	if len(msg) > len(c.msg) {
		msg = msg[:len(c.msg)]
	}
	c.rec.Message("*** kernel panic: ", msg)
	c.rec.Message("*** system halted", nil)
	c.state.Store(uint32(Halted))
	c.cfg.Halt()
}

// Panic calls Panic on the Core created by Init. Without one the message is
// passed to the runtime's panic.
func Panic(format string, args ...any) {
	if c := Default(); c != nil {
		c.Panic(format, args...)
		return
	}
	panic(fmt.Sprintf(format, args...))
}

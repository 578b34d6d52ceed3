//go:build noos

// Package testing provides a TestMain for tests running on the target.
package testing

import (
	"embedded/rtos"
	"os"
	"syscall"
	"testing"

	"github.com/clktmr/faultcore/machine"

	"github.com/embeddedgo/fs/termfs"
)

// TestMain should be used as TestMain for tests running on the target. It
// redirects stdout and stderr to the same console the fault records are
// written to, so a fault during a test shows up in the test log.
func TestMain(m *testing.M) {
	fs := termfs.NewLight("termfs", nil, machine.DefaultWriter)
	rtos.Mount(fs, "/dev/console")
	var err error
	os.Stdout, err = os.OpenFile("/dev/console", syscall.O_WRONLY, 0)
	if err != nil {
		panic(err)
	}
	os.Stderr = os.Stdout

	// TODO find a way to pass these from the 'go test' command
	os.Args = append(os.Args, "-test.v")
	os.Args = append(os.Args, "-test.short")

	os.Exit(m.Run())
}

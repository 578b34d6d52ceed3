package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/aymanbagabas/go-pty"
	"github.com/buildkite/shellwords"
)

// run starts the command, typically a serial terminal attached to the
// target, under a pseudo terminal and decodes the record lines it prints.
// It returns when the command exits or on interrupt.
func run(cmdline string, d *decoder) error {
	args, err := shellwords.Split(cmdline)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("empty command")
	}

	p, err := pty.New()
	if err != nil {
		return err
	}
	defer p.Close()

	cmd := p.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}

	sigintr := make(chan os.Signal, 1)
	signal.Notify(sigintr, os.Interrupt)
	defer signal.Stop(sigintr)
	go func() {
		<-sigintr
		cmd.Process.Kill()
	}()
	exited := make(chan struct{})
	go func() {
		cmd.Wait()
		close(exited)
		p.Close()
	}()

	err = d.lines(p, os.Stderr)
	if err != nil && !closedPty(err) {
		cmd.Process.Kill()
		<-exited
		return err
	}
	<-exited
	return nil
}

// closedPty reports whether err is the read error returned once the command
// exited or the pty was closed.
func closedPty(err error) bool {
	return errors.Is(err, syscall.EIO) || errors.Is(err, os.ErrClosed)
}

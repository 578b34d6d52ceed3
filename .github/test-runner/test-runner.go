// test-runner runs a command, typically an emulator or a probe running an
// on-target test binary, as a subprocess and scans its output for passed or
// failed tests. A fault record or kernel panic fails the run. If one such
// message is found, the subprocess will be sent a SIGINT after a short delay.
// The exit code will be 0 if all tests passed, otherwise 1.
package main

import (
	"bufio"
	"log"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

var failPrefixes = []string{
	"fatal error:",
	"panic:",
	"*** exception:",
	"*** kernel panic:",
}

func failed(line string) bool {
	if line == "FAIL" {
		return true
	}
	for _, prefix := range failPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func main() {
	log.Default().SetFlags(0)
	cmd := exec.Command(os.Args[1], os.Args[2:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Fatal("open stdout:", err)
	}

	err = cmd.Start()
	if err != nil {
		log.Fatal("start command:", err)
	}

	scanner := bufio.NewScanner(stdout)
	exiting := false
	code := 0
	for scanner.Scan() {
		log.Println(scanner.Text())
		if exiting {
			continue
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case failed(line):
			code = 1
			fallthrough
		case line == "PASS":
			// A fault is followed by its record, give it time to print.
			exiting = true
			go exitCmd(cmd)
		}
	}
	cmd.Wait()
	os.Exit(code)
}

func exitCmd(cmd *exec.Cmd) {
	time.Sleep(500 * time.Millisecond)
	syscall.Kill(-cmd.Process.Pid, syscall.SIGINT)
}

package main

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/clktmr/faultcore/exc"
)

var recordMagic = binary.LittleEndian.AppendUint32(nil, exc.RecordMagic)

type decoder struct {
	w   io.Writer
	rec *exc.Recorder

	decoded int
	failed  int
}

func newDecoder(w io.Writer) *decoder {
	return &decoder{w: w, rec: exc.NewRecorder(w)}
}

func (d *decoder) show(p []byte) (int, error) {
	r, n, err := exc.DecodeRecord(p)
	if err != nil {
		d.failed++
		return 0, err
	}
	if d.decoded > 0 {
		fmt.Fprintln(d.w)
	}
	d.rec.Display(&r.Info, r.NVIC)
	d.decoded++
	return n, nil
}

// binary decodes a concatenation of records as written by a Saver. After an
// invalid record decoding continues at the next record magic.
func (d *decoder) binary(p []byte) {
	off := 0
	for off < len(p) {
		n, err := d.show(p[off:])
		if err == nil {
			off += n
			continue
		}
		log.Printf("offset %#x: %v", off, err)
		next := bytes.Index(p[off+1:], recordMagic)
		if next < 0 {
			return
		}
		off += 1 + next
	}
}

// lines scans console output for record lines and decodes them. All other
// lines are copied to echo, if not nil.
func (d *decoder) lines(r io.Reader, echo io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 2*len(exc.RecordLinePrefix)+4*exc.RecordMax)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		i := strings.Index(line, exc.RecordLinePrefix)
		if i < 0 {
			if echo != nil {
				fmt.Fprintln(echo, line)
			}
			continue
		}
		p, err := hex.DecodeString(strings.TrimSpace(line[i+len(exc.RecordLinePrefix):]))
		if err != nil {
			d.failed++
			log.Println("record line:", err)
			continue
		}
		if _, err := d.show(p); err != nil {
			log.Println("record line:", err)
		}
	}
	return scanner.Err()
}

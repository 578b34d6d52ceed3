package exc

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisplay(t *testing.T) {
	frame := &Frame{Regs{R4: 0x44, PC: 0x0800_1234, XPSR: 0x0100_0000}}
	nvic := make([]byte, 0x20)
	nvic[0] = 0x01

	tests := map[string]struct {
		info ExcInfo
		nvic []byte
		want []string
	}{
		"imprecise": {
			MakeInfo(VectorBusFault, Classification{CauseBusImprecise, ImpreciseAddr, false}, PhaseInit, 1, 3, frame),
			nil,
			[]string{
				"*** exception: bus fault: imprecise data access (cause 3)\n",
				"phase    init\n",
				"vector   5 (BusFault)\n",
				"address  not available\n",
				"thread   none\n",
				"flags    0x10000004\n",
				"registers (no float context):\n",
				"R4       0x00000044  R5       0x00000000",
				"PC       0x08001234  XPSR     0x01000000\n",
			},
		},
		"precise": {
			MakeInfo(VectorMemManage, Classification{CauseMemData, 0x2000_0000, true}, PhaseTask, 1, 3, new(FPFrame)),
			nvic,
			[]string{
				"address  0x20000000\n",
				"nesting  1\n",
				"thread   0x00000003\n",
				"registers (float context):\n",
				"S16      0x00000000",
				"RESERVED 0x00000000\n",
				"nvic enable:\n  00000001 00000000",
			},
		},
		"no snapshot": {
			MakeInfo(VectorSoftware, Classification{CauseTaskExit, ImpreciseAddr, false}, PhaseTask, 1, 3, nil),
			nil,
			[]string{
				"*** exception: task exited (cause 18)\n",
				"vector   0 (Software)\n",
				"registers not available\n",
			},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			r := NewRecorder(&out)
			r.Display(&tc.info, tc.nvic)
			for _, want := range tc.want {
				if !strings.Contains(out.String(), want) {
					t.Fatalf("expected %q in\n%s", want, out.String())
				}
			}
			for _, line := range strings.SplitAfter(out.String(), "\n") {
				if strings.HasSuffix(line, " \n") {
					t.Fatalf("trailing space in %q", line)
				}
			}

			// Same input renders the same bytes.
			var again bytes.Buffer
			r.Reset(&again)
			r.Display(&tc.info, tc.nvic)
			if again.String() != out.String() {
				t.Fatalf("expected\n%s\ngot\n%s", out.String(), again.String())
			}
		})
	}
}

func TestRecorderLongMessage(t *testing.T) {
	var out bytes.Buffer
	r := NewRecorder(&out)
	msg := bytes.Repeat([]byte("x"), 3*lineSize)
	r.Message("*** ", msg)
	if want := "*** " + string(msg) + "\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestRecorderNilWriter(t *testing.T) {
	r := NewRecorder(nil)
	e := testInfo(new(Frame))
	r.Display(&e, nil)
	r.Message("discarded", nil)
}

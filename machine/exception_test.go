package machine

import (
	"testing"

	"github.com/clktmr/faultcore/exc"
	"github.com/clktmr/faultcore/scb/scbtest"
)

func TestTerminator(t *testing.T) {
	defer ResetOnFault.Store(false)

	tests := map[string]struct {
		reset  bool
		resets int
	}{
		"halt":  {false, 0},
		"reset": {true, 1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			resets := 0
			term := terminator{reset: func() { resets++ }}
			ResetOnFault.Store(tc.reset)
			term.Terminate(exc.VectorHardFault, nil)
			if resets != tc.resets {
				t.Fatalf("expected %v resets, got %v", tc.resets, resets)
			}
		})
	}
}

func TestVectorTableSize(t *testing.T) {
	regs := &scbtest.Fake{}
	c := exc.New(exc.Config{Registers: regs})
	if err := c.Setup(exc.MakeTable(VectorTableSize)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

package delay

import (
	"testing"
	"time"
)

func TestDelay(t *testing.T) {
	// 10 samples of delay at 1 Hz.
	d := NewDelay(10*time.Second, 1)

	ones := make([]float32, 10)
	for i := range ones {
		ones[i] = 1
	}
	out := make([]float32, 10)

	// The first block reads only the buffer's initial silence.
	d.Tick([][]float32{ones}, [][]float32{out})
	for i, s := range out {
		if s != 0 {
			t.Errorf("first block: out[%d] = %v, want 0", i, s)
		}
	}

	// The second block reads what the first one wrote.
	zeros := make([]float32, 10)
	d.Tick([][]float32{zeros}, [][]float32{out})
	for i, s := range out {
		if s != 1 {
			t.Errorf("second block: out[%d] = %v, want 1", i, s)
		}
	}
}

func TestDelayPartialBlocks(t *testing.T) {
	d := NewDelay(4*time.Second, 1)

	in := []float32{1, 2}
	out := make([]float32, 2)

	d.Tick([][]float32{in}, [][]float32{out}) // writes 1, 2
	d.Tick([][]float32{{3, 4}}, [][]float32{out})
	if out[0] != 0 || out[1] != 0 {
		t.Errorf("second block = %v, want zeros", out)
	}
	d.Tick([][]float32{{0, 0}}, [][]float32{out})
	if out[0] != 1 || out[1] != 2 {
		t.Errorf("third block = %v, want [1 2]", out)
	}
	d.Tick([][]float32{{0, 0}}, [][]float32{out})
	if out[0] != 3 || out[1] != 4 {
		t.Errorf("fourth block = %v, want [3 4]", out)
	}
}

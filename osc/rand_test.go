package osc

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/foobiane/randwave/wave"
)

func quietRand(seed int64) *Rand {
	return NewRand(wave.New(
		rand.New(rand.NewSource(seed)),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	))
}

// The first Tick on a fresh Rand generates a default waveform before the
// first sample is emitted.
func TestRandLazyGenerate(t *testing.T) {
	r := quietRand(1)
	if r.tab.Load() != nil {
		t.Fatal("fresh Rand already has a wavetable")
	}

	out := [][]float32{make([]float32, 64)}
	r.Tick(nil, out)

	w := r.tab.Load()
	if w == nil {
		t.Fatal("Tick did not generate a wavetable")
	}
	if got := len(w.Samples); got != wave.DefaultTableSize {
		t.Fatalf("lazy table size %d, want %d", got, wave.DefaultTableSize)
	}
	// With no control input the increment is the base: a whole table per
	// block.
	base := wave.DefaultTableSize / 64
	for j, got := range out[0] {
		if want := w.Samples[(j*base)%wave.DefaultTableSize]; got != want {
			t.Errorf("out[%d] = %v, want %v", j, got, want)
		}
	}
}

func TestRandInvalidGenerate(t *testing.T) {
	r := quietRand(1)
	r.Generate(-5, 4)
	if got := len(r.Wave().Samples); got != wave.DefaultTableSize {
		t.Errorf("Generate(-5, 4): table size %d, want %d", got, wave.DefaultTableSize)
	}
}

// Table of 100, phase 90, increment 30: one sample later the phase must be
// 20, never negative or >= 100.
func TestRandPhaseWrap(t *testing.T) {
	r := quietRand(1)
	r.Generate(100, 4)
	w := r.Wave()
	r.phase = 90

	// Block of 4 makes the base increment 25; a control of 1.2 scales it
	// to 30.
	in := [][]float32{{1.2, 1.2, 1.2, 1.2}}
	out := [][]float32{make([]float32, 4)}
	r.Tick(in, out)

	want := []float32{w.Samples[90], w.Samples[20], w.Samples[50], w.Samples[80]}
	for j := range want {
		if out[0][j] != want[j] {
			t.Errorf("out[%d] = %v, want %v", j, out[0][j], want[j])
		}
	}
	if r.phase != 10 {
		t.Errorf("final phase = %d, want 10", r.phase)
	}
}

// Negative control values walk the table backwards and must wrap up into
// range, not underflow.
func TestRandNegativeRate(t *testing.T) {
	r := quietRand(1)
	r.Generate(16, 2)
	w := r.Wave()

	in := [][]float32{{-1, -1, -1, -1}}
	out := [][]float32{make([]float32, 4)}
	r.Tick(in, out)

	want := []float32{w.Samples[0], w.Samples[12], w.Samples[8], w.Samples[4]}
	for j := range want {
		if out[0][j] != want[j] {
			t.Errorf("out[%d] = %v, want %v", j, out[0][j], want[j])
		}
	}
	if r.phase != 0 {
		t.Errorf("final phase = %d, want 0", r.phase)
	}
}

// A phase left over from a larger table is folded into the new table's
// range instead of reading past its end.
func TestRandStalePhase(t *testing.T) {
	r := quietRand(1)
	r.Generate(2048, 4)
	r.phase = 2047

	r.Generate(16, 2)
	w := r.Wave()

	out := [][]float32{make([]float32, 4)}
	r.Tick(nil, out)

	// 2047 mod 16 = 15.
	if got, want := out[0][0], w.Samples[15]; got != want {
		t.Errorf("out[0] = %v, want table[15] = %v", got, want)
	}
	if r.phase < 0 || r.phase >= 16 {
		t.Errorf("final phase = %d, want [0, 16)", r.phase)
	}
}

func TestRandEndToEnd(t *testing.T) {
	r := quietRand(7)
	r.Generate(16, 2)
	w := r.Wave()

	if got := len(w.Points); got != 4 {
		t.Fatalf("got %d points, want 4", got)
	}

	// Unit control, block of 4: base increment ceil(16/4) = 4.
	in := [][]float32{{1, 1, 1, 1}}
	out := [][]float32{make([]float32, 4)}
	r.Tick(in, out)

	want := []float32{w.Samples[0], w.Samples[4], w.Samples[8], w.Samples[12]}
	for j := range want {
		if out[0][j] != want[j] {
			t.Errorf("out[%d] = %v, want %v", j, out[0][j], want[j])
		}
	}
}

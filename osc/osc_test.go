package osc

import (
	"math"
	"testing"
)

func TestTableStep(t *testing.T) {
	tab := Sine(44100)
	for _, c := range []struct {
		freq float32
		want float32
	}{
		{440, 440 * 128 / 44100.0},
		{20, 20 * 128 / 44100.0},
		{0, 0},
	} {
		got := tab.step(c.freq)
		if diff := float64(got - c.want); math.Abs(diff) > 1e-5 {
			t.Errorf("step(%v) = %v, want %v", c.freq, got, c.want)
		}
	}
}

func TestSquareTick(t *testing.T) {
	// Two table slots at samplerate 4 and 1 Hz: half a slot per sample.
	tab := Square(4, 1, -1)
	in := [][]float32{{1, 1, 1, 1, 1, 1}}
	out := [][]float32{make([]float32, 6)}
	tab.Tick(in, out)

	want := []float32{1, 1, -1, -1, 1, 1}
	for i := range want {
		if out[0][i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[0][i], want[i])
		}
	}
}

func TestSineTickInterpolates(t *testing.T) {
	tab := Sine(44100)
	// A step of exactly half a slot: the second sample is the midpoint of
	// the first two table entries.
	freq := float32(0.5 * 44100 / 128)
	in := [][]float32{{freq, freq}}
	out := [][]float32{make([]float32, 2)}
	tab.Tick(in, out)

	if out[0][0] != tab.tab[0] {
		t.Errorf("out[0] = %v, want %v", out[0][0], tab.tab[0])
	}
	want := (tab.tab[0] + tab.tab[1]) / 2
	if diff := float64(out[0][1] - want); math.Abs(diff) > 1e-6 {
		t.Errorf("out[1] = %v, want %v", out[0][1], want)
	}
}

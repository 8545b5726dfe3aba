package filter

import (
	"math"
	"testing"
)

func TestLowpassSilence(t *testing.T) {
	f := Lowpass(1000, 44100)
	in := [][]float32{make([]float32, 64)}
	out := [][]float32{make([]float32, 64)}
	f.Tick(in, out)
	for i, s := range out[0] {
		if s != 0 {
			t.Errorf("out[%d] = %v, want 0", i, s)
		}
	}
}

func TestLowpassImpulseBounded(t *testing.T) {
	f := Lowpass(1000, 44100)
	in := [][]float32{make([]float32, 1024)}
	out := [][]float32{make([]float32, 1024)}
	in[0][0] = 1
	f.Tick(in, out)

	var energy float64
	for i, s := range out[0] {
		if math.IsNaN(float64(s)) || math.IsInf(float64(s), 0) {
			t.Fatalf("out[%d] = %v", i, s)
		}
		energy += float64(s) * float64(s)
	}
	if energy == 0 {
		t.Error("impulse response is identically zero")
	}
	// The response must die away: the tail should carry much less energy
	// than the whole.
	var tail float64
	for _, s := range out[0][768:] {
		tail += float64(s) * float64(s)
	}
	if tail > energy/10 {
		t.Errorf("impulse response not decaying: tail %v of %v", tail, energy)
	}
}

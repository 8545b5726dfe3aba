// package osc provides oscillators.
package osc

import (
	"math"

	"github.com/foobiane/randwave"
	"github.com/foobiane/randwave/internal/buffer"
)

// Table is a wavetable oscillator. It receives a single input, the frequency
// to play in Hz, and has one output, an appropriate block of samples. Reads
// between table slots are linearly interpolated unless the table was built
// for nearest-neighbour playback.
type Table struct {
	tab        []float32
	phase      float32
	samplerate float32
	nn         bool
}

var _ randwave.Ticker = &Table{}

func (t *Table) Inputs() int    { return 1 }
func (t *Table) Outputs() int   { return 1 }
func (t *Table) String() string { return "osc.Table" }

func (t *Table) Tick(in, out [][]float32) {
	for i, freq := range in[0] {
		if t.nn {
			out[0][i] = t.tab[int(t.phase)]
		} else {
			out[0][i] = buffer.ReadAt(t.tab, t.phase)
		}
		t.phase += t.step(freq)
		for t.phase >= float32(len(t.tab)) {
			t.phase -= float32(len(t.tab))
		}
		for t.phase < 0 {
			t.phase += float32(len(t.tab))
		}
	}
}

// step calculates how far to advance through the table per output sample to
// play the provided frequency.
func (t *Table) step(freq float32) float32 {
	return freq * float32(len(t.tab)) / t.samplerate
}

// Sine returns a Table initialised with a sensible sine wave.
func Sine(samplerate float32) *Table {
	const n = 128
	table := make([]float32, n)
	for i := range table {
		table[i] = float32(math.Sin(math.Pi / float64(n/2) * float64(i)))
	}
	return &Table{
		tab:        table,
		samplerate: samplerate,
	}
}

// Square returns a Table that alternates between high and low.
func Square(samplerate, high, low float32) *Table {
	// lol table
	return &Table{
		tab:        []float32{high, low},
		samplerate: samplerate,
		nn:         true,
	}
}

// Saw returns a Table initialised with a rising ramp.
func Saw(samplerate float32) *Table {
	const n = 256
	table := make([]float32, n)
	for i := range table {
		table[i] = 2*float32(i)/n - 1
	}
	return &Table{
		tab:        table,
		samplerate: samplerate,
	}
}

package osc

import (
	"math"
	"sync/atomic"

	"github.com/foobiane/randwave"
	"github.com/foobiane/randwave/wave"
)

// Rand plays a randomly generated single-period waveform from a wavetable.
//
// Its single input is a rate control. Each block the base increment is
// ceil(tableSize/blockSize), which walks the whole table exactly once per
// block when the control is 1; the control sample scales that increment, so
// 2 plays an octave up, 0.5 an octave down and negative values play the
// table backwards.
//
// Generate runs on a control goroutine and allocates; Tick runs on the audio
// callback and doesn't. The table and its control points are published
// together as a single immutable snapshot through an atomic pointer, and
// Tick re-validates its phase against whichever snapshot it observes, so a
// phase left over from a larger table can never read past the end of a
// smaller replacement.
type Rand struct {
	gen   *wave.Generator
	tab   atomic.Pointer[wave.Wave]
	phase int
}

var _ randwave.Ticker = &Rand{}

// NewRand returns a Rand drawing waveforms from gen. A nil gen gets a
// clock-seeded generator with default logging. No waveform exists until the
// first Generate or Tick call.
func NewRand(gen *wave.Generator) *Rand {
	if gen == nil {
		gen = wave.New(nil, nil)
	}
	return &Rand{gen: gen}
}

// Generate replaces the current waveform with a freshly generated one.
// Invalid arguments are substituted with defaults by the generator.
func (r *Rand) Generate(tableSize, interior int) {
	r.tab.Store(r.gen.Generate(tableSize, interior))
}

// Wave returns the current waveform snapshot, generating one with default
// parameters first if none exists yet.
func (r *Rand) Wave() *wave.Wave {
	if w := r.tab.Load(); w != nil {
		return w
	}
	r.Generate(wave.DefaultTableSize, wave.DefaultPoints)
	return r.tab.Load()
}

func (r *Rand) Inputs() int    { return 1 }
func (r *Rand) Outputs() int   { return 1 }
func (r *Rand) String() string { return "osc.Rand" }

func (r *Rand) Tick(in, out [][]float32) {
	w := r.Wave()
	size := len(w.Samples)
	n := len(out[0])
	if size == 0 || n == 0 {
		return
	}

	i := r.phase
	for i >= size {
		i -= size
	}
	for i < 0 {
		i += size
	}

	base := float32((size + n - 1) / n)
	for j := range out[0] {
		out[0][j] = w.Samples[i]

		ctl := float32(1)
		if len(in) > 0 {
			ctl = in[0][j]
		}
		i += int(math.Round(float64(ctl * base)))
		for i >= size {
			i -= size
		}
		for i < 0 {
			i += size
		}
	}

	r.phase = i
}

// package filter provides filters.
package filter

import (
	"fmt"
	"math"
)

// SVF is a state-variable filter, with the derivation mostly due to
// https://www.dafx14.fau.de/papers/dafx14_aaron_wishnick_time_varying_filters_for_.pdf
// It outputs the lowpass response.
type SVF struct {
	g float32 // cutoff coefficient, tan(pi*fc/sr)
	r float32 // damping
	s [2]float32
}

// Lowpass returns an SVF tuned to the given cutoff frequency.
func Lowpass(cutoff, samplerate float32) *SVF {
	return &SVF{
		g: float32(math.Tan(math.Pi * float64(cutoff) / float64(samplerate))),
		r: 0.15,
	}
}

func (*SVF) Inputs() int      { return 1 }
func (*SVF) Outputs() int     { return 1 }
func (f *SVF) String() string { return fmt.Sprintf("SVF(%v)", f.g) }

func (f *SVF) Tick(in, out [][]float32) {
	var (
		g = f.g
		r = f.r

		hf  = 1.0 / (g*g + 2*r*g + 1)
		h00 = hf
		h01 = -g * hf
		h10 = g * hf
		h11 = (2*r*g + 1) * hf

		x0, x1 float32
	)
	for i, u := range in[0] {
		hs0 := f.s[0]*h00 + f.s[1]*h01
		hs1 := f.s[0]*h10 + f.s[1]*h11

		hu0 := h00 * u
		hu1 := h10 * u

		x0 = g*hu0 + hs0
		x1 = g*hu1 + hs1

		ax0 := -2*r*x0 - x1
		ax1 := x0

		f.s[0] = f.s[0] + 2*g*ax0
		f.s[1] = f.s[1] + 2*g*ax1

		out[0][i] = f.s[0]
	}
}

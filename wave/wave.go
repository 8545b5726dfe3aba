// package wave generates random single-period waveforms.
//
// A random waveform here is a small set of randomly chosen (sample,
// amplitude) pairs joined by trigonometric interpolation into one period of
// a wavetable. The construction is loosely after Xenakis' dynamic stochastic
// synthesis, with a fixed zero crossing at both ends of the period so the
// table loops cleanly.
package wave

import (
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/foobiane/randwave/interp"
)

const (
	// DefaultTableSize is the wavetable size used when a requested size is
	// invalid or when generation happens lazily.
	DefaultTableSize = 2048
	// DefaultPoints is the number of interior interpolation points used
	// when a requested count is invalid.
	DefaultPoints = 4
)

// Point is a (sample, amplitude) pair the interpolated waveform passes
// through. Sample is an index into the wavetable; Amplitude is in [-1, 1].
type Point struct {
	Sample    int
	Amplitude float32
}

// Wave is one generated period: the table itself plus the control points it
// was interpolated through. A Wave is never modified after Generate returns
// it, so it is safe to hand to an audio thread while a replacement is being
// built.
type Wave struct {
	Samples []float32
	Points  []Point
}

// Generator builds Waves. It owns its randomness so that a seeded source
// reproduces identical waveforms, and logs what it does: parameter
// substitutions are warnings, the chosen control points are debug output.
type Generator struct {
	rng *rand.Rand
	log *slog.Logger
}

// New returns a Generator drawing from rng and logging to logger. A nil rng
// is seeded from the clock; a nil logger uses slog.Default.
func New(rng *rand.Rand, logger *slog.Logger) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{rng: rng, log: logger}
}

// Generate builds a fresh Wave of tableSize samples interpolated through
// interior randomly placed control points plus the two zero anchors at the
// table's ends.
//
// Invalid parameters are substituted with defaults rather than failing: a
// table size that cannot hold the two anchors becomes DefaultTableSize, and
// an interior count outside [1, size-2] becomes DefaultPoints (or fewer if
// the corrected table is too small to fit that many). Validation of the
// point count always uses the corrected size, not the requested one.
func (g *Generator) Generate(tableSize, interior int) *Wave {
	g.log.Info("generating waveform", "size", tableSize, "points", interior)

	if tableSize < 2 {
		g.log.Warn("invalid sample count for wavetable, using default",
			"requested", tableSize, "default", DefaultTableSize)
		tableSize = DefaultTableSize
	}
	if interior <= 0 || interior > tableSize-2 {
		d := min(DefaultPoints, tableSize-2)
		g.log.Warn("invalid number of interpolation points, using default",
			"requested", interior, "default", d)
		interior = d
	}

	points := g.points(tableSize, interior)
	for i, p := range points {
		g.log.Debug("control point", "i", i, "sample", p.Sample, "amplitude", p.Amplitude)
	}

	w := &Wave{
		Samples: make([]float32, tableSize),
		Points:  points,
	}
	Interpolate(w.Samples, points)

	g.log.Info("waveform generated", "size", tableSize, "points", len(points))
	return w
}

// points picks interior unique positions in [1, tableSize-2], each with a
// uniform random amplitude in [-1, 1], and brackets them with the two zero
// anchors. The positions are a uniform random subset: shuffle all candidates
// (Fisher-Yates), keep the first interior of them, sort ascending.
func (g *Generator) points(tableSize, interior int) []Point {
	candidates := make([]int, tableSize-2)
	for i := range candidates {
		candidates[i] = i + 1
	}
	for i := len(candidates) - 1; i >= 1; i-- {
		j := g.rng.Intn(i + 1)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	chosen := candidates[:interior]
	sort.Ints(chosen)

	points := make([]Point, interior+2)
	points[0] = Point{Sample: 0, Amplitude: 0}
	for i, s := range chosen {
		points[i+1] = Point{
			Sample:    s,
			Amplitude: float32(g.rng.Float64()*2 - 1),
		}
	}
	points[len(points)-1] = Point{Sample: tableSize - 1, Amplitude: 0}
	return points
}

// Interpolate fills dst with the trigonometric interpolant through points.
// Every index and every control point is mapped to an angle 2*pi*i/len(dst)
// on the unit circle, and each output sample is the cardinal-weighted sum of
// all control amplitudes, hard-clipped to [-1, 1]. O(len(dst)*len(points)).
func Interpolate(dst []float32, points []Point) {
	n := len(points)
	size := float64(len(dst))
	for i := range dst {
		xi := float64(i) / size * (2 * math.Pi)
		sum := 0.0
		for _, p := range points {
			xk := float64(p.Sample) / size * (2 * math.Pi)
			sum += float64(p.Amplitude) * interp.Cardinal(xi-xk, n)
		}
		dst[i] = interp.Clamp(float32(sum), -1, 1)
	}
}

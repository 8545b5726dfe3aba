// package randwave does stochastic wavetable audio.
package randwave

import (
	"fmt"
	"math"
	"strings"
)

// Ticker is something that processes audio a block at a time.
type Ticker interface {
	// Inputs returns the number of expected input channels.
	Inputs() int
	// Outputs returns the number of expected output channels.
	Outputs() int
	// Tick processes a chunk of audio. The first dimension of the input
	// slice is always Inputs, and the first dimension of the output
	// slice is always Outputs. Each individual element of both slices
	// is always the same length. Tickers may overwrite the input buffer.
	Tick(input, output [][]float32)

	fmt.Stringer
}

// Const is a Ticker that always fills its single output with a given value.
type Const struct {
	Val float32
}

var _ Ticker = Const{}

func (c Const) Inputs() int    { return 0 }
func (c Const) Outputs() int   { return 1 }
func (c Const) String() string { return fmt.Sprintf("Const(%v)", c.Val) }

func (c Const) Tick(_, output [][]float32) {
	for i := range output[0] {
		output[0][i] = c.Val
	}
}

// Scale is a Ticker that multiplies its input by a constant and shifts it by a
// constant.
type Scale struct {
	Mul   float32
	Shift float32
}

var _ Ticker = Scale{}

func (s Scale) Inputs() int    { return 1 }
func (s Scale) Outputs() int   { return 1 }
func (s Scale) String() string { return fmt.Sprintf("Scale(%v, %v)", s.Mul, s.Shift) }

func (s Scale) Tick(input, output [][]float32) {
	for i, c := range input[0] {
		output[0][i] = c*s.Mul + s.Shift
	}
}

// Chain is a ticker that applies a sequence of Tickers. The inputs and outputs
// all need to line up.
type Chain struct {
	ts              []Ticker
	inputs, outputs int
	b1, b2          [][]float32
}

var _ Ticker = Chain{}

func Serially(ts ...Ticker) Chain {
	if len(ts) == 0 {
		panic(fmt.Errorf("empty chain"))
	}
	maxChans := ts[0].Inputs()
	for i := 1; i < len(ts); i++ {
		if ts[i-1].Outputs() != ts[i].Inputs() {
			panic(fmt.Errorf(
				"outputs/inputs mismatch:\n%v (%d outputs)\n->\n%v (%d inputs)",
				ts[i-1], ts[i-1].Outputs(), ts[i], ts[i].Inputs()))
		}
		maxChans = max(ts[i-1].Outputs(), maxChans)
		maxChans = max(ts[i].Inputs(), maxChans)
	}
	maxChans = max(ts[len(ts)-1].Outputs(), maxChans)
	b1 := make([][]float32, maxChans)
	for i := range b1 {
		b1[i] = make([]float32, 4096)
	}
	b2 := make([][]float32, maxChans)
	for i := range b2 {
		b2[i] = make([]float32, 4096)
	}
	return Chain{
		ts:      ts,
		inputs:  ts[0].Inputs(),
		outputs: ts[len(ts)-1].Outputs(),
		b1:      b1,
		b2:      b2,
	}
}

func (c Chain) Inputs() int    { return c.inputs }
func (c Chain) Outputs() int   { return c.outputs }
func (c Chain) String() string { return fmt.Sprintf("Chain(%v)", c.ts) }

func (c Chain) Tick(input, output [][]float32) {
	// TODO: we could certainly skip some copies, but also that gets messy.
	n := 0
	if len(output) > 0 {
		n = len(output[0])
	} else if len(input) > 0 {
		n = len(input[0])
	}
	in, out := c.b1, c.b2
	// Every scratch channel gets cut to the block length, not just the ones
	// mirroring the caller's slices: tickers in the middle of the chain run
	// on channels the caller never sees.
	for i := range in {
		in[i] = in[i][:n]
		out[i] = out[i][:n]
		for j := range in[i] {
			in[i][j] = 0
			out[i][j] = 0
		}
	}
	for i := range input {
		copy(in[i], input[i])
	}
	in = in[:len(input)]
	for _, t := range c.ts {
		out = out[:t.Outputs()]
		t.Tick(in, out)
		in, out = out, in
	}
	for i := range output {
		copy(output[i], in[i])
	}
}

// Mixer mixes together a number of inputs, first applying the provided gains.
type Mixer struct {
	Gains []float32
}

var _ Ticker = Mixer{}

// Mix returns a Mixer with the given gains.
func Mix(gains []float32) Mixer {
	return Mixer{Gains: gains}
}

// Sum returns a ticker that sums the given number of inputs down to one,
// reducing their gains to try and keep a roughly constant power.
func Sum(n int) Mixer {
	var (
		g  = float32(1 / math.Sqrt(float64(n)))
		gs = make([]float32, n)
	)
	for i := range gs {
		gs[i] = g
	}
	return Mixer{Gains: gs}
}

func (m Mixer) Inputs() int    { return len(m.Gains) }
func (m Mixer) Outputs() int   { return 1 }
func (m Mixer) String() string { return "Mixer" }

func (m Mixer) Tick(input, output [][]float32) {
	for i := range input[0] {
		output[0][i] = 0
		for j, g := range m.Gains {
			output[0][i] += input[j][i] * g
		}
	}
}

// Concurrent is a Ticker that joins a group of tickers and runs them at the
// same time.
type Concurrent struct {
	ts              []Ticker
	inputs, outputs int
}

func Concurrently(ts ...Ticker) Concurrent {
	ins, outs := 0, 0
	for _, t := range ts {
		ins += t.Inputs()
		outs += t.Outputs()
	}
	return Concurrent{
		ts:      ts,
		inputs:  ins,
		outputs: outs,
	}
}

var _ Ticker = Concurrent{}

func (c Concurrent) Inputs() int  { return c.inputs }
func (c Concurrent) Outputs() int { return c.outputs }

func (c Concurrent) String() string {
	s := make([]string, len(c.ts))
	for i, t := range c.ts {
		s[i] = t.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(s, ","))
}

func (c Concurrent) Tick(inputs, outputs [][]float32) {
	in, out := 0, 0
	for _, t := range c.ts {
		ni, no := in+t.Inputs(), out+t.Outputs()
		t.Tick(inputs[in:ni], outputs[out:no])
		in, out = ni, no
	}
}

// Mult copies a single input to the provided number of outputs.
type Mult struct {
	N int
}

var _ Ticker = Mult{}

func (Mult) Inputs() int      { return 1 }
func (m Mult) Outputs() int   { return m.N }
func (m Mult) String() string { return fmt.Sprintf("Mult(%d)", m.N) }

func (m Mult) Tick(inputs, outputs [][]float32) {
	for _, o := range outputs {
		copy(o, inputs[0])
	}
}

// Amp is a Ticker that just multiplies its two inputs.
type Amp struct{}

func (Amp) Inputs() int    { return 2 }
func (Amp) Outputs() int   { return 1 }
func (Amp) String() string { return "Amp" }

func (Amp) Tick(inputs, outputs [][]float32) {
	for i := range outputs[0] {
		outputs[0][i] = inputs[0][i] * inputs[1][i]
	}
}

// Noop is a Ticker that just copies its inputs to its outputs.
type Noop struct {
	N int
}

func (n Noop) Inputs() int    { return n.N }
func (n Noop) Outputs() int   { return n.N }
func (n Noop) String() string { return fmt.Sprintf("Noop(%d)", n.N) }

func (n Noop) Tick(inputs, outputs [][]float32) {
	for i := range inputs {
		copy(outputs[i], inputs[i])
	}
}

package io

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ebitengine/oto/v3"

	"github.com/foobiane/randwave"
)

// PlayOto runs the provided Ticker through oto's default output device,
// blocking until the context is cancelled. oto is output-only, so the Ticker
// must have no inputs.
func PlayOto(ctx context.Context, t randwave.Ticker) error {
	if n := t.Inputs(); n != 0 {
		return fmt.Errorf("oto: %v wants %d inputs, oto can only play", t, n)
	}
	octx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   samplerate,
		ChannelCount: t.Outputs(),
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return err
	}
	<-ready

	r := &tickReader{t: t, outputs: make([][]float32, t.Outputs())}
	for i := range r.outputs {
		r.outputs[i] = make([]float32, 4096)
	}
	p := octx.NewPlayer(r)
	p.Play()

	<-ctx.Done()

	return p.Close()
}

// tickReader adapts a Ticker to the pull-based reader oto wants: every Read
// runs the Ticker for as many frames as fit in p and interleaves the result
// as little-endian float32s.
type tickReader struct {
	t       randwave.Ticker
	outputs [][]float32
}

func (r *tickReader) Read(p []byte) (int, error) {
	chans := len(r.outputs)
	frames := len(p) / (4 * chans)
	if frames > len(r.outputs[0]) {
		frames = len(r.outputs[0])
	}
	if frames == 0 {
		return 0, nil
	}
	outs := make([][]float32, chans)
	for i := range outs {
		outs[i] = r.outputs[i][:frames]
	}
	r.t.Tick(nil, outs)

	b := p[:0]
	for i := 0; i < frames; i++ {
		for c := range outs {
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(outs[c][i]))
		}
	}
	return frames * 4 * chans, nil
}

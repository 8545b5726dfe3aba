// package io does audio in and out.
package io

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/gen2brain/malgo"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/foobiane/randwave"
)

const samplerate = 44100

// PlayWithDefaults uses the default input and output devices to run the
// provided Ticker. It blocks until the provided context is cancelled.
// Tickers with no inputs get a playback-only device; otherwise the device is
// opened duplex and the capture channels feed the Ticker's inputs. If
// filename is not "", the output is also written as a wav file with that
// name.
func PlayWithDefaults(ctx context.Context, t randwave.Ticker, filename string) error {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		fmt.Fprint(os.Stderr, msg)
	})
	if err != nil {
		return err
	}
	defer func() {
		mctx.Uninit()
		mctx.Free()
	}()

	deviceType := malgo.Playback
	if t.Inputs() > 0 {
		deviceType = malgo.Duplex
	}
	cfg := malgo.DefaultDeviceConfig(deviceType)
	cfg.Capture.Format = malgo.FormatF32
	cfg.Capture.Channels = uint32(max(1, t.Inputs()))
	cfg.Playback.Format = malgo.FormatF32
	cfg.Playback.Channels = uint32(t.Outputs())
	cfg.SampleRate = samplerate

	// TODO: do we know the sizes ahead of the first recv call?
	inputs := make([][]float32, t.Inputs())
	for i := range inputs {
		inputs[i] = make([]float32, 4096)
	}
	outputs := make([][]float32, t.Outputs())
	for i := range outputs {
		outputs[i] = make([]float32, 4096)
	}

	var sink *wavSink
	if filename != "" {
		f, err := os.Create(filename)
		if err != nil {
			return err
		}
		sink = &wavSink{
			enc: wav.NewEncoder(f, samplerate, 16, t.Outputs(), 1),
			f:   f,
			pcm: make([]int, 4096*t.Outputs()),
		}
	}

	recv := func(out, in []byte, framecount uint32) {
		if framecount == 0 {
			return
		}
		// de-interleave the captured samples. Each input sample is 4
		// bytes.
		if len(inputs) > 0 {
			frameSize := 4 * len(inputs)
			for i := 0; i < len(in); i += frameSize {
				for c := range inputs {
					j := i + c*4
					u := binary.LittleEndian.Uint32(in[j:])
					inputs[c][i/frameSize] = math.Float32frombits(u)
				}
			}
		}
		for i, inp := range inputs {
			// Make sure the bounds are correct.
			inputs[i] = inp[:framecount]
		}
		for i, outp := range outputs {
			outputs[i] = outp[:framecount]
		}
		// Run the ticker.
		t.Tick(inputs, outputs)

		// re-interleave the output.
		o := out[:0]
		for i := 0; i < int(framecount); i++ {
			for c := range outputs {
				o = binary.LittleEndian.AppendUint32(o, math.Float32bits(outputs[c][i]))
			}
		}
		// A failed write must not tear down the audio thread; the error is
		// kept and returned once the device stops.
		sink.write(outputs, int(framecount))
	}

	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: recv,
	})
	if err != nil {
		return err
	}
	if err := device.Start(); err != nil {
		return err
	}

	<-ctx.Done()

	// Uninit stops the device before returning, so no callback runs after
	// this and the sink can be read and closed safely.
	device.Uninit()

	return sink.close()
}

// wavSink encodes output blocks as 16 bit PCM. It is written to from the
// device callback, where a failure must not panic: the first error stops
// further writes and is reported from close.
type wavSink struct {
	enc *wav.Encoder
	f   *os.File
	pcm []int
	err error
}

func (s *wavSink) write(outputs [][]float32, n int) {
	if s == nil || s.err != nil {
		return
	}
	s.err = writeWav(s.enc, outputs, n, s.pcm)
}

func (s *wavSink) close() error {
	if s == nil {
		return nil
	}
	err := s.enc.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	if s.err != nil {
		return s.err
	}
	return err
}

// writeWav appends one block of float output to the encoder as interleaved
// 16 bit PCM, using pcm as scratch.
func writeWav(enc *wav.Encoder, outputs [][]float32, n int, pcm []int) error {
	chans := len(outputs)
	pcm = pcm[:n*chans]
	for i := 0; i < n; i++ {
		for c := 0; c < chans; c++ {
			s := outputs[c][i]
			if s > 1 {
				s = 1
			} else if s < -1 {
				s = -1
			}
			pcm[i*chans+c] = int(s * math.MaxInt16)
		}
	}
	return enc.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: chans,
			SampleRate:  samplerate,
		},
		Data:           pcm,
		SourceBitDepth: 16,
	})
}

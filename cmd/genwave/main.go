package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"math/cmplx"
	"math/rand"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mjibson/go-dsp/fft"

	"github.com/foobiane/randwave/wave"
)

var (
	sizeFlag     = flag.Int("size", wave.DefaultTableSize, "wavetable size in samples")
	pointsFlag   = flag.Int("points", wave.DefaultPoints, "number of interior interpolation points")
	seedFlag     = flag.Int64("seed", 0, "random seed; 0 seeds from the clock")
	outFlag      = flag.String("o", "", "wav file to write the waveform to")
	cyclesFlag   = flag.Int("cycles", 1, "number of repetitions of the period to write")
	spectrumFlag = flag.Bool("spectrum", false, "print the magnitudes of the lowest bins of the waveform's spectrum")
	verboseFlag  = flag.Bool("v", false, "log debug output from the generator")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	var rng *rand.Rand
	if *seedFlag != 0 {
		rng = rand.New(rand.NewSource(*seedFlag))
	}

	w := wave.New(rng, logger).Generate(*sizeFlag, *pointsFlag)
	for i, p := range w.Points {
		fmt.Printf("point %d: (%d, %f)\n", i, p.Sample, p.Amplitude)
	}

	if *spectrumFlag {
		printSpectrum(w.Samples)
	}

	if *outFlag != "" {
		if err := writeWav(*outFlag, w.Samples, *cyclesFlag); err != nil {
			log.Fatalf("Writing %q: %v", *outFlag, err)
		}
	}
}

// printSpectrum prints the magnitude of the lowest 16 bins of the waveform's
// discrete spectrum, normalised by the table size.
func printSpectrum(samples []float32) {
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = float64(s)
	}
	bins := fft.FFTReal(data)
	n := min(16, len(bins)/2+1)
	for i := 0; i < n; i++ {
		mag := cmplx.Abs(bins[i]) / float64(len(samples))
		fmt.Printf("bin %2d: %.6f\n", i, mag)
	}
}

func writeWav(filename string, samples []float32, cycles int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	enc := wav.NewEncoder(f, 44100, 16, 1, 1)

	pcm := make([]int, len(samples)*max(1, cycles))
	for c := 0; c < max(1, cycles); c++ {
		for i, s := range samples {
			pcm[c*len(samples)+i] = int(s * math.MaxInt16)
		}
	}
	if err := enc.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  44100,
		},
		Data:           pcm,
		SourceBitDepth: 16,
	}); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}

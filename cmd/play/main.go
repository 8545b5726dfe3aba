package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/foobiane/randwave"
	"github.com/foobiane/randwave/delay"
	"github.com/foobiane/randwave/env"
	"github.com/foobiane/randwave/filter"
	"github.com/foobiane/randwave/io"
	"github.com/foobiane/randwave/osc"
	"github.com/foobiane/randwave/wave"
)

var (
	sizeFlag    = flag.Int("size", wave.DefaultTableSize, "wavetable size in samples")
	pointsFlag  = flag.Int("points", wave.DefaultPoints, "number of interior interpolation points")
	seedFlag    = flag.Int64("seed", 0, "random seed; 0 seeds from the clock")
	rateFlag    = flag.Float64("rate", 1, "rate control; 1 walks the table once per block")
	regenFlag   = flag.Duration("regen", 4*time.Second, "how often to generate a fresh waveform; 0 keeps the first one")
	otoFlag     = flag.Bool("oto", false, "play through oto instead of the default malgo device")
	verboseFlag = flag.Bool("v", false, "log the generated control points")
	profileFlag = flag.Bool("profile", false, "whether to write pprof profiles to the current working directory")
	writeFlag   = flag.Bool("write", false, "if true, writes the output to a wav file in the current directory")
)

func main() {
	flag.Parse()

	if *profileFlag {
		finish, err := startProfiles()
		if err != nil {
			log.Fatalf("Starting profiling: %v", err)
		}
		defer func() {
			if err := finish(); err != nil {
				log.Fatalf("Finishing profiles: %v", err)
			}
		}()
	}
	var filename string
	if *writeFlag {
		filename = fmt.Sprintf("out-%d.wav", time.Now().Unix())
		fmt.Fprintf(os.Stderr, "Writing output to %q\n", filename)
	}

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
	r := osc.NewRand(wave.New(rng, logger))
	r.Generate(*sizeFlag, *pointsFlag)

	t := randwave.Serially(
		randwave.Concurrently(
			randwave.Serially(
				randwave.Const{Val: float32(*rateFlag)},
				r,
				filter.Lowpass(8000, 44100),
			),
			randwave.Serially(
				randwave.Every(1, 2*time.Second, 44100),
				env.AttackDecay(50*time.Millisecond, 1500*time.Millisecond, 44100),
			),
		),
		randwave.Amp{},
		randwave.Mult{N: 2},
		randwave.Concurrently(
			delay.NewDelay(300*time.Millisecond, 44100),
			randwave.Noop{N: 1},
		),
		randwave.Mix([]float32{0.35, 0.9}),
	)

	g, ctx := errgroup.WithContext(interruptContext())

	c := newCopier(t.Outputs())
	ch := randwave.Serially(t, c)

	g.Go(func() error {
		if *otoFlag {
			return io.PlayOto(ctx, ch)
		}
		return io.PlayWithDefaults(ctx, ch, filename)
	})
	if *regenFlag > 0 {
		g.Go(func() error {
			t := time.NewTicker(*regenFlag)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
					r.Generate(*sizeFlag, *pointsFlag)
				}
			}
		})
	}
	g.Go(func() error {
		t0 := time.Now()
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				var s []string
				for _, f := range c.getRMS() {
					s = append(s, fmt.Sprintf("%.2f", f))
				}
				fmt.Printf("\r%.4f: %v", time.Since(t0).Seconds(), s)
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

type copier struct {
	channels int

	mu  sync.Mutex
	rms []float32
}

func newCopier(channels int) *copier {
	return &copier{
		channels: channels,
		rms:      make([]float32, channels),
	}
}

func (c *copier) Inputs() int    { return c.channels }
func (c *copier) Outputs() int   { return c.channels }
func (c *copier) String() string { return fmt.Sprintf("copier(%d)", c.channels) }

func (c *copier) Tick(in, out [][]float32) {
	for i, inp := range in {
		copy(out[i], inp)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, channel := range in {
		rms := float64(0)
		for _, s := range channel {
			rms += float64(s) * float64(s)
		}
		rms /= float64(len(channel))
		c.rms[i] = 0.01*c.rms[i] + 0.99*float32(math.Sqrt(rms))
	}
}

func (c *copier) getRMS() []float32 {
	results := make([]float32, c.channels)
	c.mu.Lock()
	defer c.mu.Unlock()
	copy(results, c.rms)
	return results
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}

func startProfiles() (func() error, error) {
	cpu, err := os.Create("cpu.pprof")
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(cpu); err != nil {
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}

	mem, err := os.Create("mem.pprof")
	if err != nil {
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := cpu.Close(); err != nil {
			return err
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(mem); err != nil {
			return err
		}
		return mem.Close()
	}, nil
}

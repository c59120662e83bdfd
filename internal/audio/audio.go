// Package audio implements the cabinet's audio collaborator. Each frame the
// loop renders one frame's worth of samples from the game's sound source
// into a ring buffer; a sink goroutine drains the ring at the output sample
// rate. The ring fill level feeds back into frame pacing through
// AdjustSpeed so production and consumption stay balanced.
package audio

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/engine"
)

// Speed correction bounds. The ratio never strays more than half a percent
// from real time.
const (
	MinSpeed = 0.995
	MaxSpeed = 1.005
)

// ringFrames is the ring capacity in multiples of the target fill.
const ringFrames = 4

// Audio produces and plays the cabinet's sound.
type Audio struct {
	enabled bool
	rate    beep.SampleRate

	ring   *Ring
	target int

	mu      sync.Mutex
	source  beep.Streamer
	scratch [][2]float64
	perTick float64
	carry   float64

	sink     *sink
	stopOnce sync.Once
	logger   *log.Logger
}

// New creates the audio collaborator for a display running at fps.
// When sound is disabled every method is a no-op and AdjustSpeed is 1.
func New(cfg config.SoundConfig, fps int, logger *log.Logger) *Audio {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &Audio{
		enabled: cfg.Enabled && cfg.Rate > 0,
		rate:    beep.SampleRate(cfg.Rate),
		source:  beep.Silence(-1),
		logger:  logger,
	}
	if !a.enabled {
		return a
	}

	a.target = a.rate.N(time.Duration(cfg.BufferMS) * time.Millisecond)
	if a.target <= 0 {
		a.target = 1
	}
	a.ring = NewRing(a.target * ringFrames)
	a.perTick = float64(cfg.Rate) * engine.FrameMS(fps) / 1000
	a.scratch = make([][2]float64, int(a.perTick)+2)
	return a
}

// Enabled reports whether sound output is active.
func (a *Audio) Enabled() bool { return a.enabled }

// SampleRate returns the output sample rate.
func (a *Audio) SampleRate() beep.SampleRate { return a.rate }

// SetSource sets the stream rendered each frame. Nil means silence.
func (a *Audio) SetSource(s beep.Streamer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s == nil {
		s = beep.Silence(-1)
	}
	a.source = s
}

// Start launches the output sink. It primes the ring with the target fill
// of silence so playback starts without an underrun.
func (a *Audio) Start(out Output) {
	if !a.enabled || a.sink != nil {
		return
	}
	a.ring.Write(make([][2]float64, a.target))
	a.sink = startSink(a.ring, a.rate, out)
	a.logger.Info("audio started", "rate", int(a.rate), "target", a.target)
}

// Tick renders one frame of samples into the ring.
func (a *Audio) Tick() {
	if !a.enabled {
		return
	}

	a.carry += a.perTick
	n := int(a.carry)
	a.carry -= float64(n)
	if n == 0 {
		return
	}

	a.mu.Lock()
	buf := a.scratch[:n]
	got, ok := a.source.Stream(buf)
	if !ok {
		a.source = beep.Silence(-1)
	}
	a.mu.Unlock()

	for i := got; i < n; i++ {
		buf[i] = [2]float64{}
	}
	a.ring.Write(buf)
}

// AdjustSpeed returns the frame duration multiplier derived from the ring
// fill level: above the target fill frames stretch so the sink catches up,
// below it they shrink.
func (a *Audio) AdjustSpeed() float64 {
	if !a.enabled {
		return 1.0
	}
	fill := float64(a.ring.Len())
	target := float64(a.target)
	ratio := 1 + (MaxSpeed-1)*(fill-target)/target
	if ratio < MinSpeed {
		return MinSpeed
	}
	if ratio > MaxSpeed {
		return MaxSpeed
	}
	return ratio
}

// Stop halts the sink. It is safe to call more than once.
func (a *Audio) Stop() error {
	var err error
	a.stopOnce.Do(func() {
		if a.sink == nil {
			return
		}
		err = a.sink.stop()
		a.logger.Info("audio stopped",
			"underruns", a.ring.Underruns(),
			"overruns", a.ring.Overruns(),
		)
	})
	return err
}

// Output receives samples pulled by the sink. Terminals have no audio
// device; the default output discards samples at the device rate.
type Output interface {
	Play(samples [][2]float64) error
}

// Discard is an Output that drops samples.
type Discard struct{}

// Play implements Output.
func (Discard) Play([][2]float64) error { return nil }

// sinkPeriod is how often the sink pulls from the ring.
const sinkPeriod = 10 * time.Millisecond

type sink struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func startSink(src beep.Streamer, rate beep.SampleRate, out Output) *sink {
	if out == nil {
		out = Discard{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &sink{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(sinkPeriod)
		defer ticker.Stop()

		buf := make([][2]float64, rate.N(sinkPeriod))
		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				n := rate.N(now.Sub(last))
				last = now
				if n > len(buf) {
					buf = make([][2]float64, n)
				}
				src.Stream(buf[:n])
				if err := out.Play(buf[:n]); err != nil {
					s.err = err
					return
				}
			}
		}
	}()
	return s
}

func (s *sink) stop() error {
	s.cancel()
	<-s.done
	return s.err
}

package racer

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
)

// Effect is a one-shot sound.
type Effect int

const (
	EffectNone Effect = iota
	EffectCrash
	EffectCheckpoint
	EffectGear
	EffectTimeUp
	EffectCoin
)

type effectShape struct {
	from, to float64 // Hz
	seconds  float64
	noise    bool
}

var effectShapes = map[Effect]effectShape{
	EffectCrash:      {from: 180, to: 40, seconds: 0.6, noise: true},
	EffectCheckpoint: {from: 880, to: 1320, seconds: 0.4},
	EffectGear:       {from: 300, to: 220, seconds: 0.08},
	EffectTimeUp:     {from: 440, to: 110, seconds: 1.2},
	EffectCoin:       {from: 1200, to: 1800, seconds: 0.15},
}

// Engine tone mapping.
const (
	idleHz      = 55.0
	topHz       = 220.0
	engineGain  = 0.18
	effectGain  = 0.3
	staleFrames = 6 // frames without an engine update before fading
	fadeStep    = 0.1
)

// Sound synthesizes the engine note and effects. Tick runs once per frame
// on the engine loop; Stream is pulled by the audio collaborator on the
// same goroutine.
type Sound struct {
	rate beep.SampleRate

	engineHz  float64
	engineVol float64
	targetVol float64
	stale     int
	phase     float64

	effect    effectShape
	effectPos int
	effectLen int
	effPhase  float64
	noise     uint32

	pending Effect
}

// NewSound creates a generator for the given output rate.
func NewSound(rate beep.SampleRate) *Sound {
	if rate <= 0 {
		rate = 44100
	}
	return &Sound{rate: rate, noise: 0x1234567, engineHz: idleHz}
}

// Reset silences everything.
func (s *Sound) Reset() {
	s.engineVol, s.targetVol = 0, 0
	s.stale = 0
	s.effectLen, s.effectPos = 0, 0
	s.pending = EffectNone
}

// Engine sets the engine note for the car's speed in km/h. Speed 0 idles.
func (s *Sound) Engine(speed float64) {
	ratio := math.Min(speed/MaxSpeedHigh, 1)
	s.engineHz = idleHz + (topHz-idleHz)*ratio
	s.targetVol = engineGain
	s.stale = 0
}

// Play queues an effect. A later call in the same frame wins.
func (s *Sound) Play(e Effect) {
	s.pending = e
}

// Tick starts queued effects and fades the engine out when the game stops
// updating it, e.g. while paused or in the menu.
func (s *Sound) Tick() {
	if s.pending != EffectNone {
		if shape, ok := effectShapes[s.pending]; ok {
			s.effect = shape
			s.effectPos = 0
			s.effectLen = s.rate.N(seconds(shape.seconds))
		}
		s.pending = EffectNone
	}

	s.stale++
	if s.stale > staleFrames {
		s.targetVol = 0
	}
	switch {
	case s.engineVol < s.targetVol:
		s.engineVol = math.Min(s.targetVol, s.engineVol+fadeStep*engineGain)
	case s.engineVol > s.targetVol:
		s.engineVol = math.Max(s.targetVol, s.engineVol-fadeStep*engineGain)
	}
}

// Playing reports whether an effect is sounding.
func (s *Sound) Playing() bool { return s.effectPos < s.effectLen }

// Stream implements beep.Streamer. It never ends.
func (s *Sound) Stream(samples [][2]float64) (int, bool) {
	step := s.engineHz / float64(s.rate)
	for i := range samples {
		// Sawtooth engine.
		v := (2*s.phase - 1) * s.engineVol
		s.phase += step
		if s.phase >= 1 {
			s.phase -= math.Floor(s.phase)
		}

		if s.effectPos < s.effectLen {
			v += s.effectSample()
		}
		samples[i] = [2]float64{v, v}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (s *Sound) Err() error { return nil }

func (s *Sound) effectSample() float64 {
	t := float64(s.effectPos) / float64(s.effectLen)
	s.effectPos++
	env := effectGain * (1 - t)
	if s.effect.noise {
		// xorshift
		s.noise ^= s.noise << 13
		s.noise ^= s.noise >> 17
		s.noise ^= s.noise << 5
		return env * (float64(s.noise)/math.MaxUint32*2 - 1)
	}
	hz := s.effect.from + (s.effect.to-s.effect.from)*t
	s.effPhase += hz / float64(s.rate)
	s.effPhase -= math.Floor(s.effPhase)
	if s.effPhase < 0.5 {
		return env
	}
	return -env
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

package engine

import (
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/event"
)

// OutputFlag identifies a digital output of the simulation (lamps, motor).
type OutputFlag int

const (
	OutputStartLamp OutputFlag = iota
	OutputBrakeLamp
	OutputMotor
)

// Outputs are the simulation's digital outputs.
type Outputs interface {
	Init()
	IsSet(flag OutputFlag) bool
	// WriteDigital publishes the current outputs to the device layer.
	WriteDigital()
}

// Simulation is the game logic driven by the state machine.
type Simulation interface {
	Init()
	// Tick advances one frame; logical is false on frames that only
	// animate between logical steps.
	Tick(logical bool)
	ToggleFreezeTimer()
	Outputs() Outputs
}

// Controls is the two-stage input pipeline run on tick frames.
type Controls interface {
	Init()
	// Tick samples digital control inputs.
	Tick()
	// DoGear derives the gear-shift state from the sampled inputs.
	DoGear()
}

// SoundInterrupt is the sound subsystem advanced once per frame.
type SoundInterrupt interface {
	Tick()
}

// Input is the input collaborator.
type Input interface {
	event.Handler
	HasPressed(a core.Action) bool
	// FrameDone commits edge-triggered state so each press is seen once.
	FrameDone()
	SetRumble(active bool, strength float64)
}

// Video is the render collaborator.
type Video interface {
	PrepareFrame()
	RenderFrame()
	SupportsVSync() bool
}

// Audio is the audio collaborator.
type Audio interface {
	// Tick refills the output buffer.
	Tick()
	// AdjustSpeed returns the speed-correction ratio for the next frame.
	AdjustSpeed() float64
	Stop() error
}

// Menu is the menu collaborator.
type Menu interface {
	Populate()
	Init()
	Tick()
	Release() error
}

// Assets loads data needed before a game starts.
type Assets interface {
	RegionalRequired() bool
	LoadRegional() error
}

// Haptic is a force-feedback device.
type Haptic interface {
	Close() error
}

// Clock is the scheduler's time source.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep pauses the calling goroutine.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

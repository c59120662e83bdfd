package racer

import (
	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/registry"
)

// Gears.
const (
	GearLow  = 0
	GearHigh = 1
)

// Controls samples the cabinet input once per logical tick. Digital inputs
// ramp towards their target so keyboard steering behaves like a wheel.
type Controls struct {
	input      registry.Controls
	auto       bool
	steerSpeed float64
	pedalSpeed float64

	Steer float64 // [-1, 1]
	Accel float64 // [0, 1]
	Brake float64 // [0, 1]
	Gear  int

	shifted bool
}

// NewControls creates the sampler.
func NewControls(input registry.Controls, cfg config.ControlsConfig) *Controls {
	return &Controls{
		input:      input,
		auto:       cfg.Gear == "auto",
		steerSpeed: rampStep(cfg.SteerSpeed),
		pedalSpeed: rampStep(cfg.PedalSpeed),
	}
}

// rampStep converts a 1..9 speed setting into a per-tick change.
func rampStep(speed int) float64 {
	if speed <= 0 {
		speed = 1
	}
	return core.ClampF(float64(speed)*0.08, 0.05, 1)
}

// Init centres the wheel, releases the pedals and selects low gear.
func (c *Controls) Init() {
	c.Steer, c.Accel, c.Brake = 0, 0, 0
	c.Gear = GearLow
	c.shifted = false
}

// Tick samples steering and pedals.
func (c *Controls) Tick() {
	c.Steer = approach(c.Steer, c.input.Steering(), c.steerSpeed)
	c.Accel = approach(c.Accel, c.input.Accelerator(), c.pedalSpeed)
	c.Brake = approach(c.Brake, c.input.Brake(), c.pedalSpeed)
}

// DoGear toggles between low and high gear on a gear press. With an
// automatic gearbox the simulation shifts instead.
func (c *Controls) DoGear() {
	if c.auto {
		return
	}
	if c.input.HasPressed(core.ActionGear) {
		c.shift(1 - c.Gear)
	}
}

// Auto reports whether the gearbox is automatic.
func (c *Controls) Auto() bool { return c.auto }

func (c *Controls) shift(gear int) {
	if gear != c.Gear {
		c.Gear = gear
		c.shifted = true
	}
}

// takeShift reports and clears a gear change since the last call.
func (c *Controls) takeShift() bool {
	s := c.shifted
	c.shifted = false
	return s
}

func approach(cur, target, step float64) float64 {
	switch {
	case cur < target:
		cur += step
		if cur > target {
			cur = target
		}
	case cur > target:
		cur -= step
		if cur < target {
			cur = target
		}
	}
	return cur
}

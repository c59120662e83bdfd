package racer

import (
	"math"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Car handling constants, per logical tick.
const (
	MaxSpeedLow  = 190.0 // km/h
	MaxSpeedHigh = 293.0
	OffRoadMax   = 80.0

	accelLow      = 6.0
	accelHigh     = 3.5
	accelHighSlow = 1.2 // high gear below shiftSpeed
	brakeRate     = 9.0
	dragRate      = 0.4
	offRoadDrag   = 3.0
	shiftSpeed    = 120.0

	steerRate   = 0.06
	centrifugal = 0.05
	roadEdge    = 1.0
	maxLateral  = 2.2

	// segPerKmh converts speed into road segments travelled per tick.
	segPerKmh = 0.005

	crashTicks = 45
)

// Car is the player's car.
type Car struct {
	Speed   float64 // km/h
	X       float64 // lateral position, road spans [-1, 1]
	Crash   int     // ticks left in a crash
	OffRoad bool
}

// step advances the car by one logical tick and returns the distance
// covered in segments.
func (c *Car) step(ctl *Controls, curve float64) float64 {
	if c.Crash > 0 {
		c.Crash--
		c.Speed = 0
		if c.Crash == 0 {
			c.X = 0
		}
		return 0
	}

	limit := MaxSpeedLow
	rate := accelLow
	if ctl.Gear == GearHigh {
		limit = MaxSpeedHigh
		rate = accelHigh
		if c.Speed < shiftSpeed {
			rate = accelHighSlow
		}
	}

	c.Speed += ctl.Accel*rate - ctl.Brake*brakeRate - dragRate
	if c.OffRoad {
		c.Speed -= offRoadDrag
		limit = math.Min(limit, OffRoadMax)
	}
	if c.Speed > limit {
		// Over the gear limit the car slows back down instead of snapping.
		c.Speed = math.Max(limit, c.Speed-brakeRate)
	}
	c.Speed = core.ClampF(c.Speed, 0, MaxSpeedHigh)

	if c.Speed > 0 {
		grip := 0.3 + 0.7*c.Speed/MaxSpeedHigh
		ratio := c.Speed / MaxSpeedHigh
		c.X += ctl.Steer * steerRate * grip
		c.X -= curve * ratio * ratio * centrifugal
	}
	c.X = core.ClampF(c.X, -maxLateral, maxLateral)
	c.OffRoad = math.Abs(c.X) > roadEdge

	return c.Speed * segPerKmh
}

// crash stops the car.
func (c *Car) crash() {
	c.Speed = 0
	c.Crash = crashTicks
}

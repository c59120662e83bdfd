package racer

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
)

// Traffic tuning.
const (
	trafficCars    = 6
	trafficSpeed   = 70.0 // km/h at the lowest difficulty
	trafficSpacing = 40   // segments between cars at the lowest difficulty
	minSpacing     = 12
	hitDepth       = 0.8 // segments
	hitWidth       = 0.35
	behindLimit    = 4.0 // segments behind the player before respawning
	hitScale       = 100 // collision grid cells per road unit
)

var lanes = [...]float64{-0.6, 0, 0.6}

// TrafficCar is a car sharing the road. Pos is in segments relative to the
// start of the current course.
type TrafficCar struct {
	Pos   float64
	X     float64
	Speed float64
}

// Traffic manages the cars ahead of the player.
type Traffic struct {
	Cars       []TrafficCar
	rng        *rand.Rand
	difficulty *config.DifficultyManager
}

// NewTraffic creates an empty traffic manager.
func NewTraffic(rng *rand.Rand, difficulty *config.DifficultyManager) *Traffic {
	return &Traffic{rng: rng, difficulty: difficulty}
}

// Reset places cars ahead of pos.
func (t *Traffic) Reset(pos float64, score, ticks int) {
	t.Cars = t.Cars[:0]
	ahead := pos + 20
	for i := 0; i < trafficCars; i++ {
		t.Cars = append(t.Cars, t.spawn(ahead, score, ticks))
		ahead = t.Cars[i].Pos
	}
}

func (t *Traffic) spawn(after float64, score, ticks int) TrafficCar {
	spacing := t.difficulty.Spacing(trafficSpacing, minSpacing, score, ticks)
	return TrafficCar{
		Pos:   after + float64(spacing) + t.rng.Float64()*float64(spacing),
		X:     lanes[t.rng.Intn(len(lanes))],
		Speed: t.difficulty.Speed(trafficSpeed, score, ticks) * (0.8 + 0.4*t.rng.Float64()),
	}
}

// Step moves the traffic and respawns cars the player has left behind.
func (t *Traffic) Step(playerPos float64, score, ticks int) {
	far := playerPos
	for _, c := range t.Cars {
		far = math.Max(far, c.Pos)
	}
	for i := range t.Cars {
		c := &t.Cars[i]
		c.Pos += c.Speed * segPerKmh
		if c.Pos < playerPos-behindLimit {
			*c = t.spawn(far, score, ticks)
			far = c.Pos
		}
	}
}

// Wrap shifts every car back by length when the player crosses onto the
// next course.
func (t *Traffic) Wrap(length float64) {
	for i := range t.Cars {
		t.Cars[i].Pos -= length
	}
}

// Hit returns the index of a car the player at (pos, x) collides with,
// or -1.
func (t *Traffic) Hit(pos, x float64) int {
	player := footprint(pos, x)
	for i, c := range t.Cars {
		if player.Intersects(footprint(c.Pos, c.X)) {
			return i
		}
	}
	return -1
}

// footprint returns the collision box of a car centred at (pos, x) on a
// grid of hitScale cells per unit. Two boxes overlap when the cars are
// closer than hitDepth along the road and hitWidth across it.
func footprint(pos, x float64) core.Rect {
	w := int(math.Round(hitWidth * hitScale))
	d := int(math.Round(hitDepth * hitScale))
	cx := int(math.Round(x * hitScale))
	cy := int(math.Round(pos * hitScale))
	return core.NewRect(cx-w/2, cy-d/2, w, d)
}

// Clear removes all traffic.
func (t *Traffic) Clear() {
	t.Cars = t.Cars[:0]
}

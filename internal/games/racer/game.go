// Package racer implements the driving simulation: a car on a curving
// pseudo-3D road, traffic, a countdown timer and stage progression.
// Two modes are registered: "arcade" chains every course against the
// clock, "timetrial" races one empty course.
package racer

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/assets"
	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/engine"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

func init() {
	registry.Register(registry.GameInfo{ID: "arcade", Title: "Arcade"}, func(env registry.Env) registry.Game {
		return New(env, false)
	})
	registry.Register(registry.GameInfo{ID: "timetrial", Title: "Time Trial"}, func(env registry.Env) registry.Game {
		return New(env, true)
	})
}

// Phase is the race phase.
type Phase int

const (
	PhaseReady Phase = iota // countdown before the start
	PhaseRace
	PhaseOver
)

// Timing, in seconds.
const (
	readySeconds    = 3
	overSeconds     = 6
	overSkipSeconds = 1 // start skips the results after this long
	stageSeconds    = 40
	trialAllowance  = 600 // time trial score is the milliseconds left of this allowance
)

// Scoring.
const (
	checkpointBonus = 10000
	passBonus       = 500
)

// Game is one racing mode.
type Game struct {
	env       registry.Env
	timeTrial bool
	logger    *log.Logger

	controls *Controls
	sound    *Sound
	outputs  *Outputs
	rng      *rand.Rand

	difficulty *config.DifficultyManager
	traffic    *Traffic
	preset     config.DifficultyPreset
	startIndex int

	pack     *assets.Pack
	course   int // index of the course being driven
	car      Car
	pos      float64 // segments into the current course
	velocity float64 // segments per logical tick
	passed   int

	phase      Phase
	phaseTicks int
	timer      int // logical ticks left
	frozen     bool
	ticks      int // logical ticks raced
	frame      uint64
	score      int
	stage      int // courses cleared
	topSpeed   float64
	best       int
	saved      bool
	tickRate   int
	perTick    int
}

// New creates a racer bound to env.
func New(env registry.Env, timeTrial bool) *Game {
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fps := env.Config.Video.FPS
	if fps <= 0 {
		fps = 60
	}
	perTick := engine.FramesPerTick(fps)

	g := &Game{
		env:       env,
		timeTrial: timeTrial,
		logger:    logger,
		controls:  NewControls(env.Input, env.Config.Controls),
		sound:     NewSound(env.SampleRate),
		outputs:   NewOutputs(logger),
		rng:       rand.New(rand.NewSource(env.Seed)),
		preset:    env.Config.Engine.Difficulty,
		perTick:   perTick,
		tickRate:  fps / perTick,
	}
	g.configureDifficulty()
	return g
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	if g.timeTrial {
		return "timetrial"
	}
	return "arcade"
}

// Title returns the mode name.
func (g *Game) Title() string {
	if g.timeTrial {
		return "Time Trial"
	}
	return "Arcade"
}

// Controls returns the control sampler.
func (g *Game) Controls() engine.Controls { return g.controls }

// Sound returns the sound generator.
func (g *Game) Sound() registry.Sound { return g.sound }

// Outputs returns the digital outputs.
func (g *Game) Outputs() engine.Outputs { return g.outputs }

// Configure selects the starting course and difficulty for the next Init.
func (g *Game) Configure(course int, preset config.DifficultyPreset) {
	g.startIndex = course
	if preset != "" {
		g.preset = preset
	}
	g.configureDifficulty()
}

func (g *Game) configureDifficulty() {
	cfg := g.env.Config
	if g.preset != "" {
		config.ApplyPreset(&cfg, g.preset)
	}
	g.difficulty = config.NewDifficultyManager(cfg.Engine.Traffic)
	g.traffic = NewTraffic(g.rng, g.difficulty)
}

// Init starts a new race.
func (g *Game) Init() {
	g.pack = g.activePack()
	g.course = 0
	if n := len(g.pack.Courses); n > 0 {
		g.course = ((g.startIndex % n) + n) % n
	}

	g.controls.Init()
	g.outputs.Init()
	g.sound.Reset()

	g.car = Car{}
	g.pos, g.velocity = 0, 0
	g.passed = 0
	g.ticks, g.frame = 0, 0
	g.score, g.stage = 0, 0
	g.topSpeed = 0
	g.frozen = false
	g.saved = false
	g.setPhase(PhaseReady)

	if g.timeTrial {
		g.timer = 0
		g.traffic.Clear()
	} else {
		g.timer = g.seconds(g.env.Config.Engine.TimeLimit + config.PresetTimeBonus(g.preset) + g.currentCourse().TimeBonus)
		g.traffic.Reset(0, 0, 0)
	}

	g.best = 0
	if g.env.Scores != nil {
		if best, err := g.env.Scores.BestScore(g.ID()); err == nil {
			g.best = best
		} else {
			g.logger.Warn("cannot read best score", "mode", g.ID(), "error", err)
		}
	}
	g.logger.Info("race started", "mode", g.ID(), "course", g.currentCourse().Name, "difficulty", g.preset)
}

func (g *Game) activePack() *assets.Pack {
	if g.env.Tracks != nil {
		if p := g.env.Tracks.Active(); p != nil {
			return p
		}
	}
	p, err := assets.LoadBase("")
	if err != nil {
		// The built-in pack is validated by the assets tests.
		panic(err)
	}
	return p
}

func (g *Game) currentCourse() assets.Course {
	return g.pack.Courses[g.course]
}

func (g *Game) seconds(s int) int {
	if s < 0 {
		s = 0
	}
	return s * g.tickRate
}

func (g *Game) setPhase(p Phase) {
	g.phase = p
	g.phaseTicks = 0
}

// ToggleFreezeTimer stops or restarts the countdown.
func (g *Game) ToggleFreezeTimer() {
	g.frozen = !g.frozen
	g.logger.Debug("freeze timer", "frozen", g.frozen)
}

// Tick advances one display frame. The road scrolls on every frame so
// motion stays smooth between logical steps.
func (g *Game) Tick(logical bool) {
	g.frame++
	g.scroll(g.velocity / float64(g.perTick))

	if !logical {
		return
	}
	g.phaseTicks++

	switch g.phase {
	case PhaseReady:
		g.ready()
	case PhaseRace:
		g.race()
	case PhaseOver:
		g.over()
	}
	g.sound.Engine(g.car.Speed)
	g.updateOutputs()
}

func (g *Game) ready() {
	if g.phaseTicks >= g.seconds(readySeconds) {
		g.setPhase(PhaseRace)
		g.sound.Play(EffectCheckpoint)
	}
}

func (g *Game) race() {
	g.ticks++
	g.autoShift()
	if g.controls.takeShift() {
		g.sound.Play(EffectGear)
	}

	curve := g.currentCourse().CurveAt(int(g.pos))
	g.velocity = g.car.step(g.controls, curve)
	g.topSpeed = math.Max(g.topSpeed, g.car.Speed)
	g.score += int(g.car.Speed) / 10

	if !g.timeTrial {
		g.traffic.Step(g.pos, g.score, g.ticks)
		if g.car.Crash == 0 {
			if i := g.traffic.Hit(g.pos, g.car.X); i >= 0 {
				g.car.crash()
				g.velocity = 0
				g.traffic.Cars[i].Pos += hitDepth * 4
				g.sound.Play(EffectCrash)
				g.logger.Debug("crash", "tick", g.ticks, "x", g.car.X)
			}
		}
	}

	if g.timeTrial {
		return
	}
	if !g.frozen && g.timer > 0 {
		g.timer--
	}
	if g.timer == 0 {
		g.sound.Play(EffectTimeUp)
		g.finish()
	}
}

func (g *Game) autoShift() {
	if !g.controls.Auto() {
		return
	}
	switch {
	case g.controls.Gear == GearLow && g.car.Speed > shiftSpeed+10:
		g.controls.shift(GearHigh)
	case g.controls.Gear == GearHigh && g.car.Speed < shiftSpeed-20:
		g.controls.shift(GearLow)
	}
}

// scroll moves the car along the course, crossing onto the next course
// at the end.
func (g *Game) scroll(d float64) {
	if d <= 0 || g.phase != PhaseRace {
		return
	}
	g.pos += d
	for _, c := range g.traffic.Cars {
		if c.Pos < g.pos && c.Pos >= g.pos-d {
			g.passed++
			g.score += passBonus
		}
	}

	length := float64(g.currentCourse().Length())
	if g.pos < length {
		return
	}
	g.stage++
	g.logger.Info("checkpoint", "course", g.currentCourse().Name, "stage", g.stage, "score", g.score)

	if g.timeTrial || g.stage >= len(g.pack.Courses) {
		g.score += checkpointBonus
		if g.timeTrial {
			elapsed := g.ticks * 1000 / g.tickRate
			g.score = core.Max(0, trialAllowance*1000-elapsed)
		}
		g.pos = length
		g.velocity = 0
		g.sound.Play(EffectCheckpoint)
		g.finish()
		return
	}

	g.pos -= length
	g.traffic.Wrap(length)
	g.course = (g.course + 1) % len(g.pack.Courses)
	g.score += checkpointBonus
	g.timer += g.seconds(stageSeconds + g.currentCourse().TimeBonus)
	g.sound.Play(EffectCheckpoint)
}

// finish ends the race and records it once.
func (g *Game) finish() {
	if g.phase == PhaseOver {
		return
	}
	g.setPhase(PhaseOver)
	g.save()
}

func (g *Game) save() {
	if g.saved || g.env.Scores == nil {
		return
	}
	g.saved = true
	run := storage.Run{
		Mode:     g.ID(),
		Course:   g.pack.Courses[g.startCourse()].Name,
		Player:   g.env.Player,
		Score:    g.score,
		Stage:    g.stage,
		TopSpeed: int(g.topSpeed),
	}
	if _, err := g.env.Scores.SaveRun(run); err != nil {
		g.logger.Error("cannot save run", "error", err)
		return
	}
	if g.score > g.best {
		g.best = g.score
	}
}

func (g *Game) startCourse() int {
	n := len(g.pack.Courses)
	return ((g.startIndex % n) + n) % n
}

func (g *Game) over() {
	// The car coasts to a stop.
	g.car.Speed = math.Max(0, g.car.Speed-brakeRate)

	skip := g.phaseTicks >= g.seconds(overSkipSeconds) &&
		(g.env.Input != nil && g.env.Input.HasPressed(core.ActionStart))
	if g.phaseTicks < g.seconds(overSeconds) && !skip {
		return
	}

	if g.env.Config.Menu.Enabled && g.env.Requester != nil {
		if err := g.env.Requester.Request(engine.StateMenuInit); err != nil {
			g.logger.Error("cannot return to menu", "error", err)
		}
		return
	}
	g.Init()
}

func (g *Game) updateOutputs() {
	blink := (g.phaseTicks/(g.tickRate/2+1))%2 == 0
	g.outputs.Set(engine.OutputStartLamp, g.phase != PhaseRace && blink)
	g.outputs.Set(engine.OutputBrakeLamp, g.controls.Brake > 0.1)
	g.outputs.Set(engine.OutputMotor, g.car.Crash > 0 || (g.car.OffRoad && g.car.Speed > 0))
}

// State accessors for the renderer and tests.

// Phase returns the race phase.
func (g *Game) Phase() Phase { return g.phase }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Stage returns the number of courses cleared.
func (g *Game) Stage() int { return g.stage }

// TimeLeft returns the remaining time in whole seconds, rounded up.
func (g *Game) TimeLeft() int {
	return (g.timer + g.tickRate - 1) / g.tickRate
}

// Elapsed returns the raced time in seconds.
func (g *Game) Elapsed() float64 {
	return float64(g.ticks) / float64(g.tickRate)
}

// Frozen reports whether the countdown is frozen.
func (g *Game) Frozen() bool { return g.frozen }

// Car returns the player's car.
func (g *Game) Car() Car { return g.car }

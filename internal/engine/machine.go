package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Deps are the collaborators the state machine drives.
type Deps struct {
	Simulation Simulation
	Controls   Controls
	Sound      SoundInterrupt
	Input      Input
	Menu       Menu
	Assets     Assets
	// RumbleStrength scales the motor output into a rumble intensity.
	RumbleStrength float64
}

// Machine sequences the execution states and runs one frame of work per
// call to Frame.
type Machine struct {
	ctx        *Context
	dispatcher *Dispatcher
	deps       Deps
	logger     *log.Logger
}

// NewMachine creates a state machine over ctx.
func NewMachine(ctx *Context, dispatcher *Dispatcher, deps Deps, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Machine{
		ctx:        ctx,
		dispatcher: dispatcher,
		deps:       deps,
		logger:     logger,
	}
}

// Context returns the execution context.
func (m *Machine) Context() *Context { return m.ctx }

// Boot leaves StateBoot, entering the menu or going straight to a game.
func (m *Machine) Boot(menuEnabled bool) error {
	next := StateGameInit
	if menuEnabled {
		next = StateMenuInit
	}
	return m.ctx.Request(next)
}

// Frame runs one iteration of per-frame work followed by the branch for the
// active state.
func (m *Machine) Frame() {
	m.ctx.advanceFrame()
	tick := m.ctx.TickFrame()

	m.dispatcher.Drain()

	if tick {
		m.deps.Controls.Tick()
		m.deps.Controls.DoGear()
	}

	switch m.ctx.State() {
	case StateGame:
		m.game(tick)
	case StateGameInit:
		m.gameInit()
	case StateMenu:
		m.deps.Menu.Tick()
		m.deps.Input.FrameDone()
		m.deps.Sound.Tick()
	case StateMenuInit:
		m.deps.Controls.Init()
		m.deps.Simulation.Outputs().Init()
		m.deps.Menu.Init()
		m.transition(StateMenu)
	}

	outputs := m.deps.Simulation.Outputs()
	outputs.WriteDigital()
	if m.ctx.TickFrame() {
		m.deps.Input.SetRumble(outputs.IsSet(OutputMotor), m.deps.RumbleStrength)
	}
}

func (m *Machine) game(tick bool) {
	in := m.deps.Input

	if tick {
		if in.HasPressed(core.ActionTimer) {
			m.deps.Simulation.ToggleFreezeTimer()
		}
		if in.HasPressed(core.ActionPause) {
			m.ctx.paused = !m.ctx.paused
			m.logger.Debug("pause toggled", "paused", m.ctx.paused)
		}
		if in.HasPressed(core.ActionMenu) {
			m.transition(StateMenuInit)
		}
	}

	step := in.HasPressed(core.ActionStep)
	advance := !m.ctx.paused || step

	if advance {
		m.deps.Simulation.Tick(tick)
	}
	if tick {
		in.FrameDone()
	}
	if advance {
		m.deps.Sound.Tick()
	}
}

func (m *Machine) gameInit() {
	assets := m.deps.Assets
	if assets != nil && assets.RegionalRequired() {
		if err := assets.LoadRegional(); err != nil {
			m.logger.Error("cannot start game", "error", err)
			m.ctx.RequestQuit()
			return
		}
	}

	m.ctx.tickFrame = true
	m.ctx.paused = false
	m.deps.Simulation.Init()
	m.transition(StateGame)
}

// transition moves along an edge the machine itself owns. A quit that
// happened earlier in the frame wins.
func (m *Machine) transition(to State) {
	if m.ctx.State() == StateQuit {
		return
	}
	if err := m.ctx.Request(to); err != nil {
		m.logger.Error("state machine", "error", err)
	}
}

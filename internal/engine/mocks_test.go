package engine

import (
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/event"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(0, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) totalSleep() time.Duration {
	var total time.Duration
	for _, d := range c.sleeps {
		total += d
	}
	return total
}

type mockOutputs struct {
	motor  bool
	inits  int
	writes int
}

func (o *mockOutputs) Init()                      { o.inits++ }
func (o *mockOutputs) IsSet(flag OutputFlag) bool { return flag == OutputMotor && o.motor }
func (o *mockOutputs) WriteDigital()              { o.writes++ }

type mockSim struct {
	outputs       *mockOutputs
	inits         int
	ticks         int
	logicalTicks  int
	freezeToggles int
}

func (s *mockSim) Init() { s.inits++ }

func (s *mockSim) Tick(logical bool) {
	s.ticks++
	if logical {
		s.logicalTicks++
	}
}

func (s *mockSim) ToggleFreezeTimer() { s.freezeToggles++ }
func (s *mockSim) Outputs() Outputs   { return s.outputs }

type mockControls struct {
	inits, ticks, gears int
}

func (c *mockControls) Init()   { c.inits++ }
func (c *mockControls) Tick()   { c.ticks++ }
func (c *mockControls) DoGear() { c.gears++ }

type mockSound struct{ ticks int }

func (s *mockSound) Tick() { s.ticks++ }

type rumbleCall struct {
	active   bool
	strength float64
}

type mockInput struct {
	pressed    core.ActionSet
	frameDones int
	rumbles    []rumbleCall
	forwarded  []event.Event
	closeJoys  int
	order      *[]string
}

func (i *mockInput) HandleKeyDown(e event.KeyDown)     { i.forwarded = append(i.forwarded, e) }
func (i *mockInput) HandleKeyUp(e event.KeyUp)         { i.forwarded = append(i.forwarded, e) }
func (i *mockInput) HandleJoyAxis(e event.JoyAxis)     { i.forwarded = append(i.forwarded, e) }
func (i *mockInput) HandleJoyButtonDown(event.JoyButton) {}
func (i *mockInput) HandleJoyButtonUp(event.JoyButton)   {}
func (i *mockInput) HandleControllerAxis(event.ControllerAxis)         {}
func (i *mockInput) HandleControllerButtonDown(event.ControllerButton) {}
func (i *mockInput) HandleControllerButtonUp(event.ControllerButton)   {}
func (i *mockInput) HandleJoyHat(e event.JoyHat)       { i.forwarded = append(i.forwarded, e) }
func (i *mockInput) OpenJoy(e event.DeviceAdded)       { i.forwarded = append(i.forwarded, e) }

func (i *mockInput) CloseJoy() {
	i.closeJoys++
	if i.order != nil {
		*i.order = append(*i.order, "input")
	}
}

func (i *mockInput) HasPressed(a core.Action) bool { return i.pressed.Has(a) }

// FrameDone clears presses, mirroring the edge commit of the real input.
func (i *mockInput) FrameDone() {
	i.frameDones++
	i.pressed.Clear()
}

func (i *mockInput) SetRumble(active bool, strength float64) {
	i.rumbles = append(i.rumbles, rumbleCall{active, strength})
}

type mockMenu struct {
	populates, inits, ticks, releases int
	onTick                            func()
	order                             *[]string
	releaseErr                        error
}

func (m *mockMenu) Populate() { m.populates++ }
func (m *mockMenu) Init()     { m.inits++ }

func (m *mockMenu) Tick() {
	m.ticks++
	if m.onTick != nil {
		m.onTick()
	}
}

func (m *mockMenu) Release() error {
	m.releases++
	if m.order != nil {
		*m.order = append(*m.order, "menu")
	}
	return m.releaseErr
}

type mockAssets struct {
	required bool
	err      error
	loads    int
}

func (a *mockAssets) RegionalRequired() bool { return a.required }

func (a *mockAssets) LoadRegional() error {
	a.loads++
	return a.err
}

type mockVideo struct {
	vsync             bool
	prepares, renders int
}

func (v *mockVideo) PrepareFrame()       { v.prepares++ }
func (v *mockVideo) RenderFrame()        { v.renders++ }
func (v *mockVideo) SupportsVSync() bool { return v.vsync }

type mockAudio struct {
	ratio   float64
	ticks   int
	stops   int
	stopErr error
	order   *[]string
}

func (a *mockAudio) Tick() { a.ticks++ }

func (a *mockAudio) AdjustSpeed() float64 {
	if a.ratio == 0 {
		return 1.0
	}
	return a.ratio
}

func (a *mockAudio) Stop() error {
	a.stops++
	if a.order != nil {
		*a.order = append(*a.order, "audio")
	}
	return a.stopErr
}

type mockHaptic struct {
	closes   int
	closeErr error
	order    *[]string
}

func (h *mockHaptic) Close() error {
	h.closes++
	if h.order != nil {
		*h.order = append(*h.order, "haptic")
	}
	return h.closeErr
}

// harness wires a machine over mocks.
type harness struct {
	ctx      *Context
	queue    *event.Queue
	sim      *mockSim
	controls *mockControls
	sound    *mockSound
	input    *mockInput
	menu     *mockMenu
	assets   *mockAssets
	machine  *Machine
}

func newHarness(rate int) *harness {
	h := &harness{
		ctx:      NewContext(rate, nil),
		queue:    event.NewQueue(16),
		sim:      &mockSim{outputs: &mockOutputs{}},
		controls: &mockControls{},
		sound:    &mockSound{},
		input:    &mockInput{},
		menu:     &mockMenu{},
		assets:   &mockAssets{},
	}
	dispatcher := NewDispatcher(h.ctx, h.queue, h.input, nil)
	h.machine = NewMachine(h.ctx, dispatcher, Deps{
		Simulation:     h.sim,
		Controls:       h.controls,
		Sound:          h.sound,
		Input:          h.input,
		Menu:           h.menu,
		Assets:         h.assets,
		RumbleStrength: 0.75,
	}, nil)
	return h
}

// enter puts the context in state s, as if reached by earlier frames.
func (h *harness) enter(s State) {
	h.ctx.state = s
}

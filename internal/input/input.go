// Package input implements the cabinet's input collaborator. It receives
// forwarded platform events, maps keys and pad buttons to actions and keeps
// per-frame press/release edges that the engine and the simulation query.
package input

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/event"
)

const axisMax = 32767

// Rumbler receives force-feedback intensities in [0, 1].
type Rumbler interface {
	Rumble(intensity float64)
}

// Input tracks the cabinet's controls.
type Input struct {
	keys     map[core.Action]key.Binding
	keyHeld  map[string]bool
	pad      map[int]core.Action
	axis     config.AxisConfig
	deadzone int

	held     core.ActionSet
	pressed  core.ActionSet
	released core.ActionSet
	padHeld  core.ActionSet
	hat      uint8

	steer, accel, brake float64
	analog              bool

	joys    map[int]bool
	rumbler Rumbler
	logger  *log.Logger
}

// New builds an input collaborator from the controls configuration.
// Unknown action names are an error.
func New(cfg config.ControlsConfig, logger *log.Logger) (*Input, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	in := &Input{
		keys:     make(map[core.Action]key.Binding),
		keyHeld:  make(map[string]bool),
		pad:      make(map[int]core.Action),
		axis:     cfg.Axis,
		deadzone: cfg.Deadzone,
		joys:     make(map[int]bool),
		logger:   logger,
	}

	for name, keys := range cfg.Keys {
		a, ok := core.ActionByName(name)
		if !ok {
			return nil, fmt.Errorf("input: unknown action %q in controls.keys", name)
		}
		in.keys[a] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(helpKeys(keys), a.String()),
		)
	}
	for name, button := range cfg.Pad {
		a, ok := core.ActionByName(name)
		if !ok {
			return nil, fmt.Errorf("input: unknown action %q in controls.pad", name)
		}
		in.pad[button] = a
	}
	return in, nil
}

// SetRumbler attaches a force-feedback device. Nil detaches it.
func (in *Input) SetRumbler(r Rumbler) {
	in.rumbler = r
}

// Binding returns the key binding for an action, used for help text.
func (in *Input) Binding(a core.Action) (key.Binding, bool) {
	b, ok := in.keys[a]
	return b, ok
}

// Help returns one "keys  action" line per bound action, in action order.
func (in *Input) Help() []string {
	var lines []string
	for _, a := range core.Actions() {
		b, ok := in.keys[a]
		if !ok || !b.Enabled() {
			continue
		}
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%-14s %s", h.Key, h.Desc))
	}
	return lines
}

// IsPressed reports whether an action is currently held.
func (in *Input) IsPressed(a core.Action) bool { return in.held.Has(a) }

// HasPressed reports whether an action went down since the last FrameDone.
func (in *Input) HasPressed(a core.Action) bool { return in.pressed.Has(a) }

// HasReleased reports whether an action went up since the last FrameDone.
func (in *Input) HasReleased(a core.Action) bool { return in.released.Has(a) }

// FrameDone ends an input frame: press and release edges are cleared,
// held state carries over.
func (in *Input) FrameDone() {
	in.pressed.Clear()
	in.released.Clear()
}

// Steering returns the wheel position in [-1, 1]. An analog axis outside
// the deadzone wins over the digital left/right actions.
func (in *Input) Steering() float64 {
	if in.analog && in.steer != 0 {
		return in.steer
	}
	switch {
	case in.held.Has(core.ActionLeft) && !in.held.Has(core.ActionRight):
		return -1
	case in.held.Has(core.ActionRight) && !in.held.Has(core.ActionLeft):
		return 1
	}
	return 0
}

// Accelerator returns the pedal position in [0, 1].
func (in *Input) Accelerator() float64 {
	if in.held.Has(core.ActionAccel) {
		return 1
	}
	return in.accel
}

// Brake returns the pedal position in [0, 1].
func (in *Input) Brake() float64 {
	if in.held.Has(core.ActionBrake) {
		return 1
	}
	return in.brake
}

// SetRumble drives the force-feedback device. Inactive means stop.
func (in *Input) SetRumble(active bool, strength float64) {
	if in.rumbler == nil {
		return
	}
	if !active {
		in.rumbler.Rumble(0)
		return
	}
	in.rumbler.Rumble(strength)
}

// HandleKeyDown presses every action bound to the key. Repeats of a key
// that is already down are ignored.
func (in *Input) HandleKeyDown(e event.KeyDown) {
	if in.keyHeld[e.Key] {
		return
	}
	in.keyHeld[e.Key] = true
	for a, b := range in.keys {
		if key.Matches(e, b) {
			in.press(a)
		}
	}
}

// HandleKeyUp releases actions bound to the key unless another held key
// still maps to them.
func (in *Input) HandleKeyUp(e event.KeyUp) {
	if !in.keyHeld[e.Key] {
		return
	}
	delete(in.keyHeld, e.Key)
	for a, b := range in.keys {
		if !key.Matches(e, b) || in.keyStillHolds(b) || in.padHeld.Has(a) {
			continue
		}
		in.release(a)
	}
}

func (in *Input) keyStillHolds(b key.Binding) bool {
	for _, k := range b.Keys() {
		if in.keyHeld[k] {
			return true
		}
	}
	return false
}

// HandleJoyAxis updates the analog steering wheel and pedals.
func (in *Input) HandleJoyAxis(e event.JoyAxis) {
	in.axisMotion(e.Axis, e.Value)
}

// HandleControllerAxis treats mapped controller axes like joystick axes.
func (in *Input) HandleControllerAxis(e event.ControllerAxis) {
	in.axisMotion(e.Axis, e.Value)
}

func (in *Input) axisMotion(axis int, value int16) {
	v := int(value)
	switch axis {
	case in.axis.Steer:
		in.analog = true
		if v > -in.deadzone && v < in.deadzone {
			in.steer = 0
			return
		}
		in.steer = core.ClampF(float64(v)/axisMax, -1, 1)
	case in.axis.Accel:
		in.accel = pedal(v)
	case in.axis.Brake:
		in.brake = pedal(v)
	}
}

// pedal maps a full-range trigger axis onto [0, 1].
func pedal(v int) float64 {
	return core.ClampF(float64(v+axisMax)/(2*axisMax), 0, 1)
}

// HandleJoyButtonDown presses the action mapped to the button.
func (in *Input) HandleJoyButtonDown(e event.JoyButton) {
	in.padButton(e.Button, true)
}

// HandleJoyButtonUp releases the action mapped to the button.
func (in *Input) HandleJoyButtonUp(e event.JoyButton) {
	in.padButton(e.Button, false)
}

// HandleControllerButtonDown presses the action mapped to the button.
func (in *Input) HandleControllerButtonDown(e event.ControllerButton) {
	in.padButton(e.Button, true)
}

// HandleControllerButtonUp releases the action mapped to the button.
func (in *Input) HandleControllerButtonUp(e event.ControllerButton) {
	in.padButton(e.Button, false)
}

func (in *Input) padButton(button int, down bool) {
	a, ok := in.pad[button]
	if !ok {
		return
	}
	if down {
		in.padHeld.Set(a)
		in.press(a)
		return
	}
	in.padHeld.Unset(a)
	in.release(a)
}

// HandleJoyHat maps the d-pad onto steering and pedals.
func (in *Input) HandleJoyHat(e event.JoyHat) {
	dirs := []struct {
		bit    uint8
		action core.Action
	}{
		{event.HatUp, core.ActionAccel},
		{event.HatDown, core.ActionBrake},
		{event.HatLeft, core.ActionLeft},
		{event.HatRight, core.ActionRight},
	}
	for _, d := range dirs {
		was := in.hat&d.bit != 0
		now := e.Value&d.bit != 0
		switch {
		case now && !was:
			in.padHeld.Set(d.action)
			in.press(d.action)
		case was && !now:
			in.padHeld.Unset(d.action)
			in.release(d.action)
		}
	}
	in.hat = e.Value
}

// OpenJoy records a hot-plugged pad.
func (in *Input) OpenJoy(e event.DeviceAdded) {
	in.joys[e.Device] = true
	in.logger.Info("pad connected", "device", e.Device, "pads", len(in.joys))
}

// CloseJoy releases every pad and anything they held down.
func (in *Input) CloseJoy() {
	if len(in.joys) > 0 {
		in.logger.Info("pads closed", "count", len(in.joys))
	}
	for d := range in.joys {
		delete(in.joys, d)
	}
	for _, a := range core.Actions() {
		if in.padHeld.Has(a) {
			in.release(a)
		}
	}
	in.padHeld.Clear()
	in.hat = event.HatCentered
	in.steer, in.accel, in.brake = 0, 0, 0
	in.analog = false
}

// Pads returns the number of connected pads.
func (in *Input) Pads() int { return len(in.joys) }

func (in *Input) press(a core.Action) {
	if !in.held.Has(a) {
		in.pressed.Set(a)
	}
	in.held.Set(a)
}

func (in *Input) release(a core.Action) {
	if in.held.Has(a) {
		in.released.Set(a)
	}
	in.held.Unset(a)
}

func helpKeys(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	sort.Strings(names)
	return strings.Join(names, "/")
}

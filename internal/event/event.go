// Package event defines the platform input events consumed by the engine's
// dispatcher. Each recognized kind is its own type; kinds that the input
// collaborator handles implement Forwarder so the dispatcher never needs an
// exhaustive switch.
package event

// Event is any platform input event. Unrecognized implementations are
// dropped by the dispatcher.
type Event interface {
	event()
}

// Handler receives forwarded events. The input collaborator implements it.
type Handler interface {
	HandleKeyDown(e KeyDown)
	HandleKeyUp(e KeyUp)
	HandleJoyAxis(e JoyAxis)
	HandleJoyButtonDown(e JoyButton)
	HandleJoyButtonUp(e JoyButton)
	HandleControllerAxis(e ControllerAxis)
	HandleControllerButtonDown(e ControllerButton)
	HandleControllerButtonUp(e ControllerButton)
	HandleJoyHat(e JoyHat)
	OpenJoy(e DeviceAdded)
	CloseJoy()
}

// Forwarder is implemented by every event kind the input collaborator
// understands.
type Forwarder interface {
	Event
	Forward(h Handler)
}

// KeyEscape is the key name that always quits.
const KeyEscape = "esc"

// Quit is an OS-level close request (window close, SIGTERM, ctrl+c).
type Quit struct{}

// KeyDown is a key press. Key uses bubbletea key names ("up", "f1", "a").
type KeyDown struct {
	Key string
}

// String returns the key name so bindings can match it directly.
func (e KeyDown) String() string { return e.Key }

// IsEscape reports whether this press is the Escape key.
func (e KeyDown) IsEscape() bool { return e.Key == KeyEscape }

// KeyUp is a key release.
type KeyUp struct {
	Key string
}

// String returns the key name.
func (e KeyUp) String() string { return e.Key }

// JoyAxis is raw joystick axis motion.
type JoyAxis struct {
	Device int
	Axis   int
	Value  int16
}

// JoyButton is a raw joystick button change.
type JoyButton struct {
	Device int
	Button int
}

// JoyButtonDown and JoyButtonUp carry a JoyButton payload.
type (
	JoyButtonDown struct{ JoyButton }
	JoyButtonUp   struct{ JoyButton }
)

// ControllerAxis is mapped game-controller axis motion.
type ControllerAxis struct {
	Device int
	Axis   int
	Value  int16
}

// ControllerButton is a mapped game-controller button change.
type ControllerButton struct {
	Device int
	Button int
}

// ControllerButtonDown and ControllerButtonUp carry a ControllerButton payload.
type (
	ControllerButtonDown struct{ ControllerButton }
	ControllerButtonUp   struct{ ControllerButton }
)

// Hat directions, combinable as a bitmask.
const (
	HatCentered uint8 = 0
	HatUp       uint8 = 1 << 0
	HatRight    uint8 = 1 << 1
	HatDown     uint8 = 1 << 2
	HatLeft     uint8 = 1 << 3
)

// JoyHat is d-pad hat motion.
type JoyHat struct {
	Device int
	Hat    int
	Value  uint8
}

// DeviceAdded reports a hot-plugged pad.
type DeviceAdded struct {
	Device int
}

// DeviceRemoved reports an unplugged pad.
type DeviceRemoved struct {
	Device int
}

// Resize reports a new terminal size. The dispatcher does not forward it;
// the platform consumes it directly.
type Resize struct {
	Width, Height int
}

func (Quit) event()                 {}
func (KeyDown) event()              {}
func (KeyUp) event()                {}
func (JoyAxis) event()              {}
func (JoyButtonDown) event()        {}
func (JoyButtonUp) event()          {}
func (ControllerAxis) event()       {}
func (ControllerButtonDown) event() {}
func (ControllerButtonUp) event()   {}
func (JoyHat) event()               {}
func (DeviceAdded) event()          {}
func (DeviceRemoved) event()        {}
func (Resize) event()               {}

func (e KeyDown) Forward(h Handler)              { h.HandleKeyDown(e) }
func (e KeyUp) Forward(h Handler)                { h.HandleKeyUp(e) }
func (e JoyAxis) Forward(h Handler)              { h.HandleJoyAxis(e) }
func (e JoyButtonDown) Forward(h Handler)        { h.HandleJoyButtonDown(e.JoyButton) }
func (e JoyButtonUp) Forward(h Handler)          { h.HandleJoyButtonUp(e.JoyButton) }
func (e ControllerAxis) Forward(h Handler)       { h.HandleControllerAxis(e) }
func (e ControllerButtonDown) Forward(h Handler) { h.HandleControllerButtonDown(e.ControllerButton) }
func (e ControllerButtonUp) Forward(h Handler)   { h.HandleControllerButtonUp(e.ControllerButton) }
func (e JoyHat) Forward(h Handler)               { h.HandleJoyHat(e) }
func (e DeviceAdded) Forward(h Handler)          { h.OpenJoy(e) }
func (e DeviceRemoved) Forward(h Handler)        { h.CloseJoy() }

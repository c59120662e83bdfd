package core

// Action represents a semantic cabinet control, abstracted from physical keys
// and pad buttons. Collaborators query actions, never raw key codes.
type Action int

const (
	ActionNone   Action = iota
	ActionAccel         // Up arrow - accelerator pedal
	ActionBrake         // Down arrow - brake pedal
	ActionLeft          // Left arrow - steer left
	ActionRight         // Right arrow - steer right
	ActionGear          // Space, G - shift gear
	ActionStart         // Enter - start button
	ActionCoin          // C - insert coin
	ActionMenuUp        // Up, K - menu cursor up
	ActionMenuDown      // Down, J - menu cursor down
	ActionSelect        // Enter, Space - confirm menu entry
	ActionTimer         // F4 - freeze the countdown timer
	ActionPause         // F1, P - pause the engine
	ActionStep          // F2 - advance one frame while paused
	ActionMenu          // F3, M - return to the menu

	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAccel:
		return "Accel"
	case ActionBrake:
		return "Brake"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionGear:
		return "Gear"
	case ActionStart:
		return "Start"
	case ActionCoin:
		return "Coin"
	case ActionMenuUp:
		return "MenuUp"
	case ActionMenuDown:
		return "MenuDown"
	case ActionSelect:
		return "Select"
	case ActionTimer:
		return "Timer"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionMenu:
		return "Menu"
	default:
		return "Unknown"
	}
}

// Actions returns every bindable action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount-1)
	for a := ActionAccel; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// ActionSet is a compact set of actions, one bit per action.
// The zero value is an empty set.
type ActionSet uint32

// Set marks an action as present.
func (s *ActionSet) Set(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	*s |= 1 << uint(a)
}

// Unset removes an action.
func (s *ActionSet) Unset(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	*s &^= 1 << uint(a)
}

// Has returns true if the action is present.
func (s ActionSet) Has(a Action) bool {
	if a <= ActionNone || a >= actionCount {
		return false
	}
	return s&(1<<uint(a)) != 0
}

// Clear empties the set.
func (s *ActionSet) Clear() {
	*s = 0
}

// Empty reports whether no action is present.
func (s ActionSet) Empty() bool {
	return s == 0
}

var actionNames = map[string]Action{
	"accel":     ActionAccel,
	"brake":     ActionBrake,
	"left":      ActionLeft,
	"right":     ActionRight,
	"gear":      ActionGear,
	"start":     ActionStart,
	"coin":      ActionCoin,
	"menu_up":   ActionMenuUp,
	"menu_down": ActionMenuDown,
	"select":    ActionSelect,
	"timer":     ActionTimer,
	"pause":     ActionPause,
	"step":      ActionStep,
	"menu":      ActionMenu,
}

// ActionByName resolves a configuration key such as "menu_up".
func ActionByName(name string) (Action, bool) {
	a, ok := actionNames[name]
	return a, ok
}

// Package engine is the execution core of the racer: a frame scheduler that
// paces the loop to the display rate, a state machine that sequences the
// boot, menu and game phases, the input dispatcher and the tick-rate
// divider. All of it runs on one goroutine; collaborators are reached
// through the interfaces in collab.go.
package engine

import "errors"

// State is the active execution phase.
type State int

const (
	StateBoot State = iota
	StateMenuInit
	StateMenu
	StateGameInit
	StateGame
	StateQuit
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateBoot:
		return "boot"
	case StateMenuInit:
		return "menu-init"
	case StateMenu:
		return "menu"
	case StateGameInit:
		return "game-init"
	case StateGame:
		return "game"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ErrIllegalTransition is returned when a transition is not in the table.
var ErrIllegalTransition = errors.New("engine: illegal state transition")

// transitions lists every legal edge except "any -> quit", which is always
// allowed from a live state.
var transitions = map[State][]State{
	StateBoot:     {StateMenuInit, StateGameInit},
	StateGameInit: {StateGame},
	StateGame:     {StateGame, StateMenuInit},
	StateMenuInit: {StateMenu},
	StateMenu:     {StateMenu, StateGameInit},
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to State) bool {
	if from == StateQuit {
		return false
	}
	if to == StateQuit {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

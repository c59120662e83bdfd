// Package registry provides a global registry for game mode factories.
// Modes register themselves in init() functions, allowing the cabinet to
// discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"

	"github.com/vovakirdan/tui-racer/internal/assets"
	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/engine"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

// Game is a simulation the engine can drive. Games contain pure logic with
// no Bubble Tea dependency; the platform handles input, timing and output.
type Game interface {
	engine.Simulation

	// ID returns a unique identifier (e.g. "arcade"), used for the CLI
	// and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Controls returns the per-tick control sampler.
	Controls() engine.Controls

	// Sound returns the sound interrupt ticked by the engine. It also
	// streams the game's audio.
	Sound() Sound

	// Configure applies the menu selection before the next Init.
	Configure(course int, preset config.DifficultyPreset)

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)
}

// Sound is both the engine's sound interrupt and an audio stream.
type Sound interface {
	engine.SoundInterrupt
	beep.Streamer
}

// Controls is the input view a game reads.
type Controls interface {
	HasPressed(a core.Action) bool
	IsPressed(a core.Action) bool
	Steering() float64
	Accelerator() float64
	Brake() float64
}

// Tracks provides the active track pack.
type Tracks interface {
	Active() *assets.Pack
}

// Scores persists finished runs. A nil Scores disables persistence.
type Scores interface {
	SaveRun(r storage.Run) (int64, error)
	BestScore(mode string) (int, error)
}

// Requester lets a game leave the game state, e.g. back to the menu.
type Requester interface {
	Request(to engine.State) error
}

// Env carries everything a game needs from the cabinet.
type Env struct {
	Input      Controls
	Config     config.Config
	Tracks     Tracks
	Scores     Scores
	Requester  Requester
	Player     string
	SampleRate beep.SampleRate
	Seed       int64
	Logger     *log.Logger
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func(env Env) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	factories[info.ID] = f
	titles[info.ID] = info.Title
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(env), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

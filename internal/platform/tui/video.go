package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/engine"
)

// Screen size used until the terminal reports its own.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Scene draws itself into a screen buffer.
type Scene interface {
	Render(dst *core.Screen)
}

// Shaker offsets frames while force feedback runs.
type Shaker interface {
	Offset(frame uint64) int
}

// Video is the cabinet's render collaborator. PrepareFrame draws the scene
// for the current engine state; RenderFrame styles it and hands it to the
// terminal, keeping only the newest frame if the terminal falls behind.
type Video struct {
	ctx      *engine.Context
	screen   *core.Screen
	menu     Scene
	game     Scene
	shaker   Shaker
	palette  Palette
	fpsCount bool
	frames   chan string
}

// NewVideo creates a video collaborator for a width x height terminal.
func NewVideo(ctx *engine.Context, width, height int, palette Palette, fpsCount bool) *Video {
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}
	if palette == nil {
		palette = NewPalette(nil)
	}
	return &Video{
		ctx:      ctx,
		screen:   core.NewScreen(width, height),
		palette:  palette,
		fpsCount: fpsCount,
		frames:   make(chan string, 1),
	}
}

// SetScenes sets what is drawn in the menu and game states.
func (v *Video) SetScenes(menu, game Scene) {
	v.menu, v.game = menu, game
}

// SetShaker attaches a force-feedback shake. Nil detaches it.
func (v *Video) SetShaker(s Shaker) {
	v.shaker = s
}

// Frames returns the channel rendered frames are delivered on.
func (v *Video) Frames() <-chan string { return v.frames }

// Screen returns the screen buffer.
func (v *Video) Screen() *core.Screen { return v.screen }

// Resize changes the screen size.
func (v *Video) Resize(width, height int) {
	if width > 0 && height > 0 {
		v.screen.Resize(width, height)
	}
}

// PrepareFrame draws the active scene and overlays.
func (v *Video) PrepareFrame() {
	var scene Scene
	switch v.ctx.State() {
	case engine.StateMenuInit, engine.StateMenu:
		scene = v.menu
	case engine.StateGameInit, engine.StateGame:
		scene = v.game
	}
	if scene == nil {
		v.screen.Clear()
		return
	}
	scene.Render(v.screen)

	if v.ctx.Paused() {
		v.screen.DrawTextCentered(v.screen.Height()/2, " PAUSED ", core.ColorBrightWhite)
	}
	if v.fpsCount {
		fps := fmt.Sprintf("%3d FPS", v.ctx.FPS())
		v.screen.DrawTextColored(v.screen.Width()-len(fps)-1, 1, fps, core.ColorGray)
	}
}

// RenderFrame publishes the prepared frame.
func (v *Video) RenderFrame() {
	dx := 0
	if v.shaker != nil {
		dx = v.shaker.Offset(v.ctx.Frame())
	}
	out := RenderScreen(v.screen, v.palette, dx)

	select {
	case v.frames <- out:
		return
	default:
	}
	// Replace the stale frame the terminal has not picked up yet.
	select {
	case <-v.frames:
	default:
	}
	select {
	case v.frames <- out:
	default:
	}
}

// SupportsVSync reports false: terminals present whenever output arrives.
func (v *Video) SupportsVSync() bool { return false }

package engine

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-racer/internal/core"
)

func TestBootChoosesMenuOrGame(t *testing.T) {
	h := newHarness(60)
	if err := h.machine.Boot(true); err != nil {
		t.Fatalf("Boot(true) failed: %v", err)
	}
	if h.ctx.State() != StateMenuInit {
		t.Errorf("Boot(true) state = %s, expected menu-init", h.ctx.State())
	}

	h = newHarness(60)
	if err := h.machine.Boot(false); err != nil {
		t.Fatalf("Boot(false) failed: %v", err)
	}
	if h.ctx.State() != StateGameInit {
		t.Errorf("Boot(false) state = %s, expected game-init", h.ctx.State())
	}
}

func TestGameInitAssetFailureQuits(t *testing.T) {
	h := newHarness(60)
	h.assets.required = true
	h.assets.err = errors.New("regional pack missing")
	h.enter(StateGameInit)

	h.machine.Frame()

	if h.ctx.State() != StateQuit {
		t.Errorf("state = %s, expected quit", h.ctx.State())
	}
	if h.sim.inits != 0 {
		t.Error("simulation must not initialise when assets fail")
	}
}

func TestGameInitSuccessEntersGame(t *testing.T) {
	h := newHarness(60)
	h.assets.required = true
	h.enter(StateGameInit)
	h.ctx.paused = true
	h.ctx.frame = 1 // next frame is 2, a non-tick frame at 60Hz

	h.machine.Frame()

	if h.ctx.State() != StateGame {
		t.Fatalf("state = %s, expected game", h.ctx.State())
	}
	if h.ctx.Paused() {
		t.Error("entering game should clear pause")
	}
	if !h.ctx.TickFrame() {
		t.Error("entering game should force the tick flag")
	}
	if h.sim.inits != 1 {
		t.Errorf("simulation inits = %d, expected 1", h.sim.inits)
	}
	if h.assets.loads != 1 {
		t.Errorf("regional loads = %d, expected 1", h.assets.loads)
	}
}

func TestGameInitSkipsRegionalWhenNotRequired(t *testing.T) {
	h := newHarness(60)
	h.assets.err = errors.New("should not be called")
	h.enter(StateGameInit)

	h.machine.Frame()

	if h.ctx.State() != StateGame {
		t.Errorf("state = %s, expected game", h.ctx.State())
	}
	if h.assets.loads != 0 {
		t.Error("regional pack should not load when not required")
	}
}

func TestMenuInputOnTickFrame(t *testing.T) {
	h := newHarness(60)
	h.enter(StateGame)
	h.ctx.frame = 0 // next frame 1 ticks
	h.input.pressed.Set(core.ActionMenu)

	h.machine.Frame()

	if h.ctx.State() != StateMenuInit {
		t.Errorf("state = %s, expected menu-init", h.ctx.State())
	}
}

func TestMenuInputOnNonTickFrameIgnored(t *testing.T) {
	h := newHarness(60)
	h.enter(StateGame)
	h.ctx.frame = 1 // next frame 2 does not tick
	h.input.pressed.Set(core.ActionMenu)

	h.machine.Frame()

	if h.ctx.State() != StateGame {
		t.Errorf("state = %s, expected game", h.ctx.State())
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	h := newHarness(30)
	h.enter(StateGame)

	h.machine.Frame()
	if h.sim.logicalTicks != 1 {
		t.Fatalf("logical ticks = %d, expected 1 before pausing", h.sim.logicalTicks)
	}

	h.input.pressed.Set(core.ActionPause)
	h.machine.Frame()
	if !h.ctx.Paused() {
		t.Fatal("pause input should set the pause flag")
	}

	frozen := h.sim.logicalTicks
	for i := 0; i < 10; i++ {
		h.machine.Frame()
	}
	if h.sim.logicalTicks != frozen {
		t.Errorf("logical ticks moved from %d to %d while paused", frozen, h.sim.logicalTicks)
	}

	// Input frames still complete while paused
	if h.input.frameDones != 12 {
		t.Errorf("frameDones = %d, expected 12", h.input.frameDones)
	}
}

func TestStepWhilePausedAdvancesOnce(t *testing.T) {
	h := newHarness(30)
	h.enter(StateGame)
	h.ctx.paused = true

	h.machine.Frame()
	before := h.sim.logicalTicks
	soundBefore := h.sound.ticks

	h.input.pressed.Set(core.ActionStep)
	h.machine.Frame()
	if h.sim.logicalTicks != before+1 {
		t.Fatalf("logical ticks = %d, expected %d after step", h.sim.logicalTicks, before+1)
	}
	if h.sound.ticks != soundBefore+1 {
		t.Errorf("sound ticks = %d, expected %d after step", h.sound.ticks, soundBefore+1)
	}

	h.machine.Frame()
	h.machine.Frame()
	if h.sim.logicalTicks != before+1 {
		t.Errorf("simulation should refreeze after a step, ticks = %d", h.sim.logicalTicks)
	}
	if !h.ctx.Paused() {
		t.Error("step must not unpause")
	}
}

func TestPauseToggleOnlyOnTickFrames(t *testing.T) {
	h := newHarness(60)
	h.enter(StateGame)
	h.ctx.frame = 1

	h.input.pressed.Set(core.ActionPause)
	h.machine.Frame() // frame 2: no tick
	if h.ctx.Paused() {
		t.Fatal("pause must not toggle on a non-tick frame")
	}

	h.machine.Frame() // frame 3: tick, press still pending
	if !h.ctx.Paused() {
		t.Error("pending pause press should apply on the next tick frame")
	}
}

func TestFreezeTimerToggle(t *testing.T) {
	h := newHarness(30)
	h.enter(StateGame)
	h.input.pressed.Set(core.ActionTimer)

	h.machine.Frame()

	if h.sim.freezeToggles != 1 {
		t.Errorf("freeze toggles = %d, expected 1", h.sim.freezeToggles)
	}
}

func TestControlsRunOnTickFramesOnly(t *testing.T) {
	h := newHarness(60)
	h.enter(StateGame)

	for i := 0; i < 10; i++ {
		h.machine.Frame()
	}

	if h.controls.ticks != 5 || h.controls.gears != 5 {
		t.Errorf("controls ticks=%d gears=%d, expected 5 each", h.controls.ticks, h.controls.gears)
	}
	if h.sim.ticks != 10 || h.sim.logicalTicks != 5 {
		t.Errorf("sim ticks=%d logical=%d, expected 10 and 5", h.sim.ticks, h.sim.logicalTicks)
	}
}

func TestOutputsAndRumble(t *testing.T) {
	h := newHarness(60)
	h.enter(StateGame)
	h.sim.outputs.motor = true

	h.machine.Frame() // tick
	h.machine.Frame() // no tick

	if h.sim.outputs.writes != 2 {
		t.Errorf("WriteDigital calls = %d, expected 2", h.sim.outputs.writes)
	}
	if len(h.input.rumbles) != 1 {
		t.Fatalf("SetRumble calls = %d, expected 1", len(h.input.rumbles))
	}
	if got := h.input.rumbles[0]; !got.active || got.strength != 0.75 {
		t.Errorf("SetRumble(%v, %v), expected (true, 0.75)", got.active, got.strength)
	}
}

func TestMenuInitThenMenu(t *testing.T) {
	h := newHarness(60)
	h.enter(StateMenuInit)

	h.machine.Frame()
	if h.ctx.State() != StateMenu {
		t.Fatalf("state = %s, expected menu", h.ctx.State())
	}
	if h.controls.inits != 1 || h.sim.outputs.inits != 1 || h.menu.inits != 1 {
		t.Error("menu-init should initialise controls, outputs and menu once")
	}

	h.machine.Frame()
	h.machine.Frame()
	if h.menu.ticks != 2 {
		t.Errorf("menu ticks = %d, expected 2", h.menu.ticks)
	}
	if h.input.frameDones != 2 {
		t.Errorf("menu should finish input every frame, frameDones = %d", h.input.frameDones)
	}
	if h.sound.ticks != 2 {
		t.Errorf("sound ticks = %d, expected 2", h.sound.ticks)
	}
	if h.ctx.State() != StateMenu {
		t.Errorf("state = %s, expected menu", h.ctx.State())
	}
}

func TestMenuCanStartGame(t *testing.T) {
	h := newHarness(60)
	h.enter(StateMenu)
	h.menu.onTick = func() {
		if err := h.ctx.Request(StateGameInit); err != nil {
			t.Errorf("Request(game-init) failed: %v", err)
		}
	}

	h.machine.Frame()
	h.menu.onTick = nil
	h.machine.Frame()

	if h.ctx.State() != StateGame {
		t.Errorf("state = %s, expected game", h.ctx.State())
	}
}

package engine

import (
	"errors"
	"math"
	"testing"
)

func TestTickFrame60(t *testing.T) {
	for f := uint64(0); f < 1000; f++ {
		if got, want := TickFrame(f, 60), f%2 == 1; got != want {
			t.Fatalf("TickFrame(%d, 60) = %v, expected %v", f, got, want)
		}
	}
}

func TestTickFrame120(t *testing.T) {
	for f := uint64(0); f < 1000; f++ {
		if got, want := TickFrame(f, 120), f%4 == 1; got != want {
			t.Fatalf("TickFrame(%d, 120) = %v, expected %v", f, got, want)
		}
	}
}

func TestTickFrameOtherRates(t *testing.T) {
	for _, rate := range []int{0, 30, 50, 75, 144, 240} {
		for f := uint64(0); f < 100; f++ {
			if !TickFrame(f, rate) {
				t.Fatalf("TickFrame(%d, %d) = false, expected true", f, rate)
			}
		}
	}
}

func TestTickFrameHugeCounter(t *testing.T) {
	f := uint64(math.MaxUint64)
	if !TickFrame(f, 60) {
		t.Error("max counter is odd and should tick at 60")
	}
	if TickFrame(f, 120) {
		t.Error("max counter mod 4 is 3 and should not tick at 120")
	}
}

func TestFramesPerTickMatchesDivider(t *testing.T) {
	for _, rate := range []int{30, 60, 120, 75} {
		ticks := 0
		n := FramesPerTick(rate) * 100
		for f := uint64(1); f <= uint64(n); f++ {
			if TickFrame(f, rate) {
				ticks++
			}
		}
		if ticks != 100 {
			t.Errorf("rate %d: %d ticks in %d frames, expected 100", rate, ticks, n)
		}
	}
}

func TestFrameMS(t *testing.T) {
	tests := []struct {
		rate int
		want float64
	}{
		{60, 16.683},
		{30, 33.367},
		{120, 8.342},
		{0, 16.683},
	}
	for _, tc := range tests {
		if got := FrameMS(tc.rate); math.Abs(got-tc.want) > 0.001 {
			t.Errorf("FrameMS(%d) = %.4f, expected %.3f", tc.rate, got, tc.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateBoot, StateMenuInit, true},
		{StateBoot, StateGameInit, true},
		{StateBoot, StateGame, false},
		{StateGameInit, StateGame, true},
		{StateGameInit, StateMenu, false},
		{StateGame, StateMenuInit, true},
		{StateGame, StateMenu, false},
		{StateMenuInit, StateMenu, true},
		{StateMenu, StateGameInit, true},
		{StateMenu, StateGame, false},
		{StateGame, StateQuit, true},
		{StateMenu, StateQuit, true},
		{StateQuit, StateMenuInit, false},
		{StateQuit, StateQuit, false},
	}
	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, expected %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestContextRequestRejectsIllegal(t *testing.T) {
	ctx := NewContext(60, nil)

	err := ctx.Request(StateGame)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("Request(game) from boot = %v, expected ErrIllegalTransition", err)
	}
	if ctx.State() != StateBoot {
		t.Errorf("state = %s after rejected request, expected boot", ctx.State())
	}
}

func TestContextFrameCounterAdvances(t *testing.T) {
	ctx := NewContext(60, nil)
	for i := 0; i < 5; i++ {
		ctx.advanceFrame()
	}
	if ctx.Frame() != 5 {
		t.Errorf("Frame() = %d, expected 5", ctx.Frame())
	}
	if !ctx.TickFrame() {
		t.Error("frame 5 at 60Hz should tick")
	}
}

package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/engine"
)

// plainPalette renders without escape codes so output can be compared.
func plainPalette() Palette {
	return NewPalette(lipgloss.NewRenderer(io.Discard))
}

type textScene string

func (s textScene) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawTextColored(0, 0, string(s), core.ColorDefault)
}

type fixedShake int

func (f fixedShake) Offset(uint64) int { return int(f) }

func TestRenderScreenShift(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.DrawTextColored(0, 0, "ab", core.ColorDefault)

	if got := RenderScreen(s, plainPalette(), 0); got != "ab  " {
		t.Errorf("RenderScreen(dx=0) = %q, expected %q", got, "ab  ")
	}
	if got := RenderScreen(s, plainPalette(), 1); got != " ab " {
		t.Errorf("RenderScreen(dx=1) = %q, expected %q", got, " ab ")
	}
	if got := RenderScreen(s, plainPalette(), -1); got != "b   " {
		t.Errorf("RenderScreen(dx=-1) = %q, expected %q", got, "b   ")
	}
}

func TestVideoPicksSceneByState(t *testing.T) {
	ctx := engine.NewContext(60, nil)
	v := NewVideo(ctx, 12, 3, plainPalette(), false)
	v.SetScenes(textScene("menu"), textScene("race"))

	v.PrepareFrame()
	if row := v.Screen().Row(0); strings.TrimSpace(row) != "" {
		t.Errorf("boot frame row 0 = %q, expected blank", row)
	}

	if err := ctx.Request(engine.StateMenuInit); err != nil {
		t.Fatal(err)
	}
	v.PrepareFrame()
	if row := v.Screen().Row(0); !strings.HasPrefix(row, "menu") {
		t.Errorf("menu frame row 0 = %q, expected menu scene", row)
	}

	for _, st := range []engine.State{engine.StateMenu, engine.StateGameInit} {
		if err := ctx.Request(st); err != nil {
			t.Fatal(err)
		}
	}
	v.PrepareFrame()
	if row := v.Screen().Row(0); !strings.HasPrefix(row, "race") {
		t.Errorf("game frame row 0 = %q, expected game scene", row)
	}
}

func TestVideoKeepsNewestFrame(t *testing.T) {
	ctx := engine.NewContext(60, nil)
	v := NewVideo(ctx, 4, 1, plainPalette(), false)

	v.Screen().DrawTextColored(0, 0, "old", core.ColorDefault)
	v.RenderFrame()
	v.Screen().DrawTextColored(0, 0, "new", core.ColorDefault)
	v.RenderFrame()

	select {
	case f := <-v.Frames():
		if f != "new " {
			t.Errorf("frame = %q, expected %q", f, "new ")
		}
	default:
		t.Fatal("no frame published")
	}
	select {
	case f := <-v.Frames():
		t.Errorf("unexpected second frame %q", f)
	default:
	}
}

func TestVideoShake(t *testing.T) {
	ctx := engine.NewContext(60, nil)
	v := NewVideo(ctx, 4, 1, plainPalette(), false)
	v.SetShaker(fixedShake(2))
	v.Screen().DrawTextColored(0, 0, "ab", core.ColorDefault)
	v.RenderFrame()

	if f := <-v.Frames(); f != "  ab" {
		t.Errorf("shaken frame = %q, expected %q", f, "  ab")
	}
}

func TestVideoResizeIgnoresEmpty(t *testing.T) {
	v := NewVideo(engine.NewContext(60, nil), 0, 0, nil, false)
	if v.Screen().Width() != defaultWidth || v.Screen().Height() != defaultHeight {
		t.Errorf("default size = %dx%d, expected %dx%d",
			v.Screen().Width(), v.Screen().Height(), defaultWidth, defaultHeight)
	}
	v.Resize(0, 10)
	if v.Screen().Width() != defaultWidth {
		t.Errorf("Resize(0, 10) changed width to %d", v.Screen().Width())
	}
	v.Resize(40, 12)
	if v.Screen().Width() != 40 || v.Screen().Height() != 12 {
		t.Errorf("Resize(40, 12) = %dx%d", v.Screen().Width(), v.Screen().Height())
	}
}

package menu

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/engine"
)

type fakeControls struct{ pressed core.ActionSet }

func (c *fakeControls) HasPressed(a core.Action) bool { return c.pressed.Has(a) }

type fakeRequester struct {
	requests []engine.State
	quits    int
}

func (r *fakeRequester) Request(to engine.State) error {
	r.requests = append(r.requests, to)
	return nil
}

func (r *fakeRequester) RequestQuit() { r.quits++ }

func newTestMenu() (*Menu, *fakeControls, *fakeRequester, *[]Selection) {
	in := &fakeControls{}
	req := &fakeRequester{}
	var started []Selection
	m := New(in, req, []string{"Coconut Beach", "Gateway"}, "", func(s Selection) {
		started = append(started, s)
	}, nil)
	m.Populate()
	m.Init()
	return m, in, req, &started
}

func (c *fakeControls) press(m *Menu, a core.Action) {
	c.pressed.Set(a)
	m.Tick()
	c.pressed.Clear()
}

func TestPlayRequestsGameInit(t *testing.T) {
	m, in, req, started := newTestMenu()

	in.press(m, core.ActionStart)

	if len(req.requests) != 1 || req.requests[0] != engine.StateGameInit {
		t.Fatalf("requests = %v, expected [game-init]", req.requests)
	}
	if len(*started) != 1 || (*started)[0].Difficulty != config.DifficultyNormal {
		t.Errorf("onStart = %v, expected one normal selection", *started)
	}
}

func TestCursorWraps(t *testing.T) {
	m, in, _, _ := newTestMenu()

	in.press(m, core.ActionMenuUp)
	if m.Cursor() != len(m.Items())-1 {
		t.Errorf("Cursor() = %d, expected last entry", m.Cursor())
	}
	in.press(m, core.ActionMenuDown)
	if m.Cursor() != 0 {
		t.Errorf("Cursor() = %d, expected 0", m.Cursor())
	}
}

func TestQuitEntry(t *testing.T) {
	m, in, req, _ := newTestMenu()

	in.press(m, core.ActionMenuUp) // QUIT is last
	in.press(m, core.ActionSelect)

	if req.quits != 1 {
		t.Errorf("quits = %d, expected 1", req.quits)
	}
}

func TestSettingsPage(t *testing.T) {
	m, in, _, started := newTestMenu()

	in.press(m, core.ActionMenuDown)
	in.press(m, core.ActionSelect)
	if m.Title() != "SETTINGS" {
		t.Fatalf("Title() = %q, expected SETTINGS", m.Title())
	}

	in.press(m, core.ActionSelect) // course
	if !strings.Contains(m.Items()[0], "Gateway") {
		t.Errorf("course label = %q, expected Gateway", m.Items()[0])
	}
	in.press(m, core.ActionSelect) // wraps
	if m.Selection().Course != 0 {
		t.Errorf("Course = %d, expected wrap to 0", m.Selection().Course)
	}

	in.press(m, core.ActionMenuDown)
	in.press(m, core.ActionSelect)
	if m.Selection().Difficulty != config.DifficultyHard {
		t.Errorf("Difficulty = %s, expected hard", m.Selection().Difficulty)
	}

	in.press(m, core.ActionMenu)
	if m.Title() != "MAIN MENU" {
		t.Errorf("Title() = %q after back, expected MAIN MENU", m.Title())
	}

	in.press(m, core.ActionStart)
	if got := (*started)[0].Difficulty; got != config.DifficultyHard {
		t.Errorf("started with %s, expected hard", got)
	}
}

func TestInitReturnsToMainPage(t *testing.T) {
	m, in, _, _ := newTestMenu()
	in.press(m, core.ActionMenuDown)
	in.press(m, core.ActionSelect)

	m.Init()

	if m.Title() != "MAIN MENU" || m.Cursor() != 0 {
		t.Errorf("Init() left %q cursor %d", m.Title(), m.Cursor())
	}
}

func TestReleaseOnce(t *testing.T) {
	m, in, req, _ := newTestMenu()

	if err := m.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	in.press(m, core.ActionStart)
	if len(req.requests) != 0 {
		t.Error("released menu must ignore input")
	}
	if err := m.Release(); err == nil {
		t.Error("second Release() should fail")
	}
}

func TestRender(t *testing.T) {
	m, _, _, _ := newTestMenu()
	s := core.NewScreen(60, 24)

	m.Render(s)

	out := s.String()
	if !strings.Contains(out, "> PLAY GAME <") {
		t.Errorf("render should highlight PLAY GAME:\n%s", out)
	}
	if !strings.Contains(out, logo) {
		t.Error("render should show the logo")
	}
	if strings.Count(out, "┌") != 1 || strings.Count(out, "┘") != 1 {
		t.Errorf("render should frame the entries in one box:\n%s", out)
	}

	// The frame stays inside narrow screens.
	narrow := core.NewScreen(16, 24)
	m.Render(narrow)
	if narrow.GetCell(1, 10).Rune != '│' || narrow.GetCell(14, 10).Rune != '│' {
		t.Errorf("frame should keep a one-cell margin on narrow screens:\n%s", narrow.String())
	}
}

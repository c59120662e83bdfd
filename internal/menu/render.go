package menu

import (
	"github.com/vovakirdan/tui-racer/internal/core"
)

const logo = "T U I   R A C E R"

// Render draws the visible page onto s.
func (m *Menu) Render(s *core.Screen) {
	s.Clear()
	if m.current == nil {
		return
	}

	items := m.Items()
	var help []string
	if m.current.title == "CONTROLS" {
		help = m.help
	}

	h := s.Height()
	top := h/2 - len(items) - 3
	if top < 1 {
		top = 1
	}

	s.DrawTextCentered(top, logo, core.ColorBrightYellow)
	s.DrawTextCentered(top+2, m.current.title, core.ColorBrightCyan)

	// Frame the entries, and the help lines on the controls page.
	widest := 0
	for _, line := range append(items, help...) {
		widest = max(widest, len([]rune(line)))
	}
	rows := len(items)
	if len(help) > 0 {
		rows += len(help) + 1
	}
	room := s.Width() - 2
	pw := core.Clamp(widest+8, min(20, room), room)
	panel := core.NewRect((s.Width()-pw)/2, top+3, pw, rows+2)
	s.DrawRect(panel, ' ', core.ColorDefault)
	s.DrawBox(panel, core.ColorBlue)

	y := top + 4
	for i, label := range items {
		color := core.ColorWhite
		text := "  " + label + "  "
		if i == m.cursor {
			color = core.ColorBrightRed
			text = "> " + label + " <"
		}
		s.DrawTextCentered(y, text, color)
		y++
	}

	if len(help) > 0 {
		y++
		for _, line := range help {
			s.DrawTextCentered(y, line, core.ColorGray)
			y++
		}
	}

	// Blink roughly twice a second at 60Hz
	if m.current == m.root && (m.frames/30)%2 == 0 {
		s.DrawTextCentered(h-2, "PRESS START", core.ColorYellow)
	}
}

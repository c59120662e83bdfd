// Package menu implements the cabinet front end shown in the menu state.
// The menu starts games and quits by asking the engine for a state change;
// it never changes engine state directly.
package menu

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/engine"
)

// Requester is the part of the engine context the menu may use.
type Requester interface {
	Request(to engine.State) error
	RequestQuit()
}

// Controls reports edge-triggered presses.
type Controls interface {
	HasPressed(a core.Action) bool
}

// Selection is the game setup chosen in the menu.
type Selection struct {
	Course     int
	Difficulty config.DifficultyPreset
}

var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

type item struct {
	label  func() string
	action func()
}

type page struct {
	title  string
	items  []item
	parent *page
}

// Menu is the front-end menu collaborator.
type Menu struct {
	input   Controls
	req     Requester
	courses []string
	onStart func(Selection)

	sel     Selection
	root    *page
	current *page
	cursor  int
	frames  int
	help    []string

	populated bool
	released  bool
	logger    *log.Logger
}

// New creates a menu over the given course names. onStart receives the
// selection just before the menu asks for a new game.
func New(input Controls, req Requester, courses []string, preset config.DifficultyPreset, onStart func(Selection), logger *log.Logger) *Menu {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if preset == "" {
		preset = config.DifficultyNormal
	}
	return &Menu{
		input:   input,
		req:     req,
		courses: courses,
		onStart: onStart,
		sel:     Selection{Difficulty: preset},
		logger:  logger,
	}
}

// SetHelp sets the lines shown on the controls page.
func (m *Menu) SetHelp(lines []string) {
	m.help = lines
}

// Populate builds the menu pages. It runs once at startup.
func (m *Menu) Populate() {
	root := &page{title: "MAIN MENU"}
	settings := &page{title: "SETTINGS", parent: root}
	controls := &page{title: "CONTROLS", parent: root}

	root.items = []item{
		{label: static("PLAY GAME"), action: m.start},
		{label: static("SETTINGS"), action: func() { m.open(settings) }},
		{label: static("CONTROLS"), action: func() { m.open(controls) }},
		{label: static("QUIT"), action: m.quit},
	}
	settings.items = []item{
		{label: m.courseLabel, action: m.nextCourse},
		{label: m.difficultyLabel, action: m.nextDifficulty},
		{label: static("BACK"), action: m.back},
	}
	controls.items = []item{
		{label: static("BACK"), action: m.back},
	}

	m.root = root
	m.current = root
	m.populated = true
	m.logger.Debug("menu populated", "courses", len(m.courses))
}

// Init resets the menu to the main page. It runs each time the menu is
// entered.
func (m *Menu) Init() {
	m.current = m.root
	m.cursor = 0
	m.frames = 0
}

// Tick handles menu input for one frame.
func (m *Menu) Tick() {
	if !m.populated || m.released {
		return
	}
	m.frames++

	n := len(m.current.items)
	switch {
	case m.input.HasPressed(core.ActionMenuUp):
		m.cursor = (m.cursor - 1 + n) % n
	case m.input.HasPressed(core.ActionMenuDown):
		m.cursor = (m.cursor + 1) % n
	case m.input.HasPressed(core.ActionSelect), m.input.HasPressed(core.ActionStart):
		m.current.items[m.cursor].action()
	case m.input.HasPressed(core.ActionMenu):
		m.back()
	}
}

// Release frees the menu pages. Calling it twice is an error.
func (m *Menu) Release() error {
	if m.released {
		return errors.New("menu: already released")
	}
	m.released = true
	m.root, m.current = nil, nil
	return nil
}

// Selection returns the current game setup.
func (m *Menu) Selection() Selection { return m.sel }

// Title returns the title of the visible page.
func (m *Menu) Title() string {
	if m.current == nil {
		return ""
	}
	return m.current.title
}

// Items returns the labels of the visible page.
func (m *Menu) Items() []string {
	if m.current == nil {
		return nil
	}
	out := make([]string, len(m.current.items))
	for i, it := range m.current.items {
		out[i] = it.label()
	}
	return out
}

// Cursor returns the highlighted entry.
func (m *Menu) Cursor() int { return m.cursor }

func (m *Menu) start() {
	if m.onStart != nil {
		m.onStart(m.sel)
	}
	if err := m.req.Request(engine.StateGameInit); err != nil {
		m.logger.Error("cannot start game", "error", err)
		return
	}
	m.logger.Info("game started", "course", m.courseName(), "difficulty", m.sel.Difficulty)
}

func (m *Menu) quit() {
	m.logger.Info("quit from menu")
	m.req.RequestQuit()
}

func (m *Menu) open(p *page) {
	m.current = p
	m.cursor = 0
}

func (m *Menu) back() {
	if m.current.parent == nil {
		return
	}
	m.current = m.current.parent
	m.cursor = 0
}

func (m *Menu) nextCourse() {
	if len(m.courses) == 0 {
		return
	}
	m.sel.Course = (m.sel.Course + 1) % len(m.courses)
}

func (m *Menu) nextDifficulty() {
	for i, p := range presets {
		if p == m.sel.Difficulty {
			m.sel.Difficulty = presets[(i+1)%len(presets)]
			return
		}
	}
	m.sel.Difficulty = presets[0]
}

func (m *Menu) courseName() string {
	if m.sel.Course < len(m.courses) {
		return m.courses[m.sel.Course]
	}
	return "?"
}

func (m *Menu) courseLabel() string {
	return fmt.Sprintf("COURSE      %s", m.courseName())
}

func (m *Menu) difficultyLabel() string {
	return fmt.Sprintf("DIFFICULTY  %s", m.sel.Difficulty)
}

func static(s string) func() string {
	return func() string { return s }
}

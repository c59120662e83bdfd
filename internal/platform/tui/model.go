package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-racer/internal/event"
)

// Model is the Bubble Tea side of a cabinet. It forwards terminal input to
// the engine queue and displays the frames the engine produces.
type Model struct {
	queue  *event.Queue
	keys   *KeyMapper
	frames <-chan string
	done   <-chan struct{}
	view   string
}

// NewModel creates a model feeding queue.
func NewModel(queue *event.Queue, keys *KeyMapper, frames <-chan string, done <-chan struct{}) Model {
	return Model{
		queue:  queue,
		keys:   keys,
		frames: frames,
		done:   done,
	}
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.frames, m.done)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		e, cmd := m.keys.MapKey(msg)
		m.queue.Push(e)
		return m, cmd

	case keyReleaseMsg:
		if up, ok := m.keys.Release(msg); ok {
			m.queue.Push(up)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.queue.Push(event.Resize{Width: msg.Width, Height: msg.Height})
		return m, nil

	case frameMsg:
		m.view = string(msg)
		return m, frameCmd(m.frames, m.done)
	}

	return m, nil
}

// View returns the last frame.
func (m Model) View() string {
	return m.view
}

// Package tui runs a cabinet in the terminal. Bubble Tea owns the terminal
// and feeds key and resize events into the engine's queue; the engine loop
// runs on its own goroutine and hands finished frames back as messages.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg carries a rendered frame from the engine loop.
type frameMsg string

// frameCmd waits for the next rendered frame. Once the engine loop is done
// it quits the program.
func frameCmd(frames <-chan string, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-frames:
			return frameMsg(f)
		case <-done:
			return tea.Quit()
		}
	}
}

package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Context is the execution state of one cabinet. It replaces process-wide
// globals so several cabinets (one per SSH session, or one per test) can
// run side by side.
type Context struct {
	state     State
	frame     uint64
	tickFrame bool
	paused    bool
	fps       int
	rate      int
	logger    *log.Logger
}

// NewContext creates a context in StateBoot for the given display rate.
func NewContext(rate int, logger *log.Logger) *Context {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Context{
		state:     StateBoot,
		tickFrame: true,
		rate:      rate,
		logger:    logger,
	}
}

// State returns the active execution state.
func (c *Context) State() State { return c.state }

// Frame returns the number of frames run so far.
func (c *Context) Frame() uint64 { return c.frame }

// TickFrame reports whether the current frame advances simulation logic.
func (c *Context) TickFrame() bool { return c.tickFrame }

// Paused reports whether the engine is paused.
func (c *Context) Paused() bool { return c.paused }

// FPS returns the last published frames-per-second snapshot.
func (c *Context) FPS() int { return c.fps }

// Rate returns the configured display rate.
func (c *Context) Rate() int { return c.rate }

// Request moves to another state if the edge is legal.
// Collaborators such as the menu use it to start a game or quit.
func (c *Context) Request(to State) error {
	if !CanTransition(c.state, to) {
		c.logger.Warn("rejected state change", "from", c.state, "to", to)
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, c.state, to)
	}
	if c.state != to {
		c.logger.Debug("state change", "from", c.state, "to", to, "frame", c.frame)
	}
	c.state = to
	return nil
}

// RequestQuit moves to StateQuit. It is a no-op once quit.
func (c *Context) RequestQuit() {
	if c.state == StateQuit {
		return
	}
	//nolint:errcheck // any live state may quit
	c.Request(StateQuit)
}

// advanceFrame increments the frame counter and recomputes the tick flag.
func (c *Context) advanceFrame() {
	c.frame++
	c.tickFrame = TickFrame(c.frame, c.rate)
}

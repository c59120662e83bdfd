package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/event"
)

// Dispatcher drains the platform event queue once per frame.
type Dispatcher struct {
	ctx     *Context
	source  event.Source
	handler event.Handler
	onOther func(event.Event)
	logger  *log.Logger
}

// NewDispatcher creates a dispatcher forwarding input events to handler.
func NewDispatcher(ctx *Context, source event.Source, handler event.Handler, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		ctx:     ctx,
		source:  source,
		handler: handler,
		logger:  logger,
	}
}

// OnUnforwarded registers a callback for events the input collaborator does
// not handle, such as terminal resizes. Without it such events are
// discarded.
func (d *Dispatcher) OnUnforwarded(fn func(event.Event)) {
	d.onOther = fn
}

// Drain processes every queued event and returns how many were read.
// Escape and OS quit requests set StateQuit before anything is forwarded.
func (d *Dispatcher) Drain() int {
	n := 0
	for {
		ev, ok := d.source.Poll()
		if !ok {
			return n
		}
		n++

		switch e := ev.(type) {
		case event.Quit:
			d.logger.Info("quit requested")
			d.ctx.RequestQuit()
			continue
		case event.KeyDown:
			if e.IsEscape() {
				d.logger.Info("escape pressed")
				d.ctx.RequestQuit()
				continue
			}
		}

		if fwd, ok := ev.(event.Forwarder); ok {
			fwd.Forward(d.handler)
			continue
		}

		if d.onOther != nil {
			d.onOther(ev)
			continue
		}
		d.logger.Debug("discarded event", "type", ev)
	}
}

package racer

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/engine"
)

// Outputs holds the cabinet's digital outputs: lamps and the steering
// motor. WriteDigital publishes changes to the console log, standing in
// for an external lamp board.
type Outputs struct {
	flags   uint8
	written uint8
	logger  *log.Logger
}

// NewOutputs creates the output bank.
func NewOutputs(logger *log.Logger) *Outputs {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Outputs{logger: logger}
}

// Init clears every output.
func (o *Outputs) Init() {
	o.flags = 0
}

// Set drives an output on or off.
func (o *Outputs) Set(flag engine.OutputFlag, on bool) {
	bit := uint8(1) << uint(flag)
	if on {
		o.flags |= bit
	} else {
		o.flags &^= bit
	}
}

// IsSet reports whether an output is on.
func (o *Outputs) IsSet(flag engine.OutputFlag) bool {
	return o.flags&(uint8(1)<<uint(flag)) != 0
}

// WriteDigital publishes the outputs if they changed since the last write.
func (o *Outputs) WriteDigital() {
	if o.flags == o.written {
		return
	}
	o.written = o.flags
	o.logger.Debug("outputs",
		"start_lamp", o.IsSet(engine.OutputStartLamp),
		"brake_lamp", o.IsSet(engine.OutputBrakeLamp),
		"motor", o.IsSet(engine.OutputMotor),
	)
}

// Bits returns the raw output byte as last written.
func (o *Outputs) Bits() uint8 { return o.written }

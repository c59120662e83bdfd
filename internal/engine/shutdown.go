package engine

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// InputDevices releases opened pads.
type InputDevices interface {
	CloseJoy()
}

// Teardown lists the resources released on shutdown.
type Teardown struct {
	Audio  Audio
	Input  InputDevices
	Haptic Haptic
	Menu   Menu
	// Exit terminates the cabinet with a status code. For the local binary
	// it ends the process; for an SSH session it ends the session.
	Exit func(code int)
}

// Shutdown runs the teardown exactly once, in a fixed order: audio, input
// devices, haptics, menu, exit. Every step runs even if an earlier one
// fails.
type Shutdown struct {
	teardown Teardown
	once     sync.Once
	done     bool
	err      error
	logger   *log.Logger
}

// NewShutdown creates a shutdown sequence.
func NewShutdown(t Teardown, logger *log.Logger) *Shutdown {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Shutdown{teardown: t, logger: logger}
}

// Run releases everything and calls Exit with code. Later calls do nothing
// and return the first call's error.
func (s *Shutdown) Run(code int) error {
	s.once.Do(func() {
		t := s.teardown
		var errs []error

		if t.Audio != nil {
			errs = append(errs, s.step("audio", t.Audio.Stop))
		}
		if t.Input != nil {
			errs = append(errs, s.step("input", func() error {
				t.Input.CloseJoy()
				return nil
			}))
		}
		if t.Haptic != nil {
			errs = append(errs, s.step("haptic", t.Haptic.Close))
		}
		if t.Menu != nil {
			errs = append(errs, s.step("menu", t.Menu.Release))
		}

		s.err = errors.Join(errs...)
		s.done = true
		s.logger.Info("shutdown complete", "code", code)

		if t.Exit != nil {
			t.Exit(code)
		}
	})
	return s.err
}

// Done reports whether the sequence has run.
func (s *Shutdown) Done() bool {
	return s.done
}

func (s *Shutdown) step(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine: release %s: panic: %v", name, r)
			s.logger.Error("release failed", "resource", name, "error", err)
		}
	}()

	if err := fn(); err != nil {
		s.logger.Error("release failed", "resource", name, "error", err)
		return fmt.Errorf("engine: release %s: %w", name, err)
	}
	return nil
}

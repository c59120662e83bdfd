package engine

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// SchedulerConfig holds the pacing settings read from configuration.
type SchedulerConfig struct {
	// VSync asks for display-paced presentation when the video supports it.
	VSync bool
	// FPSCount enables the once-per-second frame counter.
	FPSCount bool
}

// Scheduler owns the outer frame loop.
type Scheduler struct {
	machine  *Machine
	video    Video
	audio    Audio
	clock    Clock
	shutdown *Shutdown
	cfg      SchedulerConfig
	frameMS  float64
	logger   *log.Logger

	// acc carries the fractional remainder of the target frame duration
	// across iterations.
	acc   float64
	vsync bool

	fpsFrames int
	fpsStart  time.Time
}

// NewScheduler creates a scheduler for machine. The base frame duration
// comes from the context's display rate.
func NewScheduler(machine *Machine, video Video, audio Audio, clock Clock, shutdown *Shutdown, cfg SchedulerConfig, logger *log.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{
		machine:  machine,
		video:    video,
		audio:    audio,
		clock:    clock,
		shutdown: shutdown,
		cfg:      cfg,
		frameMS:  FrameMS(machine.Context().Rate()),
		logger:   logger,
	}
}

// Run loops until the context reaches StateQuit, then runs the shutdown
// sequence with code 0 and returns the exit code.
func (s *Scheduler) Run() int {
	s.vsync = s.cfg.VSync && s.video.SupportsVSync()
	s.fpsStart = s.clock.Now()
	ctx := s.machine.Context()

	s.logger.Info("frame loop started",
		"rate", ctx.Rate(),
		"frame_ms", s.frameMS,
		"vsync", s.vsync,
	)

	for ctx.State() != StateQuit {
		s.iterate()
	}

	s.logger.Info("frame loop stopped", "frames", ctx.Frame())
	return s.Shutdown(0)
}

// Shutdown forces StateQuit and runs the shutdown sequence. It is used
// directly when startup fails before the loop begins.
func (s *Scheduler) Shutdown(code int) int {
	s.machine.Context().RequestQuit()
	if s.shutdown != nil {
		//nolint:errcheck // failures are logged per resource
		s.shutdown.Run(code)
	}
	return code
}

func (s *Scheduler) iterate() {
	start := s.clock.Now()

	s.machine.Frame()

	s.video.PrepareFrame()
	s.video.RenderFrame()

	s.audio.Tick()

	if !s.vsync {
		s.pace(start)
	}

	if s.cfg.FPSCount {
		s.countFrame()
	}
}

// pace sleeps off the rest of the target frame duration. Only whole
// milliseconds are slept; the fraction stays in acc for the next frame.
func (s *Scheduler) pace(start time.Time) {
	s.acc += s.frameMS * s.audio.AdjustSpeed()
	whole := math.Floor(s.acc)

	elapsed := float64(s.clock.Now().Sub(start).Milliseconds())
	if elapsed < whole {
		s.clock.Sleep(time.Duration(whole-elapsed) * time.Millisecond)
	}

	s.acc -= whole
}

func (s *Scheduler) countFrame() {
	s.fpsFrames++
	if s.clock.Now().Sub(s.fpsStart) >= time.Second {
		s.machine.Context().fps = s.fpsFrames
		s.fpsFrames = 0
		s.fpsStart = s.clock.Now()
	}
}

package tui

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/assets"
	"github.com/vovakirdan/tui-racer/internal/audio"
	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/engine"
	"github.com/vovakirdan/tui-racer/internal/event"
	"github.com/vovakirdan/tui-racer/internal/haptic"
	"github.com/vovakirdan/tui-racer/internal/input"
	"github.com/vovakirdan/tui-racer/internal/menu"
	"github.com/vovakirdan/tui-racer/internal/registry"
)

// Options configures one cabinet.
type Options struct {
	Config    config.Config
	Mode      string // registered game id
	TrackPath string // base pack file; empty uses the built-in pack
	Player    string
	Scores    registry.Scores // nil disables persistence
	Renderer  *lipgloss.Renderer
	Width     int
	Height    int
	Seed      int64 // 0 seeds from the clock
	Clock     engine.Clock
	Output    audio.Output
	Logger    *log.Logger
}

// Cabinet is one running racer: an engine context with its own
// collaborators. Local play runs one; the SSH server runs one per session.
type Cabinet struct {
	opts   Options
	logger *log.Logger

	ctx      *engine.Context
	queue    *event.Queue
	keys     *KeyMapper
	video    *Video
	audio    *audio.Audio
	input    *input.Input
	haptic   *haptic.Device
	menu     *menu.Menu
	assets   *assets.Assets
	game     registry.Game
	machine  *engine.Machine
	sched    *engine.Scheduler
	shutdown *engine.Shutdown

	done     chan struct{}
	doneOnce sync.Once
	code     int
}

// NewCabinet builds a cabinet. Failures to load the base track pack,
// build the controls or create the game are fatal; a missing pad mapping
// or haptic device is logged and play continues without it.
func NewCabinet(opts Options) (*Cabinet, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	cfg := opts.Config

	c := &Cabinet{
		opts:   opts,
		logger: logger,
		ctx:    engine.NewContext(cfg.Video.FPS, logger),
		queue:  event.NewQueue(event.DefaultQueueSize),
		keys:   NewKeyMapper(time.Duration(cfg.Controls.KeyReleaseMS) * time.Millisecond),
		done:   make(chan struct{}),
	}

	base, err := assets.LoadBase(opts.TrackPath)
	if err != nil {
		return nil, c.fail(fmt.Errorf("tui: load base tracks: %w", err))
	}
	c.assets = assets.New(base, cfg, logger)

	c.video = NewVideo(c.ctx, opts.Width, opts.Height, NewPalette(opts.Renderer), cfg.Video.FPSCount)

	c.audio = audio.New(cfg.Sound, cfg.Video.FPS, logger)

	controls := cfg.Controls
	controls.Pad = maps.Clone(cfg.Controls.Pad)
	if pad, err := assets.LoadPadMapping(cfg.Data.ResPath); err != nil {
		logger.Warn("pad mapping not loaded", "error", err)
	} else if pad != nil {
		if controls.Pad == nil {
			controls.Pad = make(map[string]int, len(pad))
		}
		maps.Copy(controls.Pad, pad)
		logger.Info("pad mapping loaded", "buttons", len(pad))
	}
	c.input, err = input.New(controls, logger)
	if err != nil {
		return nil, c.fail(err)
	}

	c.haptic, err = haptic.Open(cfg.Controls)
	switch {
	case errors.Is(err, haptic.ErrDisabled):
	case err != nil:
		logger.Warn("haptics disabled", "error", err)
	default:
		c.input.SetRumbler(c.haptic)
		c.video.SetShaker(c.haptic)
	}

	c.game, err = registry.Create(opts.Mode, registry.Env{
		Input:      c.input,
		Config:     cfg,
		Tracks:     c.assets,
		Scores:     opts.Scores,
		Requester:  c.ctx,
		Player:     opts.Player,
		SampleRate: c.audio.SampleRate(),
		Seed:       opts.Seed,
		Logger:     logger,
	})
	if err != nil {
		return nil, c.fail(err)
	}
	c.audio.SetSource(c.game.Sound())

	c.menu = menu.New(c.input, c.ctx, c.assets.CourseNames(), cfg.Engine.Difficulty, func(sel menu.Selection) {
		c.game.Configure(sel.Course, sel.Difficulty)
	}, logger)
	c.menu.SetHelp(c.input.Help())
	c.menu.Populate()
	c.video.SetScenes(c.menu, c.game)

	dispatcher := engine.NewDispatcher(c.ctx, c.queue, c.input, logger)
	dispatcher.OnUnforwarded(func(e event.Event) {
		if r, ok := e.(event.Resize); ok {
			c.video.Resize(r.Width, r.Height)
		}
	})

	c.machine = engine.NewMachine(c.ctx, dispatcher, engine.Deps{
		Simulation:     c.game,
		Controls:       c.game.Controls(),
		Sound:          c.game.Sound(),
		Input:          c.input,
		Menu:           c.menu,
		Assets:         c.assets,
		RumbleStrength: cfg.Controls.Rumble,
	}, logger)

	c.shutdown = engine.NewShutdown(c.teardown(), logger)
	c.sched = engine.NewScheduler(c.machine, c.video, c.audio, opts.Clock, c.shutdown, engine.SchedulerConfig{
		VSync:    cfg.Video.VSync,
		FPSCount: cfg.Video.FPSCount,
	}, logger)

	logger.Info("cabinet ready",
		"mode", opts.Mode,
		"player", opts.Player,
		"fps", cfg.Video.FPS,
		"menu", cfg.Menu.Enabled,
		"sound", c.audio.Enabled(),
	)
	return c, nil
}

// teardown lists the resources opened so far.
func (c *Cabinet) teardown() engine.Teardown {
	t := engine.Teardown{Exit: c.exit}
	if c.audio != nil {
		t.Audio = c.audio
	}
	if c.input != nil {
		t.Input = c.input
	}
	if c.haptic != nil {
		t.Haptic = c.haptic
	}
	if c.menu != nil {
		t.Menu = c.menu
	}
	return t
}

// fail releases whatever startup opened and returns err.
func (c *Cabinet) fail(err error) error {
	c.logger.Error("startup failed", "error", err)
	//nolint:errcheck // release failures are logged
	engine.NewShutdown(c.teardown(), c.logger).Run(1)
	return err
}

func (c *Cabinet) exit(code int) {
	c.doneOnce.Do(func() {
		c.code = code
		close(c.done)
	})
}

// Model returns the Bubble Tea model that drives this cabinet's terminal.
func (c *Cabinet) Model() tea.Model {
	return NewModel(c.queue, c.keys, c.video.Frames(), c.done)
}

// Loop runs the engine on the calling goroutine until it quits and returns
// the exit code.
func (c *Cabinet) Loop() int {
	c.audio.Start(c.opts.Output)
	if err := c.machine.Boot(c.opts.Config.Menu.Enabled); err != nil {
		c.logger.Error("boot failed", "error", err)
		return c.sched.Shutdown(1)
	}
	return c.sched.Run()
}

// Quit asks the engine to stop, as if the window was closed.
func (c *Cabinet) Quit() {
	c.queue.Push(event.Quit{})
}

// Done is closed once the cabinet has shut down.
func (c *Cabinet) Done() <-chan struct{} { return c.done }

// Code returns the exit code once Done is closed.
func (c *Cabinet) Code() int {
	<-c.done
	return c.code
}

// Context returns the engine context.
func (c *Cabinet) Context() *engine.Context { return c.ctx }

// Run plays a cabinet in the local terminal and returns its exit code.
func Run(opts Options) (int, error) {
	cab, err := NewCabinet(opts)
	if err != nil {
		return 1, err
	}

	p := tea.NewProgram(cab.Model(), tea.WithAltScreen())

	codes := make(chan int, 1)
	go func() { codes <- cab.Loop() }()

	_, err = p.Run()
	// The terminal may go away before the engine quits.
	cab.Quit()
	code := <-codes
	if err != nil {
		return 1, fmt.Errorf("tui: %w", err)
	}
	return code, nil
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/registry"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.racer/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Cabinet settings shared by every session.
	Config    config.Config
	Mode      string
	TrackPath string
	Scores    registry.Scores
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Config:      config.Default(),
		Mode:        "arcade",
	}
}

// SSHServer serves one cabinet per SSH session. Sessions share nothing but
// the configuration and the score store.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	logger   *log.Logger
	cabinets sync.Map // ssh.Session -> *Cabinet
}

// exitWait bounds how long a finished session waits for its cabinet's
// shutdown before reporting an exit status.
const exitWait = 2 * time.Second

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "racer-ssh",
		})
	}
	if !registry.Exists(cfg.Mode) {
		return nil, fmt.Errorf("tui: unknown mode %q", cfg.Mode)
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = config.UserPath("host_key")
		if hostKeyPath == "" {
			return nil, errors.New("tui: cannot resolve host key path")
		}
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if err := os.MkdirAll(hostKeyDir, 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	// Middlewares run last to first.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.exitMiddleware,
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler starts a cabinet for the session and returns its model.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	logger := s.logger.With("user", sess.User())
	cab, err := NewCabinet(Options{
		Config:    s.config.Config,
		Mode:      s.config.Mode,
		TrackPath: s.config.TrackPath,
		Player:    sess.User(),
		Scores:    s.config.Scores,
		Renderer:  bubbletea.MakeRenderer(sess),
		Width:     pty.Window.Width,
		Height:    pty.Window.Height,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("cannot start cabinet", "error", err)
		wish.Fatalln(sess, "racer: "+err.Error())
		return nil, nil
	}

	s.cabinets.Store(sess, cab)
	go func() {
		code := cab.Loop()
		logger.Info("cabinet stopped", "code", code)
	}()
	go func() {
		select {
		case <-sess.Context().Done():
			cab.Quit()
		case <-cab.Done():
		}
	}()

	return cab.Model(), []tea.ProgramOption{tea.WithAltScreen()}
}

// exitMiddleware reports the cabinet's shutdown code as the session's exit
// status once the program has quit.
func (s *SSHServer) exitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		next(sess)

		v, ok := s.cabinets.LoadAndDelete(sess)
		if !ok {
			return
		}
		cab := v.(*Cabinet)
		cab.Quit()

		code := 1
		select {
		case <-cab.Done():
			code = cab.Code()
		case <-time.After(exitWait):
			s.logger.Warn("cabinet did not stop in time", "user", sess.User())
		}
		if err := sess.Exit(code); err != nil {
			s.logger.Debug("cannot report exit status", "user", sess.User(), "error", err)
		}
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "mode", s.config.Mode)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case <-done:
	case err := <-errs:
		s.logger.Error("server error", "error", err)
		return err
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

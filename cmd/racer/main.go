// racer is an arcade road racer for the terminal.
//
// Usage:
//
//	racer                  - Play, starting at the menu when enabled
//	racer list             - List available modes
//	racer serve            - Start SSH server for remote play
//	racer scores [mode]    - Show high scores
//
// Global flags:
//
//	--config <path>  - Cabinet config YAML (default: ~/.racer/config.yaml)
//	--track <path>   - Base track pack YAML (default: built in)
//	--mode <id>      - Mode to play (default: arcade)
//	--seed <value>   - RNG seed for reproducible traffic
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-racer/internal/games/racer"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/platform/tui"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var version = "dev"

var (
	// Global flags
	flagConfig string
	flagTrack  string
	flagMode   string
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "racer",
	Short:   "Arcade road racing in your terminal",
	Version: version,
	Long: `Racer is a terminal arcade racer: beat the clock through a chain of
courses, dodge traffic and shift gears at the right moment.

Controls (defaults, see ~/.racer/config.yaml):
  Up/W       - Accelerate
  Down/S     - Brake
  Left/Right - Steer
  Space/G    - Shift gear
  Enter      - Start
  F1/P       - Pause
  F2         - Step one frame while paused
  F3/M       - Back to menu
  F4         - Freeze the timer
  Ctrl+C     - Quit

Examples:
  racer
  racer --mode timetrial
  racer --config ./my-racer.yaml
  racer serve --ssh :2222
  racer scores arcade`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to cabinet config YAML")
	rootCmd.PersistentFlags().StringVarP(&flagTrack, "track", "t", "", "Path to base track pack YAML")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "arcade", "Mode to play")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig loads and validates the cabinet configuration and opens the
// log file it names.
func loadConfig() (config.Config, *log.Logger, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, nil, nil, err
	}
	if flagDBPath != "" {
		cfg.Data.ScoresDB = flagDBPath
	}

	logger, closeLog := openLog(cfg.Log)
	if err := config.Validate(cfg, logger); err != nil {
		closeLog()
		return cfg, nil, nil, err
	}
	return cfg, logger, closeLog, nil
}

// openLog opens the log file. The terminal belongs to the game, so logs go
// to a file or nowhere.
func openLog(lc config.LogConfig) (*log.Logger, func()) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		level = log.InfoLevel
	}

	if lc.File == "" {
		logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel})
		return logger, func() {}
	}

	path := config.ExpandPath(lc.File)
	f, err := createLogFile(path)
	if err != nil {
		logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel})
		logger.Warn("cannot open log file", "path", path, "error", err)
		return logger, func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "racer",
	})
	return logger, func() { f.Close() }
}

// openStore opens the score database. Play continues without it.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Data.ScoresDB)
	if err != nil {
		logger.Warn("scores disabled", "error", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runPlay(_ *cobra.Command, _ []string) error {
	if !registry.Exists(flagMode) {
		return fmt.Errorf("unknown mode %q (run 'racer list' to see available modes)", flagMode)
	}

	cfg, logger, closeLog, err := loadConfig()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.Options{
		Config:    cfg,
		Mode:      flagMode,
		TrackPath: flagTrack,
		Player:    playerName(),
		Seed:      flagSeed,
		Logger:    logger,
	}
	opts.Width, opts.Height = terminalSize()

	store := openStore(cfg, logger)
	if store != nil {
		opts.Scores = store
	}

	code, runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("close scores", "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}
	if code != 0 {
		closeLog()
		os.Exit(code)
	}
	return nil
}

// playerName returns the local user name for score entries.
func playerName() string {
	for _, k := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return "player"
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// DirName is the per-user data directory under $HOME.
const DirName = ".racer"

// localConfigPath is checked relative to the working directory.
const localConfigPath = "configs/racer.yaml"

// Load loads the cabinet configuration. Files are layered over the embedded
// defaults, so a file only needs the keys it changes.
// Search order: customPath -> ~/.racer/config.yaml -> ./configs/racer.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := embedded()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return finish(cfg), nil
	}

	// Try user config directory
	if path := UserPath("config.yaml"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			attempt := cfg
			if err := yaml.Unmarshal(data, &attempt); err == nil {
				return finish(attempt), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(localConfigPath); err == nil {
		attempt := cfg
		if err := yaml.Unmarshal(data, &attempt); err == nil {
			return finish(attempt), nil
		}
	}

	return finish(cfg), nil
}

func embedded() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultRacerYAML, &cfg); err != nil {
		return Default()
	}
	return cfg
}

func finish(cfg Config) Config {
	if cfg.Engine.Difficulty != "" {
		ApplyPreset(&cfg, cfg.Engine.Difficulty)
	}
	return cfg
}

// UserPath returns a path inside ~/.racer, or empty if home is unavailable.
func UserPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DirName, name)
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Engine.Difficulty = preset
	if IsFixedPreset(preset) {
		cfg.Engine.Traffic.Enabled = false
	} else {
		cfg.Engine.Traffic.Enabled = true
		cfg.Engine.Traffic.InitialLevel = InitialLevelForPreset(preset)
	}
}

// PresetTimeBonus returns the seconds added to the stage timer for preset.
func PresetTimeBonus(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 15
	case DifficultyHard:
		return -10
	default:
		return 0
	}
}

// Validate checks cfg for values the cabinet cannot run with. Display rates
// other than 30, 60 and 120 are accepted with a warning: the tick divider
// then advances the simulation on every frame.
func Validate(cfg Config, logger *log.Logger) error {
	var errs []error

	if cfg.Video.FPS <= 0 {
		errs = append(errs, fmt.Errorf("config: video.fps must be positive, got %d", cfg.Video.FPS))
	} else if cfg.Video.FPS != 30 && cfg.Video.FPS != 60 && cfg.Video.FPS != 120 {
		if logger != nil {
			logger.Warn("unusual display rate, simulation will tick every frame", "fps", cfg.Video.FPS)
		}
	}

	switch cfg.Engine.Difficulty {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
	default:
		errs = append(errs, fmt.Errorf("config: unknown engine.difficulty %q", cfg.Engine.Difficulty))
	}
	if cfg.Engine.TimeLimit+PresetTimeBonus(cfg.Engine.Difficulty) <= 0 {
		errs = append(errs, fmt.Errorf("config: engine.time_limit too small: %d", cfg.Engine.TimeLimit))
	}

	c := cfg.Controls
	if c.Gear != "manual" && c.Gear != "auto" {
		errs = append(errs, fmt.Errorf("config: controls.gear must be manual or auto, got %q", c.Gear))
	}
	if c.Rumble < 0 || c.Rumble > 1 {
		errs = append(errs, fmt.Errorf("config: controls.rumble must be within [0, 1], got %v", c.Rumble))
	}
	if c.MinForce > c.MaxForce {
		errs = append(errs, fmt.Errorf("config: controls.min_force %d exceeds max_force %d", c.MinForce, c.MaxForce))
	}
	if c.KeyReleaseMS <= 0 {
		errs = append(errs, fmt.Errorf("config: controls.key_release_ms must be positive, got %d", c.KeyReleaseMS))
	}

	if cfg.Sound.Enabled {
		if cfg.Sound.Rate <= 0 {
			errs = append(errs, fmt.Errorf("config: sound.rate must be positive, got %d", cfg.Sound.Rate))
		}
		if cfg.Sound.BufferMS <= 0 {
			errs = append(errs, fmt.Errorf("config: sound.buffer_ms must be positive, got %d", cfg.Sound.BufferMS))
		}
	}

	if cfg.Log.Level != "" {
		if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("config: log.level: %w", err))
		}
	}

	return errors.Join(errs...)
}

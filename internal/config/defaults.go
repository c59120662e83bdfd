package config

import (
	_ "embed"
)

//go:embed defaults/racer.yaml
var defaultRacerYAML []byte

// Default returns the built-in configuration. It mirrors defaults/racer.yaml
// and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Video: VideoConfig{
			FPS: 60,
		},
		Menu: MenuConfig{
			Enabled: true,
		},
		Engine: EngineConfig{
			Difficulty: DifficultyNormal,
			TimeLimit:  75,
			Traffic: DifficultyConfig{
				Enabled:      true,
				InitialLevel: 0.3,
				Progression: ProgressionConfig{
					Type:  ProgressScore,
					MaxAt: 50000,
				},
				Scaling: ScalingConfig{
					SpeedMultiplier:  0.8,
					SpacingReduction: 12,
				},
			},
		},
		Controls: ControlsConfig{
			Gear:          "manual",
			Rumble:        0.6,
			Haptic:        true,
			MaxForce:      9000,
			MinForce:      8500,
			ForceDuration: 20,
			KeyReleaseMS:  500,
			SteerSpeed:    3,
			PedalSpeed:    4,
			Keys: map[string][]string{
				"accel":     {"up", "w"},
				"brake":     {"down", "s"},
				"left":      {"left", "a"},
				"right":     {"right", "d"},
				"gear":      {" ", "g"},
				"start":     {"enter"},
				"coin":      {"5", "c"},
				"menu_up":   {"up", "k"},
				"menu_down": {"down", "j"},
				"select":    {"enter", " "},
				"timer":     {"f4"},
				"pause":     {"f1", "p"},
				"step":      {"f2"},
				"menu":      {"f3", "m"},
			},
			Pad: map[string]int{
				"accel": 0,
				"brake": 1,
				"gear":  2,
				"start": 7,
				"coin":  6,
				"menu":  8,
			},
			Axis: AxisConfig{
				Steer: 0,
				Accel: 5,
				Brake: 2,
			},
			Deadzone: 3200,
		},
		Sound: SoundConfig{
			Enabled:  true,
			Rate:     44100,
			BufferMS: 50,
		},
		Data: DataConfig{
			ResPath:  "~/.racer/res",
			ScoresDB: "~/.racer/scores.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.racer/racer.log",
		},
	}
}

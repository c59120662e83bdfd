// Package config provides YAML-based cabinet configuration loading and
// difficulty management for the racer.
package config

// Config is the complete cabinet configuration. It is read once at startup
// and never written by the engine.
type Config struct {
	Video    VideoConfig    `yaml:"video"`
	Menu     MenuConfig     `yaml:"menu"`
	Engine   EngineConfig   `yaml:"engine"`
	Controls ControlsConfig `yaml:"controls"`
	Sound    SoundConfig    `yaml:"sound"`
	Data     DataConfig     `yaml:"data"`
	Log      LogConfig      `yaml:"log"`
}

// VideoConfig defines display pacing.
type VideoConfig struct {
	FPS      int  `yaml:"fps"`       // display refresh rate: 30, 60 or 120
	VSync    bool `yaml:"vsync"`     // let the display pace frames when supported
	FPSCount bool `yaml:"fps_count"` // show the frames-per-second counter
}

// MenuConfig toggles the front-end menu.
type MenuConfig struct {
	Enabled bool `yaml:"enabled"`
}

// EngineConfig defines game rules.
type EngineConfig struct {
	Japanese   bool             `yaml:"japanese"` // use the regional track pack
	Difficulty DifficultyPreset `yaml:"difficulty"`
	TimeLimit  int              `yaml:"time_limit"` // seconds per stage
	Traffic    DifficultyConfig `yaml:"traffic"`
}

// ControlsConfig defines keyboard, pad and force-feedback settings.
type ControlsConfig struct {
	Gear          string              `yaml:"gear"`   // "manual" or "auto"
	Rumble        float64             `yaml:"rumble"` // rumble strength, 0 disables
	Haptic        bool                `yaml:"haptic"`
	MaxForce      int                 `yaml:"max_force"`
	MinForce      int                 `yaml:"min_force"`
	ForceDuration int                 `yaml:"force_duration"` // ms
	KeyReleaseMS  int                 `yaml:"key_release_ms"`
	SteerSpeed    int                 `yaml:"steer_speed"`
	PedalSpeed    int                 `yaml:"pedal_speed"`
	Keys          map[string][]string `yaml:"keys"` // action name -> key names
	Pad           map[string]int      `yaml:"pad"`  // action name -> button index
	Axis          AxisConfig          `yaml:"axis"`
	Deadzone      int                 `yaml:"deadzone"`
}

// AxisConfig maps analog axes. A negative index disables the axis.
type AxisConfig struct {
	Steer int `yaml:"steer"`
	Accel int `yaml:"accel"`
	Brake int `yaml:"brake"`
}

// SoundConfig defines the audio output.
type SoundConfig struct {
	Enabled  bool `yaml:"enabled"`
	Rate     int  `yaml:"rate"`      // sample rate in Hz
	BufferMS int  `yaml:"buffer_ms"` // target ring fill
}

// DataConfig defines on-disk locations.
type DataConfig struct {
	ResPath  string `yaml:"res_path"`
	ScoresDB string `yaml:"scores_db"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DifficultyConfig defines how traffic gets harder over a run.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // added to traffic speed at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // traffic spacing reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

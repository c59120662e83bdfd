package config

// Progression types for DifficultyConfig.Progression.Type.
const (
	ProgressScore = "score" // ramp with points earned
	ProgressTime  = "time"  // ramp with logical ticks raced
	ProgressNone  = "none"
)

// DifficultyManager turns a run's progress into a traffic level between the
// configured initial level and 1.
type DifficultyManager struct {
	cfg   DifficultyConfig
	start float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, start: min(max(cfg.InitialLevel, 0), 1)}
}

// IsEnabled reports whether traffic gets harder during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// progress returns how far the run is toward max difficulty, in [0, 1].
func (d *DifficultyManager) progress(score, ticks int) float64 {
	span := float64(max(d.cfg.Progression.MaxAt, 1))
	var done float64
	switch d.cfg.Progression.Type {
	case ProgressScore:
		done = float64(score)
	case ProgressTime:
		done = float64(ticks)
	}
	return min(max(done/span, 0), 1)
}

// Level returns the traffic level for a run at score after ticks logical
// ticks. Without progression it stays at the initial level.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.start
	}
	return d.start + (1-d.start)*d.progress(score, ticks)
}

// Speed scales a traffic car's base speed by the current level.
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// Spacing shrinks the gap between spawned cars as the level rises, never
// below floor.
func (d *DifficultyManager) Spacing(base, floor, score, ticks int) int {
	cut := int(d.Level(score, ticks) * float64(d.cfg.Scaling.SpacingReduction))
	return max(base-cut, floor)
}

package config

import "math"

// DifficultyManager derives per-level speed scaling from the difficulty config.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.SpeedPerLevel > 0
}

// BallSpeedScale returns the ball speed multiplier for a level (1 at level 1).
func (d *DifficultyManager) BallSpeedScale(level int) float64 {
	if !d.IsEnabled() || level <= 1 {
		return 1
	}
	scale := 1 + float64(level-1)*d.cfg.SpeedPerLevel
	if d.cfg.MaxSpeedScale > 0 {
		scale = math.Min(scale, d.cfg.MaxSpeedScale)
	}
	return scale
}

// Speed scales a base speed for the given level.
func (d *DifficultyManager) Speed(baseSpeed float64, level int) float64 {
	return baseSpeed * d.BallSpeedScale(level)
}

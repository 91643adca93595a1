// Package config provides YAML-based game configuration loading and
// difficulty management for arkanoid.
package config

// BreakoutConfig contains all tunable parameters of the breakout engine.
// Distances are in playfield units (800x600), speeds in units per nominal frame.
type BreakoutConfig struct {
	Physics    BreakoutPhysics  `yaml:"physics"`
	Paddle     BreakoutPaddle   `yaml:"paddle"`
	Ball       BreakoutBall     `yaml:"ball"`
	PowerUps   BreakoutPowerUps `yaml:"powerups"`
	Scoring    BreakoutScoring  `yaml:"scoring"`
	Session    BreakoutSession  `yaml:"session"`
	Effects    BreakoutEffects  `yaml:"effects"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakoutPhysics defines the simulation loop parameters.
type BreakoutPhysics struct {
	SubSteps            int     `yaml:"sub_steps"`             // Collision sub-steps per frame
	MaxTimeScale        float64 `yaml:"max_time_scale"`        // Cap for the scaled frame delta
	FrameSeconds        float64 `yaml:"frame_seconds"`         // World-timer seconds per unit of scaled time
	MinVerticalFraction float64 `yaml:"min_vertical_fraction"` // Minimum |vy| as a fraction of speed
	MaxBounceAngle      float64 `yaml:"max_bounce_angle"`      // Degrees from vertical at the paddle edge
	LossMargin          float64 `yaml:"loss_margin"`           // Distance below the playfield where a ball is lost
}

// BreakoutPaddle defines paddle geometry and movement.
type BreakoutPaddle struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Y          float64 `yaml:"y"`
	Speed      float64 `yaml:"speed"`
	GrowRate   float64 `yaml:"grow_rate"`   // Width gained per frame toward a larger target
	ShrinkRate float64 `yaml:"shrink_rate"` // Width lost per frame toward a smaller target
}

// BreakoutBall defines ball spawn parameters.
type BreakoutBall struct {
	SpawnX        float64 `yaml:"spawn_x"`
	SpawnY        float64 `yaml:"spawn_y"`
	LaunchSpread  float64 `yaml:"launch_spread"`  // Horizontal launch velocity range
	LaunchSpeed   float64 `yaml:"launch_speed"`   // Upward launch velocity
	RadiusClassic float64 `yaml:"radius_classic"`
	RadiusModern  float64 `yaml:"radius_modern"`
}

// BreakoutPowerUps defines pickup drop and effect parameters.
type BreakoutPowerUps struct {
	DropChance    float64 `yaml:"drop_chance"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	FallSpeed     float64 `yaml:"fall_speed"`
	ExpandWidth   float64 `yaml:"expand_width"`
	ExpandSeconds float64 `yaml:"expand_seconds"`
	SpeedFactor   float64 `yaml:"speed_factor"`
	SpeedSeconds  float64 `yaml:"speed_seconds"`
	MultiSpeed    float64 `yaml:"multi_speed"` // Velocity component of balls added by Multi
}

// BreakoutScoring defines point awards.
type BreakoutScoring struct {
	Destroy int `yaml:"destroy"`
	Bonus   int `yaml:"bonus"`
	Hit     int `yaml:"hit"`
	PowerUp int `yaml:"powerup"`
}

// BreakoutSession defines session-level rules.
type BreakoutSession struct {
	Lives int `yaml:"lives"`
}

// BreakoutEffects defines twist strengths, the ball shower and cosmetic effects.
type BreakoutEffects struct {
	ShowerInterval   float64 `yaml:"shower_interval"` // Seconds between modern ball showers
	ShowerBalls      int     `yaml:"shower_balls"`
	ShowerSpread     float64 `yaml:"shower_spread"`
	ShowerSpeed      float64 `yaml:"shower_speed"`
	Gravity          float64 `yaml:"gravity"`
	WindRange        float64 `yaml:"wind_range"`
	JitterChance     float64 `yaml:"jitter_chance"`
	JitterAmount     float64 `yaml:"jitter_amount"`
	PulseAmplitude   float64 `yaml:"pulse_amplitude"`
	PulseRate        float64 `yaml:"pulse_rate"`
	ShrinkRate       float64 `yaml:"shrink_rate"`
	ShrinkMinWidth   float64 `yaml:"shrink_min_width"`
	FastBallFactor   float64 `yaml:"fast_ball_factor"`
	ColorShiftChance float64 `yaml:"color_shift_chance"`
	InvisibleRange   float64 `yaml:"invisible_range"`
	DestroyParticles int     `yaml:"destroy_particles"`
	HitParticles     int     `yaml:"hit_particles"`
}

// DifficultyConfig defines how ball speed grows with the level index.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled"`
	SpeedPerLevel float64 `yaml:"speed_per_level"` // Added to the speed multiplier per level after the first
	MaxSpeedScale float64 `yaml:"max_speed_scale"` // Upper bound for the multiplier, 0 = unbounded
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset converts a CLI value into a preset.
// Unknown or empty values return "" which leaves the config untouched.
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

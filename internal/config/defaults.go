package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
// It mirrors defaults/breakout.yaml and is used when the embedded file cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Physics: BreakoutPhysics{
			SubSteps:            4,
			MaxTimeScale:        3,
			FrameSeconds:        0.016,
			MinVerticalFraction: 0.15,
			MaxBounceAngle:      60,
			LossMargin:          20,
		},
		Paddle: BreakoutPaddle{
			Width:      120,
			Height:     15,
			Y:          560,
			Speed:      14,
			GrowRate:   2,
			ShrinkRate: 1,
		},
		Ball: BreakoutBall{
			SpawnX:        400,
			SpawnY:        550,
			LaunchSpread:  8,
			LaunchSpeed:   7,
			RadiusClassic: 5,
			RadiusModern:  8,
		},
		PowerUps: BreakoutPowerUps{
			DropChance:    0.15,
			Width:         25,
			Height:        12,
			FallSpeed:     2.5,
			ExpandWidth:   220,
			ExpandSeconds: 10,
			SpeedFactor:   1.3,
			SpeedSeconds:  5,
			MultiSpeed:    5,
		},
		Scoring: BreakoutScoring{
			Destroy: 20,
			Bonus:   50,
			Hit:     5,
			PowerUp: 100,
		},
		Session: BreakoutSession{
			Lives: 10,
		},
		Effects: BreakoutEffects{
			ShowerInterval:   7,
			ShowerBalls:      7,
			ShowerSpread:     10,
			ShowerSpeed:      5,
			Gravity:          0.05,
			WindRange:        0.1,
			JitterChance:     0.05,
			JitterAmount:     0.5,
			PulseAmplitude:   0.3,
			PulseRate:        2,
			ShrinkRate:       0.1,
			ShrinkMinWidth:   60,
			FastBallFactor:   1.3,
			ColorShiftChance: 0.01,
			InvisibleRange:   150,
			DestroyParticles: 15,
			HitParticles:     6,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			SpeedPerLevel: 0.008,
		},
	}
}

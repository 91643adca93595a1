package breakout

import (
	"math"

	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
)

var shiftingColors = []core.Color{
	core.Hex("#ff00ff"), core.Hex("#00ff41"), core.Hex("#ff0040"), core.Hex("#ffff00"), core.Hex("#00ffff"),
}

// applyTwist runs the level modifier's per-frame effect before ball physics.
func (w *World) applyTwist(in Input, ts float64) {
	fx := w.cfg.Effects
	minVY := w.cfg.Physics.MinVerticalFraction
	w.Time += w.cfg.Physics.FrameSeconds * ts

	switch w.Modifier {
	case levelgen.ModGravity:
		for i := range w.Balls {
			w.Balls[i].VY += fx.Gravity * ts
			w.Balls[i].normalize(minVY)
		}

	case levelgen.ModWind:
		for i := range w.Balls {
			w.Balls[i].VX += w.wind * ts
			w.Balls[i].normalize(minVY)
		}

	case levelgen.ModJitter:
		if !w.rng.Chance(fx.JitterChance) {
			return
		}
		for i := range w.Balls {
			w.Balls[i].VX += w.rng.Centered(fx.JitterAmount) * ts
			w.Balls[i].VY += w.rng.Centered(fx.JitterAmount) * ts
			w.Balls[i].normalize(minVY)
		}

	case levelgen.ModSpeedPulse:
		pulse := 1 + math.Sin(w.Time*fx.PulseRate)*fx.PulseAmplitude
		for i := range w.Balls {
			b := &w.Balls[i]
			current := b.Speed()
			if current == 0 {
				b.normalize(minVY)
				continue
			}
			ratio := b.EffectiveSpeed() * pulse / current
			b.VX *= ratio
			b.VY *= ratio
		}

	case levelgen.ModPaddleShrink:
		if !in.moving() {
			return
		}
		p := &w.Paddle
		if p.Width > fx.ShrinkMinWidth {
			p.Width = math.Max(fx.ShrinkMinWidth, p.Width-fx.ShrinkRate*ts)
		}
		p.TargetWidth = p.Width

	case levelgen.ModFastBall:
		for i := range w.Balls {
			if !w.Balls[i].Boosted {
				w.Balls[i].scaleVelocity(fx.FastBallFactor)
				w.Balls[i].Boosted = true
			}
		}

	case levelgen.ModShiftingColors:
		for i := range w.Blocks {
			if w.Blocks[i].Breakable() && w.rng.Chance(fx.ColorShiftChance) {
				w.Blocks[i].Color = shiftingColors[w.rng.Intn(len(shiftingColors))]
			}
		}
	}
}

// BlockAlpha returns how visible block i is. Only the invisible-bricks
// modifier fades blocks: they show within range of a ball and vanish beyond it.
func (w *World) BlockAlpha(i int) float64 {
	if w.Modifier != levelgen.ModInvisibleBricks || i < 0 || i >= len(w.Blocks) {
		return 1
	}
	reach := w.cfg.Effects.InvisibleRange
	if reach <= 0 || len(w.Balls) == 0 {
		return 0
	}
	bx, by := w.Blocks[i].Center()
	nearest := math.Inf(1)
	for _, b := range w.Balls {
		nearest = math.Min(nearest, math.Hypot(b.X-bx, b.Y-by))
	}
	if nearest >= reach {
		return 0
	}
	return 1 - nearest/reach
}

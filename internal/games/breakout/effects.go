package breakout

import "github.com/vovakirdan/arkanoid/internal/core"

// Pickups fall until this far below the playfield before being discarded.
const powerUpCullMargin = 50

// Particle motion.
const (
	particleSpread   = 10
	particleGravity  = 0.1
	particleMinDecay = 0.02
	particleDecayVar = 0.03
	particleMinSize  = 2
	particleSizeVar  = 4
)

func (w *World) spawnParticles(x, y float64, c core.Color, n int) {
	for range n {
		w.Particles = append(w.Particles, Particle{
			X:     x,
			Y:     y,
			VX:    w.rng.Centered(particleSpread),
			VY:    w.rng.Centered(particleSpread),
			Life:  1,
			Decay: particleMinDecay + w.rng.Float64()*particleDecayVar,
			Size:  particleMinSize + w.rng.Float64()*particleSizeVar,
			Color: c,
		})
	}
}

func (w *World) updateParticles(ts float64) {
	kept := w.Particles[:0]
	for _, p := range w.Particles {
		p.X += p.VX * ts
		p.Y += p.VY * ts
		p.Life -= p.Decay * ts
		p.VY += particleGravity * ts
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	w.Particles = kept
}

func (w *World) trySpawnPowerUp(x, y float64) {
	cfg := w.cfg.PowerUps
	if !w.rng.Chance(cfg.DropChance) {
		return
	}
	w.PowerUps = append(w.PowerUps, PowerUp{
		Kind: PowerUpKind(w.rng.Intn(int(powerKinds))),
		X:    x,
		Y:    y,
		W:    cfg.Width,
		H:    cfg.Height,
		VY:   cfg.FallSpeed,
	})
}

// updatePowerUps moves pickups, collects the ones touching the paddle and
// drops the ones that fell out of the playfield.
func (w *World) updatePowerUps(ts float64) {
	paddle := w.Paddle.Box()
	cull := w.Viewport.Height + powerUpCullMargin

	kept := w.PowerUps[:0]
	var collected []PowerUp
	for _, p := range w.PowerUps {
		p.Y += p.VY * ts
		switch {
		case p.Box().Overlaps(paddle):
			collected = append(collected, p)
		case p.Y <= cull:
			kept = append(kept, p)
		}
	}
	w.PowerUps = kept

	for _, p := range collected {
		w.applyPowerUp(p.Kind)
		w.emit(Event{Kind: EventPowerUp, Points: w.cfg.Scoring.PowerUp, X: p.X, Y: p.Y})
	}
}

func (w *World) applyPowerUp(kind PowerUpKind) {
	cfg := w.cfg.PowerUps
	switch kind {
	case PowerExpand:
		w.Paddle.TargetWidth = cfg.ExpandWidth
		w.removeEffect(PowerExpand)
		w.Effects = append(w.Effects, Effect{Kind: PowerExpand, Remaining: cfg.ExpandSeconds})

	case PowerMulti:
		x, y := w.Viewport.Width/2, w.Viewport.Height/2
		if len(w.Balls) > 0 {
			x, y = w.Balls[0].X, w.Balls[0].Y
		}
		w.spawnBall(x, y, cfg.MultiSpeed, -cfg.MultiSpeed)
		w.spawnBall(x, y, -cfg.MultiSpeed, -cfg.MultiSpeed)

	case PowerSpeed:
		for i := range w.Balls {
			w.Balls[i].scaleVelocity(cfg.SpeedFactor)
		}
		w.speedMul *= cfg.SpeedFactor
		w.Effects = append(w.Effects, Effect{Kind: PowerSpeed, Remaining: cfg.SpeedSeconds})
	}
}

func (w *World) removeEffect(kind PowerUpKind) {
	kept := w.Effects[:0]
	for _, e := range w.Effects {
		if e.Kind != kind {
			kept = append(kept, e)
		}
	}
	w.Effects = kept
}

// updateEffects counts down timed effects and reverts the expired ones.
func (w *World) updateEffects(ts float64) {
	dt := w.cfg.Physics.FrameSeconds * ts
	kept := w.Effects[:0]
	var expired []PowerUpKind
	for _, e := range w.Effects {
		e.Remaining -= dt
		if e.Remaining > 0 {
			kept = append(kept, e)
			continue
		}
		expired = append(expired, e.Kind)
	}
	w.Effects = kept

	for _, kind := range expired {
		switch kind {
		case PowerExpand:
			w.Paddle.TargetWidth = w.cfg.Paddle.Width
		case PowerSpeed:
			f := w.cfg.PowerUps.SpeedFactor
			for i := range w.Balls {
				w.Balls[i].scaleVelocity(1 / f)
			}
			w.speedMul /= f
		}
	}
}

// HasEffect reports whether a timed effect of the given kind is active.
func (w *World) HasEffect(kind PowerUpKind) bool {
	for _, e := range w.Effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

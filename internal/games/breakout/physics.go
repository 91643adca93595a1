package breakout

import (
	"math"
	"slices"

	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/games/breakout/levelgen"
)

// Screen shake strengths.
const (
	shakeWall     = 5
	shakePaddle   = 4
	shakeBrick    = 6
	shakeSteel    = 2
	shakeLifeLost = 15
	shakeDecay    = 0.85
)

var hitParticleColor = core.Hex("#ffffff")

// updateBalls integrates every ball in sub-steps and resolves collisions.
func (w *World) updateBalls(ts float64) {
	subSteps := max(w.cfg.Physics.SubSteps, 1)
	sub := ts / float64(subSteps)
	lossY := w.Viewport.Height + w.cfg.Physics.LossMargin

	for range subSteps {
		for i := range w.Balls {
			b := &w.Balls[i]
			w.moveBall(b, sub)
			w.collidePaddle(b)
			w.collideBlocks(b)
		}
		w.Balls = slices.DeleteFunc(w.Balls, func(b Ball) bool {
			return b.Y > lossY
		})
	}
}

// moveBall advances a ball and reflects it off the left, right and top edges.
func (w *World) moveBall(b *Ball, dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt

	switch {
	case b.X-b.Radius <= 0:
		b.X = b.Radius
		b.VX = math.Abs(b.VX)
		w.wallHit(b)
	case b.X+b.Radius >= w.Viewport.Width:
		b.X = w.Viewport.Width - b.Radius
		b.VX = -math.Abs(b.VX)
		w.wallHit(b)
	}
	if b.Y-b.Radius <= 0 {
		b.Y = b.Radius
		b.VY = math.Abs(b.VY)
		w.wallHit(b)
	}
}

func (w *World) wallHit(b *Ball) {
	w.Shake = shakeWall
	w.emit(Event{Kind: EventWallHit, X: b.X, Y: b.Y})
}

// collidePaddle bounces a descending ball off the paddle. The launch angle
// depends on where the ball lands relative to the paddle centre.
func (w *World) collidePaddle(b *Ball) {
	p := &w.Paddle
	if b.VY <= 0 {
		return
	}
	if b.Y+b.Radius < p.Y || b.Y-b.Radius > p.Y+p.Height {
		return
	}
	if b.X < p.X || b.X > p.X+p.Width {
		return
	}

	b.Y = p.Y - b.Radius
	hit := 0.0
	if half := p.Width / 2; half > 0 {
		hit = core.ClampF((b.X-p.CenterX())/half, -1, 1)
	}
	angle := hit * w.cfg.Physics.MaxBounceAngle * math.Pi / 180
	speed := b.EffectiveSpeed()
	b.VX = speed * math.Sin(angle)
	b.VY = -speed * math.Cos(angle)

	w.Shake = shakePaddle
	w.emit(Event{Kind: EventPaddleHit, X: b.X, Y: b.Y})
}

// collideBlocks resolves at most one block contact for the ball.
// Classic balls bounce off everything; modern balls only bounce off walls
// and plough through breakable blocks.
func (w *World) collideBlocks(b *Ball) {
	r2 := b.Radius * b.Radius
	for j := len(w.Blocks) - 1; j >= 0; j-- {
		blk := &w.Blocks[j]
		if blk.destroyed {
			continue
		}
		cx, cy := blk.ClosestPoint(b.X, b.Y)
		dx, dy := b.X-cx, b.Y-cy
		if dx*dx+dy*dy >= r2 {
			continue
		}

		if w.Mode == levelgen.Classic || !blk.Breakable() {
			bounce(b, dx, dy)
		}
		w.hitBlock(blk, b)
		return
	}
}

// bounce reflects the ball along the axis of least penetration and pushes it out.
func bounce(b *Ball, dx, dy float64) {
	overlapX := b.Radius - math.Abs(dx)
	overlapY := b.Radius - math.Abs(dy)
	if overlapX < overlapY {
		if dx > 0 {
			b.VX = math.Abs(b.VX)
			b.X += overlapX
		} else {
			b.VX = -math.Abs(b.VX)
			b.X -= overlapX
		}
		return
	}
	if dy > 0 {
		b.VY = math.Abs(b.VY)
		b.Y += overlapY
	} else {
		b.VY = -math.Abs(b.VY)
		b.Y -= overlapY
	}
}

func (w *World) hitBlock(blk *Block, b *Ball) {
	if !blk.Breakable() {
		w.Shake = shakeSteel
		w.emit(Event{Kind: EventWallHit, X: b.X, Y: b.Y})
		return
	}

	blk.Hits--
	w.Shake = shakeBrick
	if blk.Hits > 0 {
		w.spawnParticles(b.X, b.Y, hitParticleColor, w.cfg.Effects.HitParticles)
		w.emit(Event{Kind: EventBrickHit, Points: w.cfg.Scoring.Hit, X: b.X, Y: b.Y})
		return
	}

	blk.destroyed = true
	x, y := blk.Center()
	points := w.cfg.Scoring.Destroy
	if blk.Kind == levelgen.CellBonus {
		points = w.cfg.Scoring.Bonus
	}
	w.spawnParticles(x, y, blk.Color, w.cfg.Effects.DestroyParticles)
	w.trySpawnPowerUp(x, y)
	w.emit(Event{Kind: EventBrickDestroyed, Points: points, X: x, Y: y})
}

// compactBlocks drops destroyed blocks once the sub-steps are done.
func (w *World) compactBlocks() {
	w.Blocks = slices.DeleteFunc(w.Blocks, func(b Block) bool {
		return b.destroyed
	})
}
